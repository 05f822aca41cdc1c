package ports

import "context"

// ClientStorage is the host's key/value store. Values are JSON documents.
//
// Implementations must:
//   - Return (false, nil) from Get when the key is absent
//   - Decode the stored document into out on a hit
//   - Replace any previous value on Set
type ClientStorage interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}
