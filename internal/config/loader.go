package config

import "context"

// Loader loads canvasgen configuration from an external source.
//
// Error expectations:
//   - YAML syntax and type failures → *errors.ParseError with the line
//   - rule violations → *errors.ValidationError naming the YAML field
//   - context cancellation → the context's error
type Loader interface {
	// Load returns a validated configuration. A missing file yields defaults.
	Load(ctx context.Context, path string) (*Config, error)

	// Validate checks that path holds a loadable configuration file without
	// keeping the result. Unlike Load, a missing file is an error.
	Validate(ctx context.Context, path string) error
}
