package schema

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/validation"
)

// DefaultMaxAge is the scan age after which a schema is reported as stale.
const DefaultMaxAge = 7 * 24 * time.Hour

// Registry holds component schemas keyed by component identifier.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*ComponentSchema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*ComponentSchema)}
}

// Register validates s and stores it under id, replacing any existing entry.
func (r *Registry) Register(id string, s *ComponentSchema) error {
	if id == "" {
		return fmt.Errorf("schema id is required")
	}
	if s == nil {
		return fmt.Errorf("schema for %q is nil", id)
	}
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("schema %q invalid: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[id] = s
	return nil
}

// Get returns the schema registered under id.
func (r *Registry) Get(id string) (*ComponentSchema, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[id]
	return s, ok
}

// GetAll returns every registered schema sorted by identifier.
func (r *Registry) GetAll() []*ComponentSchema {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.schemas))
	for id := range r.schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*ComponentSchema, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.schemas[id])
	}
	return result
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// LoadRegistry builds a schema for every scan record. It returns the registry
// and the identifiers whose scan is older than maxAge relative to now. Records
// without a scan time are never stale. A non-positive maxAge uses
// DefaultMaxAge.
func LoadRegistry(infos []inventory.ComponentInfo, now time.Time, maxAge time.Duration) (*Registry, []string, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	reg := NewRegistry()
	var stale []string
	for _, info := range infos {
		s := Build(info)
		if err := reg.Register(info.ID, s); err != nil {
			return nil, nil, err
		}
		if !s.ScannedAt.IsZero() && now.Sub(s.ScannedAt) > maxAge {
			stale = append(stale, info.ID)
		}
	}
	sort.Strings(stale)
	return reg, stale, nil
}
