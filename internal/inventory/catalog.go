package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/validation"
)

// DefaultMinConfidence is the lowest scanner confidence accepted when a
// component is looked up by suggested type.
const DefaultMinConfidence = 0.7

// Catalog is a read-only index over the last scan results.
type Catalog struct {
	components []ComponentInfo
	byID       map[string]int
}

// NewCatalog indexes the supplied scan records. Later duplicates of an ID
// replace earlier ones.
func NewCatalog(infos []ComponentInfo) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(infos))}
	for _, info := range infos {
		if idx, exists := c.byID[info.ID]; exists {
			c.components[idx] = info
			continue
		}
		c.byID[info.ID] = len(c.components)
		c.components = append(c.components, info)
	}
	return c
}

// LoadCatalog reads scan results from client storage under key. A missing key
// yields an empty catalog.
func LoadCatalog(ctx context.Context, storage ports.ClientStorage, key string) (*Catalog, error) {
	if key == "" {
		key = DefaultScanKey
	}
	if storage == nil {
		return NewCatalog(nil), nil
	}

	var infos []ComponentInfo
	found, err := storage.Get(ctx, key, &infos)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return NewCatalog(nil), nil
	}
	if err := Validate(infos); err != nil {
		return nil, err
	}
	return NewCatalog(infos), nil
}

// Validate checks scan records against the contract.
func Validate(infos []ComponentInfo) error {
	return validation.Struct(ScanSet{Components: infos})
}

// Len returns the number of indexed components.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.components)
}

// Get returns the scan record for a component identifier.
func (c *Catalog) Get(id string) (ComponentInfo, bool) {
	if c == nil {
		return ComponentInfo{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return ComponentInfo{}, false
	}
	return c.components[idx], true
}

// All returns the scan records sorted by ID.
func (c *Catalog) All() []ComponentInfo {
	if c == nil {
		return nil
	}
	out := make([]ComponentInfo, len(c.components))
	copy(out, c.components)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ComponentIDByType returns the first component whose suggested type matches
// componentType (case-insensitive) with at least minConfidence. Failing that,
// it returns the first component whose name contains the type.
func (c *Catalog) ComponentIDByType(componentType string, minConfidence float64) (string, bool) {
	if c == nil || componentType == "" {
		return "", false
	}
	want := strings.ToLower(componentType)
	for _, info := range c.components {
		if strings.ToLower(info.SuggestedType) == want && info.Confidence >= minConfidence {
			return info.ID, true
		}
	}
	for _, info := range c.components {
		if strings.Contains(strings.ToLower(info.Name), want) {
			return info.ID, true
		}
	}
	return "", false
}
