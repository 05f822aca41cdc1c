// Package schema builds and indexes the per-component slot schemas the
// generator consults when filling component instances.
package schema

import "time"

// ScanVersion is the schema format version stamped on every built schema.
const ScanVersion = "1.1"

// Shape says whether a text slot holds one value or an ordered list.
type Shape string

const (
	ShapeScalar Shape = "scalar"
	ShapeArray  Shape = "array"
)

// Rank is the visual prominence of a text slot.
type Rank string

const (
	RankPrimary   Rank = "primary"
	RankSecondary Rank = "secondary"
	RankTertiary  Rank = "tertiary"
)

// MediaType classifies a media slot.
type MediaType string

const (
	MediaIcon   MediaType = "icon"
	MediaImage  MediaType = "image"
	MediaAvatar MediaType = "avatar"
	MediaBadge  MediaType = "badge"
)

// ComponentSchema describes the slots a component exposes.
type ComponentSchema struct {
	ID            string                `json:"id" validate:"required"`
	Name          string                `json:"name" validate:"required"`
	ComponentType string                `json:"componentType"`
	Variants      map[string][]string   `json:"variants"`
	TextLayers    map[string]TextLayer  `json:"textLayers" validate:"dive"`
	MediaLayers   map[string]MediaLayer `json:"mediaLayers" validate:"dive"`
	ScannedAt     time.Time             `json:"scannedAt"`
	ScanVersion   string                `json:"scanVersion"`
}

// TextLayer is one text slot of a component.
type TextLayer struct {
	NodeID     string  `json:"nodeId" validate:"required"`
	NodeName   string  `json:"nodeName" validate:"required"`
	Rank       Rank    `json:"rank" validate:"oneof=primary secondary tertiary"`
	Shape      Shape   `json:"shape" validate:"oneof=scalar array"`
	MaxItems   int     `json:"maxItems,omitempty" validate:"gte=0"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
}

// MediaLayer is one media slot of a component.
type MediaLayer struct {
	NodeID    string    `json:"nodeId" validate:"required"`
	NodeName  string    `json:"nodeName" validate:"required"`
	MediaType MediaType `json:"mediaType" validate:"oneof=icon image avatar badge"`
	Visible   bool      `json:"visible"`
}

// HasVariant reports whether axis is a variant axis of the schema.
func (s *ComponentSchema) HasVariant(axis string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Variants[axis]
	return ok
}

// TextLayer returns the text slot registered under name.
func (s *ComponentSchema) TextLayer(name string) (TextLayer, bool) {
	if s == nil {
		return TextLayer{}, false
	}
	layer, ok := s.TextLayers[name]
	return layer, ok
}

// MediaLayer returns the media slot registered under name.
func (s *ComponentSchema) MediaLayer(name string) (MediaLayer, bool) {
	if s == nil {
		return MediaLayer{}, false
	}
	layer, ok := s.MediaLayers[name]
	return layer, ok
}

// RankOf returns the rank of the text slot bound to nodeID, if any.
func (s *ComponentSchema) RankOf(nodeID string) (Rank, bool) {
	if s == nil {
		return "", false
	}
	for _, layer := range s.TextLayers {
		if layer.NodeID == nodeID {
			return layer.Rank, true
		}
	}
	return "", false
}
