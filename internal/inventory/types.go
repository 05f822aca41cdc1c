// Package inventory defines the data contract produced by the component
// scanner and the lookups the renderer performs against it.
package inventory

import "time"

// DefaultScanKey is the client-storage key holding the last scan results.
const DefaultScanKey = "last-scan-results"

// Rank is the visual prominence assigned to a text layer by the scanner.
type Rank string

const (
	RankPrimary   Rank = "primary"
	RankSecondary Rank = "secondary"
	RankTertiary  Rank = "tertiary"
)

// ComponentInfo is one scanned component or component set.
type ComponentInfo struct {
	ID                 string                   `json:"id" yaml:"id" validate:"required"`
	Name               string                   `json:"name" yaml:"name" validate:"required"`
	SuggestedType      string                   `json:"suggestedType" yaml:"suggestedType"`
	Confidence         float64                  `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
	Variants           map[string][]string      `json:"variants,omitempty" yaml:"variants,omitempty"`
	VariantDetails     map[string]VariantDetail `json:"variantDetails,omitempty" yaml:"variantDetails,omitempty"`
	TextLayers         []string                 `json:"textLayers,omitempty" yaml:"textLayers,omitempty"`
	TextHierarchy      []TextHierarchy          `json:"textHierarchy,omitempty" yaml:"textHierarchy,omitempty" validate:"dive"`
	ComponentInstances []ComponentInstance      `json:"componentInstances,omitempty" yaml:"componentInstances,omitempty" validate:"dive"`
	VectorNodes        []VectorNode             `json:"vectorNodes,omitempty" yaml:"vectorNodes,omitempty" validate:"dive"`
	ImageNodes         []ImageNode              `json:"imageNodes,omitempty" yaml:"imageNodes,omitempty" validate:"dive"`
	IsFromLibrary      bool                     `json:"isFromLibrary" yaml:"isFromLibrary"`
	ScannedAt          time.Time                `json:"scannedAt,omitempty" yaml:"scannedAt,omitempty"`
}

// VariantDetail lists the values observed for one variant axis.
type VariantDetail struct {
	Values  []string `json:"values" yaml:"values"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
}

// TextHierarchy is a text layer inside a component, ranked by visual weight.
type TextHierarchy struct {
	NodeName       string  `json:"nodeName" yaml:"nodeName" validate:"required"`
	NodeID         string  `json:"nodeId" yaml:"nodeId" validate:"required"`
	FontSize       float64 `json:"fontSize" yaml:"fontSize"`
	FontWeight     string  `json:"fontWeight" yaml:"fontWeight"`
	Classification Rank    `json:"classification" yaml:"classification" validate:"omitempty,oneof=primary secondary tertiary"`
	Visible        bool    `json:"visible" yaml:"visible"`
	Characters     string  `json:"characters,omitempty" yaml:"characters,omitempty"`
	TextStyleID    string  `json:"textStyleId,omitempty" yaml:"textStyleId,omitempty"`
	TextStyleName  string  `json:"textStyleName,omitempty" yaml:"textStyleName,omitempty"`
}

// ComponentInstance is a nested instance inside a scanned component.
type ComponentInstance struct {
	NodeName    string `json:"nodeName" yaml:"nodeName" validate:"required"`
	NodeID      string `json:"nodeId" yaml:"nodeId" validate:"required"`
	ComponentID string `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	Visible     bool   `json:"visible" yaml:"visible"`
}

// VectorNode is a vector layer inside a scanned component.
type VectorNode struct {
	NodeName string `json:"nodeName" yaml:"nodeName" validate:"required"`
	NodeID   string `json:"nodeId" yaml:"nodeId" validate:"required"`
	Visible  bool   `json:"visible" yaml:"visible"`
}

// ImageNode is a rectangle or ellipse that can carry an image fill.
type ImageNode struct {
	NodeName     string `json:"nodeName" yaml:"nodeName" validate:"required"`
	NodeID       string `json:"nodeId" yaml:"nodeId" validate:"required"`
	NodeType     string `json:"nodeType" yaml:"nodeType" validate:"omitempty,oneof=RECTANGLE ELLIPSE"`
	Visible      bool   `json:"visible" yaml:"visible"`
	HasImageFill bool   `json:"hasImageFill" yaml:"hasImageFill"`
}

// ScanSet wraps scan records for validation as a single document.
type ScanSet struct {
	Components []ComponentInfo `validate:"dive"`
}
