// Package tree holds the declarative UI model, its JSON decoding and the
// normalization pass that rewrites legacy shapes into the canonical tree.
package tree

import "github.com/alexisbeaulieu97/canvasgen/internal/ports"

// Kind discriminates declarative node payloads.
type Kind string

const (
	KindContainer    Kind = "container"
	KindFrame        Kind = "frame"
	KindText         Kind = "text"
	KindRectangle    Kind = "rectangle"
	KindEllipse      Kind = "ellipse"
	KindComponentRef Kind = "componentRef"
)

// Wire-format item types.
const (
	TypeLayoutContainer = "layoutContainer"
	TypeFrame           = "frame"
	TypeNativeText      = "native-text"
	TypeText            = "text"
	TypeNativeRectangle = "native-rectangle"
	TypeNativeCircle    = "native-circle"
)

// Document is the root of a declarative tree. Root container fields come from
// layoutContainer when present, else from the root object itself, and
// Container.Items holds the top-level items.
type Document struct {
	Container ContainerSpec
	// Configured is set when the root carried an explicit layoutContainer.
	Configured bool
}

// Node is one declarative item. Exactly one payload pointer is set and it
// matches Kind.
type Node struct {
	Kind Kind
	// Type is the raw wire discriminator, e.g. "list-item" for a componentRef.
	Type string

	Container *ContainerSpec
	Text      *TextSpec
	Shape     *ShapeSpec
	Component *ComponentSpec

	// Layout is the node's participation in its parent's auto-layout.
	Layout Layout
	// Extra keeps wire fields the model does not name.
	Extra map[string]interface{}
}

// ContainerSpec describes a frame and its auto-layout configuration.
type ContainerSpec struct {
	Name                  string
	LayoutMode            string
	PaddingTop            float64
	PaddingRight          float64
	PaddingBottom         float64
	PaddingLeft           float64
	ItemSpacing           Spacing
	LayoutWrap            string
	PrimaryAxisAlignItems string
	CounterAxisAlignItems string
	PrimaryAxisSizingMode string
	CounterAxisSizingMode string
	// Width and Height are zero when unset.
	Width     float64
	Height    float64
	MinWidth  *float64
	MaxWidth  *float64
	MinHeight *float64
	MaxHeight *float64
	Items     []Node
}

// Spacing is an item spacing that is either a fixed gap or automatic.
type Spacing struct {
	Auto  bool
	Value float64
}

// ColorRef is either a symbolic name to resolve or a literal RGB value.
type ColorRef struct {
	Name string
	RGB  *ports.RGB
}

// IsZero reports whether the reference carries nothing to apply.
func (c *ColorRef) IsZero() bool {
	return c == nil || (c.Name == "" && c.RGB == nil)
}

// TextSpec describes a native text node.
type TextSpec struct {
	Content        string
	FontSize       float64
	Bold           bool
	Align          string
	Color          *ColorRef
	ColorStyleName string
	TextStyleName  string
}

// ShapeSpec describes a native rectangle or ellipse. Zero sizes fall back to
// kind-specific defaults at generation time.
type ShapeSpec struct {
	Width        float64
	Height       float64
	Fill         *ColorRef
	CornerRadius float64
}

// ComponentSpec describes an instance of a scanned component.
type ComponentSpec struct {
	ComponentType       string
	ComponentID         string
	Properties          map[string]interface{}
	Variants            map[string]interface{}
	VisibilityOverrides map[string]bool
	IconSwaps           map[string]string
}

// Layout is a node's participation in its parent's auto-layout.
type Layout struct {
	HorizontalSizing  string
	VerticalSizing    string
	LayoutAlign       string
	LayoutGrow        *float64
	LayoutPositioning string
	MinWidth          *float64
	MaxWidth          *float64
	MinHeight         *float64
	MaxHeight         *float64
}

// Empty reports whether the layout carries no participation settings.
func (l Layout) Empty() bool {
	return l == Layout{}
}
