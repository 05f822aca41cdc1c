package ports

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// NodeType identifies the concrete kind of a host node.
type NodeType string

const (
	NodeTypePage         NodeType = "PAGE"
	NodeTypeFrame        NodeType = "FRAME"
	NodeTypeGroup        NodeType = "GROUP"
	NodeTypeText         NodeType = "TEXT"
	NodeTypeRectangle    NodeType = "RECTANGLE"
	NodeTypeEllipse      NodeType = "ELLIPSE"
	NodeTypeVector       NodeType = "VECTOR"
	NodeTypeInstance     NodeType = "INSTANCE"
	NodeTypeComponent    NodeType = "COMPONENT"
	NodeTypeComponentSet NodeType = "COMPONENT_SET"
)

// Field names a settable host node property. Values passed to Node.Set use the
// Go type listed next to each field.
type Field string

const (
	FieldName                  Field = "name"                  // string
	FieldVisible               Field = "visible"               // bool
	FieldX                     Field = "x"                     // float64
	FieldY                     Field = "y"                     // float64
	FieldWidth                 Field = "width"                 // float64
	FieldHeight                Field = "height"                // float64
	FieldLayoutMode            Field = "layoutMode"            // string: NONE|HORIZONTAL|VERTICAL
	FieldPaddingTop            Field = "paddingTop"            // float64
	FieldPaddingRight          Field = "paddingRight"          // float64
	FieldPaddingBottom         Field = "paddingBottom"         // float64
	FieldPaddingLeft           Field = "paddingLeft"           // float64
	FieldItemSpacing           Field = "itemSpacing"           // float64 or SpacingAuto
	FieldLayoutWrap            Field = "layoutWrap"            // string: NO_WRAP|WRAP
	FieldPrimaryAxisAlignItems Field = "primaryAxisAlignItems" // string
	FieldCounterAxisAlignItems Field = "counterAxisAlignItems" // string
	FieldPrimaryAxisSizingMode Field = "primaryAxisSizingMode" // string: FIXED|AUTO
	FieldCounterAxisSizingMode Field = "counterAxisSizingMode" // string: FIXED|AUTO
	FieldMinWidth              Field = "minWidth"              // float64
	FieldMaxWidth              Field = "maxWidth"              // float64
	FieldMinHeight             Field = "minHeight"             // float64
	FieldMaxHeight             Field = "maxHeight"             // float64
	FieldLayoutAlign           Field = "layoutAlign"           // string: INHERIT|STRETCH|MIN|CENTER|MAX
	FieldLayoutGrow            Field = "layoutGrow"            // float64
	FieldLayoutPositioning     Field = "layoutPositioning"     // string: AUTO|ABSOLUTE
	FieldFills                 Field = "fills"                 // []Paint
	FieldStrokes               Field = "strokes"               // []Paint
	FieldFillStyleID           Field = "fillStyleId"           // string
	FieldCornerRadius          Field = "cornerRadius"          // float64
	FieldCharacters            Field = "characters"            // string
	FieldFontSize              Field = "fontSize"              // float64
	FieldFontName              Field = "fontName"              // FontName
	FieldTextAlignHorizontal   Field = "textAlignHorizontal"   // string: LEFT|CENTER|RIGHT|JUSTIFIED
	FieldTextAutoResize        Field = "textAutoResize"        // string: NONE|HEIGHT|WIDTH_AND_HEIGHT
	FieldTextStyleID           Field = "textStyleId"           // string
)

// Layout enumerations shared by the generator and host adapters.
const (
	LayoutModeNone       = "NONE"
	LayoutModeHorizontal = "HORIZONTAL"
	LayoutModeVertical   = "VERTICAL"

	SizingFixed = "FIXED"
	SizingAuto  = "AUTO"

	SpacingAuto = "AUTO"

	AlignStretch = "STRETCH"
)

// RGB is a color with channels in [0,1].
type RGB struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// Black is the fallback color used when nothing else resolves.
var Black = RGB{}

// Paint is a fill or stroke entry.
type Paint struct {
	Type  string `json:"type"`
	Color RGB    `json:"color"`
}

// SolidPaint returns a SOLID paint of the given color.
func SolidPaint(c RGB) Paint {
	return Paint{Type: "SOLID", Color: c}
}

// FontName identifies a font family and style pair.
type FontName struct {
	Family string `json:"family" yaml:"family" validate:"required"`
	Style  string `json:"style" yaml:"style" validate:"required,font_style"`
}

func (f FontName) String() string {
	return fmt.Sprintf("%s %s", f.Family, f.Style)
}

// StyleKind separates paint styles from text styles.
type StyleKind string

const (
	StyleKindPaint StyleKind = "PAINT"
	StyleKindText  StyleKind = "TEXT"
)

// Style is a handle on a shared style defined in the host document. Binding
// a node to a Style keeps the live link to the design system.
type Style struct {
	ID   string
	Name string
	Kind StyleKind
}

// NotifyOptions controls how a host notification is surfaced.
type NotifyOptions struct {
	Error   bool
	Timeout time.Duration
}

// Node is a single node in the host scene graph.
//
// Implementations must:
//   - Return an error from Set when the field is not supported by the node type
//   - Keep Children in document order
//   - Treat Remove as detaching the node and its subtree from the document
type Node interface {
	ID() string
	Name() string
	Type() NodeType
	Parent() Node
	Children() []Node
	Visible() bool
	Width() float64
	Height() float64
	Get(field Field) (interface{}, bool)
	Set(field Field, value interface{}) error
	Resize(width, height float64) error
	AppendChild(child Node) error
	Remove() error
	FindAll(predicate func(Node) bool) []Node
}

// TextNode adds text-specific queries to Node.
type TextNode interface {
	Node
	Characters() string
	// FontNames lists every distinct font used across the node's full
	// character range, in first-use order.
	FontNames() []FontName
	HasMissingFont() bool
}

// InstanceNode is a placed copy of a component definition.
type InstanceNode interface {
	Node
	MainComponentID() string
	// VariantAxes returns the variant axes exposed by the instance's
	// component set, keyed by axis name with the legal values for each.
	VariantAxes() map[string][]string
	VariantProperties() map[string]string
	SetVariantProperties(values map[string]string) error
}

// Component is a reusable definition: either a single component or a set of
// variants with a default member.
type Component interface {
	ID() string
	Name() string
	IsSet() bool
	DefaultVariant() (Component, bool)
	Instantiate(ctx context.Context) (InstanceNode, error)
}

// Document is the host document API the generator drives.
//
// Lookups that find nothing return a *errors.ReferenceError so callers can
// distinguish missing references from host failures.
type Document interface {
	CurrentPage() Node
	NodeByID(ctx context.Context, id string) (Node, error)
	Component(ctx context.Context, id string) (Component, error)
	CreateFrame(ctx context.Context) (Node, error)
	CreateText(ctx context.Context) (TextNode, error)
	CreateRectangle(ctx context.Context) (Node, error)
	CreateEllipse(ctx context.Context) (Node, error)
	LoadFont(ctx context.Context, font FontName) error
	PaintStyles(ctx context.Context) ([]Style, error)
	TextStyles(ctx context.Context) ([]Style, error)
	Notify(ctx context.Context, message string, opts NotifyOptions)
	Select(ctx context.Context, nodes ...Node)
}

// SourceNodeID returns the definition node identifier behind an instance
// sublayer identifier of the form "I<instance>;<definition>". Identifiers
// without that shape are returned unchanged.
func SourceNodeID(id string) string {
	if !strings.HasPrefix(id, "I") {
		return id
	}
	if idx := strings.LastIndex(id, ";"); idx >= 0 && idx+1 < len(id) {
		return id[idx+1:]
	}
	return id
}
