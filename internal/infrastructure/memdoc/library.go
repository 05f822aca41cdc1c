package memdoc

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/validation"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// Library is a component library fixture: the fonts, shared styles and
// component definitions a document starts with.
type Library struct {
	Fonts       []ports.FontName `yaml:"fonts" validate:"dive"`
	PaintStyles []PaintStyleDef  `yaml:"paint_styles" validate:"dive"`
	TextStyles  []TextStyleDef   `yaml:"text_styles" validate:"dive"`
	Components  []ComponentDef   `yaml:"components" validate:"dive"`
}

// PaintStyleDef defines a solid paint style.
type PaintStyleDef struct {
	ID    string `yaml:"id" validate:"required"`
	Name  string `yaml:"name" validate:"required"`
	Color string `yaml:"color" validate:"required,hexcolor,len=7"`
}

// TextStyleDef defines a text style.
type TextStyleDef struct {
	ID       string         `yaml:"id" validate:"required"`
	Name     string         `yaml:"name" validate:"required"`
	Font     ports.FontName `yaml:"font"`
	FontSize float64        `yaml:"font_size" validate:"gte=0"`
}

// ComponentDef defines a component, or a component set when Variants is set.
type ComponentDef struct {
	NodeDef  `yaml:",inline"`
	Variants []VariantDef `yaml:"variants" validate:"dive"`
}

// VariantDef is one member of a component set.
type VariantDef struct {
	NodeDef    `yaml:",inline"`
	Properties map[string]string `yaml:"properties" validate:"required,min=1"`
}

// NodeDef describes a node in a component definition.
type NodeDef struct {
	ID             string           `yaml:"id" validate:"required"`
	Type           ports.NodeType   `yaml:"type" validate:"omitempty,oneof=FRAME GROUP TEXT RECTANGLE ELLIPSE VECTOR INSTANCE"`
	Name           string           `yaml:"name"`
	Visible        *bool            `yaml:"visible"`
	Width          float64          `yaml:"width" validate:"gte=0"`
	Height         float64          `yaml:"height" validate:"gte=0"`
	LayoutMode     string           `yaml:"layout_mode" validate:"omitempty,oneof=NONE HORIZONTAL VERTICAL"`
	PrimarySizing  string           `yaml:"primary_sizing" validate:"omitempty,oneof=FIXED AUTO"`
	CounterSizing  string           `yaml:"counter_sizing" validate:"omitempty,oneof=FIXED AUTO"`
	ItemSpacing    float64          `yaml:"item_spacing"`
	Padding        float64          `yaml:"padding"`
	LayoutAlign    string           `yaml:"layout_align" validate:"omitempty,oneof=INHERIT STRETCH MIN CENTER MAX"`
	Fill           string           `yaml:"fill" validate:"omitempty,hexcolor,len=7"`
	Characters     string           `yaml:"characters"`
	FontSize       float64          `yaml:"font_size" validate:"gte=0"`
	Fonts          []ports.FontName `yaml:"fonts" validate:"dive"`
	TextAutoResize string           `yaml:"text_auto_resize" validate:"omitempty,oneof=NONE HEIGHT WIDTH_AND_HEIGHT TRUNCATE"`
	Children       []NodeDef        `yaml:"children" validate:"dive"`
}

// LoadLibrary reads and validates a library fixture from a YAML or JSON file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, canvaserrors.NewParseError(path, 0, err)
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, canvaserrors.NewParseError(path, 0, err)
	}
	if err := validation.Struct(lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Install registers the library's fonts, styles and components.
func (d *Document) Install(lib *Library) error {
	if lib == nil {
		return nil
	}
	for _, f := range lib.Fonts {
		d.available[f] = true
	}
	for _, s := range lib.PaintStyles {
		c, err := colorful.Hex(s.Color)
		if err != nil {
			return canvaserrors.NewValidationError("paint_styles.color", fmt.Sprintf("invalid color %q", s.Color), err)
		}
		d.paintStyles = append(d.paintStyles, paintStyle{
			style: ports.Style{ID: s.ID, Name: s.Name, Kind: ports.StyleKindPaint},
			color: ports.RGB{R: c.R, G: c.G, B: c.B},
		})
	}
	for _, s := range lib.TextStyles {
		d.textStyles = append(d.textStyles, textStyle{
			style: ports.Style{ID: s.ID, Name: s.Name, Kind: ports.StyleKindText},
			font:  s.Font,
			size:  s.FontSize,
		})
	}
	for _, def := range lib.Components {
		if err := d.installComponent(def); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) installComponent(def ComponentDef) error {
	if _, exists := d.components[def.ID]; exists {
		return canvaserrors.NewValidationError("components.id", fmt.Sprintf("duplicate component id %q", def.ID), nil)
	}
	c := &component{doc: d, id: def.ID, name: def.Name, def: def.NodeDef}
	d.components[def.ID] = c

	for _, v := range def.Variants {
		if _, exists := d.components[v.ID]; exists {
			return canvaserrors.NewValidationError("variants.id", fmt.Sprintf("duplicate component id %q", v.ID), nil)
		}
		props := make(map[string]string, len(v.Properties))
		for k, val := range v.Properties {
			props[k] = val
		}
		name := v.Name
		if name == "" {
			name = variantName(props)
		}
		variant := &component{doc: d, id: v.ID, name: name, set: c, props: props, def: v.NodeDef}
		c.variants = append(c.variants, variant)
		d.components[v.ID] = variant
	}
	return nil
}
