package memdoc

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

type component struct {
	doc      *Document
	id       string
	name     string
	set      *component
	variants []*component
	props    map[string]string
	def      NodeDef
}

var _ ports.Component = (*component)(nil)

func (c *component) ID() string   { return c.id }
func (c *component) Name() string { return c.name }
func (c *component) IsSet() bool  { return len(c.variants) > 0 }

// DefaultVariant returns the first variant of a set.
func (c *component) DefaultVariant() (ports.Component, bool) {
	if len(c.variants) == 0 {
		return nil, false
	}
	return c.variants[0], true
}

// Instantiate places a new instance of the component on the page. Sublayer
// identifiers take the form I<instance>;<definition>.
func (c *component) Instantiate(ctx context.Context) (ports.InstanceNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := c.doc
	if err := d.fault(call{op: OpInstantiate, nodeID: c.id, nodeName: c.name, nodeType: ports.NodeTypeInstance}); err != nil {
		return nil, err
	}
	if c.IsSet() {
		return nil, canvaserrors.NewHostError(c.id, OpInstantiate, fmt.Errorf("component set %q cannot be instantiated directly", c.name))
	}

	name := c.name
	if c.set != nil {
		name = c.set.name
	}
	inst := d.newNode(d.nextNodeID(), ports.NodeTypeInstance, name)
	inst.main = c
	d.applyDef(inst, c.def)
	d.buildChildren(inst, c.def.Children, inst.id)
	d.place(inst)
	d.reflow(inst)
	return inst.handle.(ports.InstanceNode), nil
}

// axes returns each variant axis with its values in first-seen order.
func (c *component) axes() map[string][]string {
	out := make(map[string][]string)
	for _, v := range c.variants {
		for axis, value := range v.props {
			if !containsString(out[axis], value) {
				out[axis] = append(out[axis], value)
			}
		}
	}
	return out
}

func (c *component) variantFor(wanted map[string]string) *component {
	for _, v := range c.variants {
		if len(v.props) != len(wanted) {
			continue
		}
		match := true
		for axis, value := range wanted {
			if v.props[axis] != value {
				match = false
				break
			}
		}
		if match {
			return v
		}
	}
	return nil
}

// variantName renders properties the way the host names variants.
func variantName(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + props[k]
	}
	return strings.Join(parts, ", ")
}

func (d *Document) buildChildren(parent *node, defs []NodeDef, instanceID string) {
	for _, def := range defs {
		t := def.Type
		if t == "" {
			t = ports.NodeTypeFrame
		}
		n := d.newNode("I"+instanceID+";"+def.ID, t, def.Name)
		d.applyDef(n, def)
		n.parent = parent
		parent.children = append(parent.children, n)
		d.buildChildren(n, def.Children, instanceID)
	}
}

// applyDef copies definition attributes onto n. The node name is left alone.
func (d *Document) applyDef(n *node, def NodeDef) {
	n.visible = def.Visible == nil || *def.Visible
	if def.Width > 0 {
		n.width = def.Width
	}
	if def.Height > 0 {
		n.height = def.Height
	}
	if def.LayoutMode != "" {
		n.fields[ports.FieldLayoutMode] = def.LayoutMode
		n.fields[ports.FieldPrimaryAxisSizingMode] = orDefault(def.PrimarySizing, ports.SizingAuto)
		n.fields[ports.FieldCounterAxisSizingMode] = orDefault(def.CounterSizing, ports.SizingFixed)
		n.fields[ports.FieldItemSpacing] = def.ItemSpacing
		for _, f := range []ports.Field{ports.FieldPaddingTop, ports.FieldPaddingRight, ports.FieldPaddingBottom, ports.FieldPaddingLeft} {
			n.fields[f] = def.Padding
		}
	}
	if def.LayoutAlign != "" {
		n.fields[ports.FieldLayoutAlign] = def.LayoutAlign
	}
	if def.Fill != "" {
		if c, err := colorful.Hex(def.Fill); err == nil {
			n.fields[ports.FieldFills] = []ports.Paint{ports.SolidPaint(ports.RGB{R: c.R, G: c.G, B: c.B})}
		}
	}
	if n.nodeType == ports.NodeTypeText {
		n.chars = def.Characters
		if def.FontSize > 0 {
			n.fields[ports.FieldFontSize] = def.FontSize
		}
		if len(def.Fonts) > 0 {
			n.fonts = append([]ports.FontName(nil), def.Fonts...)
		}
		if def.TextAutoResize != "" {
			n.fields[ports.FieldTextAutoResize] = def.TextAutoResize
		}
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
