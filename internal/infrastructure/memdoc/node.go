package memdoc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// minSize is the smallest width or height the host accepts.
const minSize = 0.01

type node struct {
	doc      *Document
	id       string
	nodeType ports.NodeType
	name     string
	parent   *node
	children []*node
	visible  bool
	x, y     float64
	width    float64
	height   float64
	fields   map[ports.Field]interface{}

	chars string
	fonts []ports.FontName

	main    *component
	removed bool

	// handle is the interface value handed to callers: *textNode for text,
	// *instanceNode for instances and the node itself otherwise.
	handle ports.Node
}

type textNode struct{ *node }

type instanceNode struct{ *node }

var (
	_ ports.Node         = (*node)(nil)
	_ ports.TextNode     = (*textNode)(nil)
	_ ports.InstanceNode = (*instanceNode)(nil)
)

func (d *Document) newNode(id string, t ports.NodeType, name string) *node {
	n := &node{
		doc:      d,
		id:       id,
		nodeType: t,
		name:     name,
		visible:  true,
		fields:   make(map[ports.Field]interface{}),
	}
	switch t {
	case ports.NodeTypeText:
		n.handle = &textNode{n}
		n.fonts = []ports.FontName{DefaultFonts[0]}
		n.fields[ports.FieldFontSize] = 12.0
		n.fields[ports.FieldTextAutoResize] = "WIDTH_AND_HEIGHT"
		n.fields[ports.FieldFills] = []ports.Paint{ports.SolidPaint(ports.Black)}
	case ports.NodeTypeInstance:
		n.handle = &instanceNode{n}
		n.width, n.height = 100, 100
		n.fields[ports.FieldLayoutMode] = ports.LayoutModeNone
	case ports.NodeTypeFrame, ports.NodeTypeComponent, ports.NodeTypeGroup:
		n.handle = n
		n.width, n.height = 100, 100
		n.fields[ports.FieldLayoutMode] = ports.LayoutModeNone
		n.fields[ports.FieldFills] = []ports.Paint{ports.SolidPaint(white)}
	case ports.NodeTypeRectangle, ports.NodeTypeEllipse:
		n.handle = n
		n.width, n.height = 100, 100
		n.fields[ports.FieldFills] = []ports.Paint{ports.SolidPaint(grey)}
	case ports.NodeTypeVector:
		n.handle = n
		n.width, n.height = 24, 24
	default:
		n.handle = n
	}
	d.nodes[id] = n
	return n
}

func unwrap(n ports.Node) (*node, bool) {
	switch v := n.(type) {
	case *node:
		return v, true
	case *textNode:
		return v.node, true
	case *instanceNode:
		return v.node, true
	default:
		return nil, false
	}
}

func (n *node) ID() string           { return n.id }
func (n *node) Name() string         { return n.name }
func (n *node) Type() ports.NodeType { return n.nodeType }
func (n *node) Visible() bool        { return n.visible }
func (n *node) Width() float64       { return n.width }
func (n *node) Height() float64      { return n.height }

func (n *node) hostErr(op string, err error) error {
	return canvaserrors.NewHostError(n.id, op, err)
}

func (n *node) Parent() ports.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.handle
}

func (n *node) Children() []ports.Node {
	out := make([]ports.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c.handle
	}
	return out
}

// FindAll returns matching descendants in depth-first document order. The
// node itself is not a candidate.
func (n *node) FindAll(predicate func(ports.Node) bool) []ports.Node {
	var out []ports.Node
	var walk func(*node)
	walk = func(p *node) {
		for _, c := range p.children {
			if predicate(c.handle) {
				out = append(out, c.handle)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func (n *node) Get(field ports.Field) (interface{}, bool) {
	switch field {
	case ports.FieldName:
		return n.name, true
	case ports.FieldVisible:
		return n.visible, true
	case ports.FieldX:
		return n.x, true
	case ports.FieldY:
		return n.y, true
	case ports.FieldWidth:
		return n.width, true
	case ports.FieldHeight:
		return n.height, true
	case ports.FieldCharacters:
		if n.nodeType != ports.NodeTypeText {
			return nil, false
		}
		return n.chars, true
	case ports.FieldFontName:
		if n.nodeType != ports.NodeTypeText {
			return nil, false
		}
		fonts := distinctFonts(n.fonts)
		if len(fonts) != 1 {
			return nil, false
		}
		return fonts[0], true
	}
	v, ok := n.fields[field]
	if paints, isPaint := v.([]ports.Paint); isPaint {
		return append([]ports.Paint(nil), paints...), true
	}
	return v, ok
}

func (n *node) Set(field ports.Field, value interface{}) error {
	if err := n.doc.fault(call{op: OpSet, nodeID: n.id, nodeName: n.name, nodeType: n.nodeType, field: field}); err != nil {
		return err
	}
	op := fmt.Sprintf("%s %s", OpSet, field)
	if n.removed {
		return n.hostErr(op, errRemoved)
	}
	if !supports(n.nodeType, field) {
		return n.hostErr(op, fmt.Errorf("%s is not supported on %s nodes", field, n.nodeType))
	}
	if err := n.assign(field, value); err != nil {
		var fontErr *canvaserrors.FontError
		var refErr *canvaserrors.ReferenceError
		if errors.As(err, &fontErr) || errors.As(err, &refErr) {
			return err
		}
		return n.hostErr(op, err)
	}
	n.doc.reflow(n)
	return nil
}

func (n *node) Resize(width, height float64) error {
	if err := n.doc.fault(call{op: OpResize, nodeID: n.id, nodeName: n.name, nodeType: n.nodeType}); err != nil {
		return err
	}
	if n.removed {
		return n.hostErr(OpResize, errRemoved)
	}
	if n.nodeType == ports.NodeTypePage {
		return n.hostErr(OpResize, errors.New("pages cannot be resized"))
	}
	if err := n.resize(width, height); err != nil {
		return n.hostErr(OpResize, err)
	}
	return nil
}

func (n *node) resize(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || width < minSize || height < minSize {
		return fmt.Errorf("size %gx%g is below the minimum of %g", width, height, minSize)
	}
	n.width, n.height = width, height
	if n.nodeType == ports.NodeTypeText && n.str(ports.FieldTextAutoResize) == "WIDTH_AND_HEIGHT" {
		n.fields[ports.FieldTextAutoResize] = "HEIGHT"
	}
	n.doc.reflow(n)
	return nil
}

func (n *node) AppendChild(child ports.Node) error {
	c, ok := unwrap(child)
	if !ok || c.doc != n.doc {
		return n.hostErr(OpAppend, errors.New("node does not belong to this document"))
	}
	if err := n.doc.fault(call{op: OpAppend, nodeID: n.id, nodeName: c.name, nodeType: c.nodeType}); err != nil {
		return err
	}
	switch {
	case n.removed || c.removed:
		return n.hostErr(OpAppend, errRemoved)
	case !n.canHaveChildren():
		return n.hostErr(OpAppend, fmt.Errorf("%s nodes cannot have children", n.nodeType))
	case n.insideInstance():
		return n.hostErr(OpAppend, errors.New("cannot insert into an instance"))
	case c.nodeType == ports.NodeTypePage:
		return n.hostErr(OpAppend, errors.New("pages cannot be nested"))
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return n.hostErr(OpAppend, errors.New("cannot append a node to its own descendant"))
		}
	}

	old := c.parent
	c.detach()
	c.parent = n
	n.children = append(n.children, c)
	if old != nil && old != n {
		n.doc.reflow(old)
	}
	n.doc.reflow(n)
	return nil
}

func (n *node) Remove() error {
	if err := n.doc.fault(call{op: OpRemove, nodeID: n.id, nodeName: n.name, nodeType: n.nodeType}); err != nil {
		return err
	}
	switch {
	case n.removed:
		return n.hostErr(OpRemove, errRemoved)
	case n.nodeType == ports.NodeTypePage:
		return n.hostErr(OpRemove, errors.New("pages cannot be removed"))
	case strings.HasPrefix(n.id, "I"):
		return n.hostErr(OpRemove, errors.New("cannot remove a layer inside an instance"))
	}
	parent := n.parent
	n.detach()
	n.unregister()
	if parent != nil {
		n.doc.reflow(parent)
	}
	return nil
}

func (n *node) detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, s := range siblings {
		if s == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *node) unregister() {
	n.removed = true
	delete(n.doc.nodes, n.id)
	for _, c := range n.children {
		c.unregister()
	}
}

func (n *node) canHaveChildren() bool {
	switch n.nodeType {
	case ports.NodeTypePage, ports.NodeTypeFrame, ports.NodeTypeGroup,
		ports.NodeTypeComponent, ports.NodeTypeInstance:
		return true
	default:
		return false
	}
}

func (n *node) insideInstance() bool {
	return n.nodeType == ports.NodeTypeInstance || strings.HasPrefix(n.id, "I")
}

func (n *node) str(field ports.Field) string {
	s, _ := n.fields[field].(string)
	return s
}

func (n *node) num(field ports.Field) float64 {
	f, _ := n.fields[field].(float64)
	return f
}

func (n *node) optional(field ports.Field) (float64, bool) {
	f, ok := n.fields[field].(float64)
	return f, ok
}

// Characters returns the text content.
func (t *textNode) Characters() string {
	return t.chars
}

// FontNames lists the distinct fonts across the full character range.
func (t *textNode) FontNames() []ports.FontName {
	return distinctFonts(t.fonts)
}

// HasMissingFont reports whether any font in the node is unavailable.
func (t *textNode) HasMissingFont() bool {
	for _, f := range t.fonts {
		if !t.doc.available[f] {
			return true
		}
	}
	return false
}

func distinctFonts(fonts []ports.FontName) []ports.FontName {
	seen := make(map[ports.FontName]bool, len(fonts))
	out := make([]ports.FontName, 0, len(fonts))
	for _, f := range fonts {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// MainComponentID returns the identifier of the component this instance was
// created from.
func (i *instanceNode) MainComponentID() string {
	if i.main == nil {
		return ""
	}
	return i.main.id
}

// VariantAxes returns the axes of the instance's component set, or nil for a
// standalone component.
func (i *instanceNode) VariantAxes() map[string][]string {
	if i.main == nil || i.main.set == nil {
		return nil
	}
	return i.main.set.axes()
}

// VariantProperties returns the instance's current variant values.
func (i *instanceNode) VariantProperties() map[string]string {
	if i.main == nil {
		return nil
	}
	out := make(map[string]string, len(i.main.props))
	for k, v := range i.main.props {
		out[k] = v
	}
	return out
}

// SetVariantProperties swaps the instance to the variant matching its current
// values overlaid with values. Unknown axes, illegal values and combinations
// with no variant fail without changing the instance.
func (i *instanceNode) SetVariantProperties(values map[string]string) error {
	d := i.doc
	if err := d.fault(call{op: OpVariants, nodeID: i.id, nodeName: i.name, nodeType: i.nodeType}); err != nil {
		return err
	}
	if i.main == nil || i.main.set == nil {
		return i.hostErr(OpVariants, errors.New("instance has no variant properties"))
	}
	set := i.main.set
	axes := set.axes()
	wanted := i.VariantProperties()
	for axis, value := range values {
		legal, ok := axes[axis]
		if !ok {
			return i.hostErr(OpVariants, fmt.Errorf("unknown variant property %q", axis))
		}
		if !containsString(legal, value) {
			return i.hostErr(OpVariants, fmt.Errorf("invalid value %q for variant property %q", value, axis))
		}
		wanted[axis] = value
	}
	target := set.variantFor(wanted)
	if target == nil {
		return i.hostErr(OpVariants, fmt.Errorf("no variant matches %v", wanted))
	}
	if target == i.main {
		return nil
	}

	for _, c := range i.children {
		c.unregister()
	}
	i.children = nil
	i.main = target
	d.applyDef(i.node, target.def)
	d.buildChildren(i.node, target.def.Children, i.id)
	d.reflow(i.node)
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
