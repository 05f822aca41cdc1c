package memdoc

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

// NodeSnapshot is a serializable view of a node subtree.
type NodeSnapshot struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Type            ports.NodeType    `json:"type"`
	Visible         bool              `json:"visible"`
	X               float64           `json:"x"`
	Y               float64           `json:"y"`
	Width           float64           `json:"width"`
	Height          float64           `json:"height"`
	LayoutMode      string            `json:"layoutMode,omitempty"`
	Characters      string            `json:"characters,omitempty"`
	FontSize        float64           `json:"fontSize,omitempty"`
	Fill            string            `json:"fill,omitempty"`
	FillStyleID     string            `json:"fillStyleId,omitempty"`
	MainComponentID string            `json:"mainComponentId,omitempty"`
	Variant         map[string]string `json:"variant,omitempty"`
	Children        []NodeSnapshot    `json:"children,omitempty"`
}

// Snapshot captures n and its subtree through the ports.Node interface.
func Snapshot(n ports.Node) NodeSnapshot {
	s := NodeSnapshot{
		ID:      n.ID(),
		Name:    n.Name(),
		Type:    n.Type(),
		Visible: n.Visible(),
		Width:   n.Width(),
		Height:  n.Height(),
	}
	s.X, _ = floatField(n, ports.FieldX)
	s.Y, _ = floatField(n, ports.FieldY)
	if mode, ok := n.Get(ports.FieldLayoutMode); ok && mode != ports.LayoutModeNone {
		s.LayoutMode, _ = mode.(string)
	}
	if t, ok := n.(ports.TextNode); ok {
		s.Characters = t.Characters()
		s.FontSize, _ = floatField(n, ports.FieldFontSize)
	}
	if fills, ok := n.Get(ports.FieldFills); ok {
		if paints, ok := fills.([]ports.Paint); ok && len(paints) > 0 {
			c := paints[0].Color
			s.Fill = colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
		}
	}
	if id, ok := n.Get(ports.FieldFillStyleID); ok {
		s.FillStyleID, _ = id.(string)
	}
	if inst, ok := n.(ports.InstanceNode); ok {
		s.MainComponentID = inst.MainComponentID()
		s.Variant = inst.VariantProperties()
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, Snapshot(c))
	}
	return s
}

func floatField(n ports.Node, field ports.Field) (float64, bool) {
	v, ok := n.Get(field)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
