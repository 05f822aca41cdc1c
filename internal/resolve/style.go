package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

// Fill sources reported by ApplyFill in addition to the color tiers.
const (
	SourceStyleHandle Source = "style-handle"
	SourceLiteral     Source = "literal"
)

// StyleResolver finds shared host styles by name.
type StyleResolver struct {
	doc ports.Document
}

// NewStyleResolver creates a resolver backed by the host document.
func NewStyleResolver(doc ports.Document) *StyleResolver {
	return &StyleResolver{doc: doc}
}

// PaintStyle returns the paint style named name, matched exactly and then
// case-insensitively. Host lookup failures count as a miss.
func (r *StyleResolver) PaintStyle(ctx context.Context, name string) (ports.Style, bool) {
	if r == nil || r.doc == nil || name == "" {
		return ports.Style{}, false
	}
	styles, err := r.doc.PaintStyles(ctx)
	if err != nil {
		return ports.Style{}, false
	}
	return findStyle(styles, name)
}

// TextStyle returns the text style named name, matched exactly and then
// case-insensitively.
func (r *StyleResolver) TextStyle(ctx context.Context, name string) (ports.Style, bool) {
	if r == nil || r.doc == nil || name == "" {
		return ports.Style{}, false
	}
	styles, err := r.doc.TextStyles(ctx)
	if err != nil {
		return ports.Style{}, false
	}
	return findStyle(styles, name)
}

func findStyle(styles []ports.Style, name string) (ports.Style, bool) {
	for _, s := range styles {
		if s.Name == name {
			return s, true
		}
	}
	for _, s := range styles {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return ports.Style{}, false
}

// FillResult describes how a fill was applied.
type FillResult struct {
	Source  Source
	StyleID string
	Color   ports.RGB
}

// Filler applies color references to host nodes, preferring a bound paint
// style over a raw color.
type Filler struct {
	Colors *ColorResolver
	Styles *StyleResolver
}

// ApplyFill paints node with ref. A named reference binds a matching paint
// style when one exists and otherwise sets a solid fill from the color
// resolver. A literal RGB is applied directly.
func (f Filler) ApplyFill(ctx context.Context, node ports.Node, ref *tree.ColorRef) (FillResult, error) {
	if ref.IsZero() {
		return FillResult{}, nil
	}
	if ref.RGB != nil {
		rgb := clampRGB(*ref.RGB)
		if err := node.Set(ports.FieldFills, []ports.Paint{ports.SolidPaint(rgb)}); err != nil {
			return FillResult{}, fmt.Errorf("set fills: %w", err)
		}
		return FillResult{Source: SourceLiteral, Color: rgb}, nil
	}

	if style, ok := f.Styles.PaintStyle(ctx, ref.Name); ok {
		if err := node.Set(ports.FieldFillStyleID, style.ID); err == nil {
			return FillResult{Source: SourceStyleHandle, StyleID: style.ID}, nil
		}
	}

	rgb, source := f.Colors.Color(ref.Name)
	if err := node.Set(ports.FieldFills, []ports.Paint{ports.SolidPaint(rgb)}); err != nil {
		return FillResult{}, fmt.Errorf("set fills: %w", err)
	}
	return FillResult{Source: source, Color: rgb}, nil
}
