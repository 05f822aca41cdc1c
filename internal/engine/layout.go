package engine

import (
	"context"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

const sizingFill = "FILL"

// applyContainer configures frame from spec. Every property is applied on
// its own so one rejected value does not block the rest.
func (r *run) applyContainer(ctx context.Context, frame ports.Node, spec *tree.ContainerSpec, path string) {
	name := spec.Name
	if name == "" {
		name = defaultFrameName
	}
	r.set(ctx, frame, path, ports.FieldName, name)

	mode := ports.LayoutModeNone
	if spec.LayoutMode == ports.LayoutModeHorizontal || spec.LayoutMode == ports.LayoutModeVertical {
		mode = spec.LayoutMode
	}
	r.set(ctx, frame, path, ports.FieldLayoutMode, mode)

	if mode != ports.LayoutModeNone {
		r.set(ctx, frame, path, ports.FieldPaddingTop, spec.PaddingTop)
		r.set(ctx, frame, path, ports.FieldPaddingRight, spec.PaddingRight)
		r.set(ctx, frame, path, ports.FieldPaddingBottom, spec.PaddingBottom)
		r.set(ctx, frame, path, ports.FieldPaddingLeft, spec.PaddingLeft)
		if spec.ItemSpacing.Auto {
			r.set(ctx, frame, path, ports.FieldItemSpacing, ports.SpacingAuto)
		} else {
			r.set(ctx, frame, path, ports.FieldItemSpacing, spec.ItemSpacing.Value)
		}
		if spec.LayoutWrap != "" {
			r.set(ctx, frame, path, ports.FieldLayoutWrap, spec.LayoutWrap)
		}
		if spec.PrimaryAxisAlignItems != "" {
			r.set(ctx, frame, path, ports.FieldPrimaryAxisAlignItems, spec.PrimaryAxisAlignItems)
		}
		if spec.CounterAxisAlignItems != "" {
			r.set(ctx, frame, path, ports.FieldCounterAxisAlignItems, spec.CounterAxisAlignItems)
		}
		if spec.Width <= 0 {
			primary := spec.PrimaryAxisSizingMode
			if primary == "" {
				primary = ports.SizingAuto
			}
			r.set(ctx, frame, path, ports.FieldPrimaryAxisSizingMode, primary)
		}
		if spec.CounterAxisSizingMode != "" {
			r.set(ctx, frame, path, ports.FieldCounterAxisSizingMode, spec.CounterAxisSizingMode)
		}
	}

	r.setOptional(ctx, frame, path, ports.FieldMinWidth, spec.MinWidth)
	r.setOptional(ctx, frame, path, ports.FieldMaxWidth, spec.MaxWidth)
	r.setOptional(ctx, frame, path, ports.FieldMinHeight, spec.MinHeight)
	r.setOptional(ctx, frame, path, ports.FieldMaxHeight, spec.MaxHeight)

	switch {
	case spec.Width > 0:
		r.pinWidth(ctx, frame, spec, path)
	case spec.CounterAxisSizingMode == "" && mode != ports.LayoutModeNone:
		r.set(ctx, frame, path, ports.FieldCounterAxisSizingMode, ports.SizingAuto)
	}
}

// pinWidth applies an explicit container width. On an auto-layout frame the
// axis carrying the width is fixed first, otherwise the next relayout
// recomputes the width away. The other axis keeps its requested mode and hugs
// its content when none was given. It runs again after the children are
// generated.
func (r *run) pinWidth(ctx context.Context, frame ports.Node, spec *tree.ContainerSpec, path string) {
	if spec.Width <= 0 {
		return
	}
	if isAutoLayout(frame) {
		widthAxis, heightAxis := ports.FieldCounterAxisSizingMode, ports.FieldPrimaryAxisSizingMode
		heightMode := spec.PrimaryAxisSizingMode
		if layoutMode(frame) == ports.LayoutModeHorizontal {
			widthAxis, heightAxis = ports.FieldPrimaryAxisSizingMode, ports.FieldCounterAxisSizingMode
			heightMode = spec.CounterAxisSizingMode
		}
		if heightMode == "" {
			heightMode = ports.SizingAuto
			if spec.Height > 0 {
				heightMode = ports.SizingFixed
			}
		}
		r.set(ctx, frame, path, widthAxis, ports.SizingFixed)
		r.set(ctx, frame, path, heightAxis, heightMode)
	}
	height := frame.Height()
	if spec.Height > 0 {
		height = spec.Height
	}
	r.mutate(ctx, path, "resize", func() error { return frame.Resize(spec.Width, height) })
}

// applyChildLayout sets how node participates in its parent's auto-layout.
func (r *run) applyChildLayout(ctx context.Context, node, parent ports.Node, layout tree.Layout, path string) {
	if layout.Empty() {
		return
	}
	fill := layout.HorizontalSizing == sizingFill

	switch {
	case layout.LayoutAlign != "":
		r.set(ctx, node, path, ports.FieldLayoutAlign, layout.LayoutAlign)
	case fill:
		r.set(ctx, node, path, ports.FieldLayoutAlign, ports.AlignStretch)
	}

	switch {
	case layout.LayoutGrow != nil:
		r.set(ctx, node, path, ports.FieldLayoutGrow, *layout.LayoutGrow)
	case fill && layoutMode(parent) == ports.LayoutModeHorizontal:
		r.set(ctx, node, path, ports.FieldLayoutGrow, 1.0)
	}

	if layout.LayoutPositioning != "" {
		r.set(ctx, node, path, ports.FieldLayoutPositioning, layout.LayoutPositioning)
	}
	r.setOptional(ctx, node, path, ports.FieldMinWidth, layout.MinWidth)
	r.setOptional(ctx, node, path, ports.FieldMaxWidth, layout.MaxWidth)
	r.setOptional(ctx, node, path, ports.FieldMinHeight, layout.MinHeight)
	r.setOptional(ctx, node, path, ports.FieldMaxHeight, layout.MaxHeight)
}

func (r *run) set(ctx context.Context, node ports.Node, path string, field ports.Field, value interface{}) bool {
	return r.mutate(ctx, path, "set "+string(field), func() error { return node.Set(field, value) })
}

func (r *run) setOptional(ctx context.Context, node ports.Node, path string, field ports.Field, value *float64) {
	if value != nil {
		r.set(ctx, node, path, field, *value)
	}
}

func layoutMode(n ports.Node) string {
	if n == nil {
		return ""
	}
	mode, _ := n.Get(ports.FieldLayoutMode)
	s, _ := mode.(string)
	return s
}

func isAutoLayout(n ports.Node) bool {
	mode := layoutMode(n)
	return mode == ports.LayoutModeHorizontal || mode == ports.LayoutModeVertical
}
