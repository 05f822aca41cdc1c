package engine

import (
	"context"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/resolve"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

const (
	defaultRectangleSize = 100
	defaultEllipseSize   = 50
)

func (r *run) createRectangle(ctx context.Context, parent ports.Node, item *tree.Node, path string) error {
	spec := shapeOf(item)
	rect, err := r.g.doc.CreateRectangle(ctx)
	if err != nil {
		return err
	}
	if err := attach(parent, rect); err != nil {
		return err
	}

	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = defaultRectangleSize, defaultRectangleSize
	}
	r.mutate(ctx, path, "resize", func() error { return rect.Resize(width, height) })
	r.fill(ctx, rect, spec.Fill, path)
	if spec.CornerRadius > 0 {
		r.set(ctx, rect, path, ports.FieldCornerRadius, spec.CornerRadius)
	}
	r.applyChildLayout(ctx, rect, parent, item.Layout, path)
	return nil
}

func (r *run) createEllipse(ctx context.Context, parent ports.Node, item *tree.Node, path string) error {
	spec := shapeOf(item)
	ellipse, err := r.g.doc.CreateEllipse(ctx)
	if err != nil {
		return err
	}
	if err := attach(parent, ellipse); err != nil {
		return err
	}

	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = defaultEllipseSize, defaultEllipseSize
	}
	r.mutate(ctx, path, "resize", func() error { return ellipse.Resize(width, height) })
	r.fill(ctx, ellipse, spec.Fill, path)
	r.applyChildLayout(ctx, ellipse, parent, item.Layout, path)
	return nil
}

// fill paints node from ref and records the tier that produced the color.
func (r *run) fill(ctx context.Context, node ports.Node, ref *tree.ColorRef, path string) {
	if ref.IsZero() {
		return
	}
	res, err := r.g.filler.ApplyFill(ctx, node, ref)
	if err != nil {
		r.diagnose(ctx, kindOf(err), path, "fill: %v", err)
		return
	}
	if res.Source == resolve.SourceFallback {
		r.diagnose(ctx, KindUnresolvedReference, path, "color %q not found; using fallback", ref.Name)
		return
	}
	r.log.Debug(ctx, "fill applied", "node_path", path, "source", string(res.Source))
}

func shapeOf(item *tree.Node) *tree.ShapeSpec {
	if item.Shape == nil {
		return &tree.ShapeSpec{}
	}
	return item.Shape
}
