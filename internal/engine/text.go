package engine

import (
	"context"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/props"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

const (
	autoResizeHeight         = "HEIGHT"
	autoResizeWidthAndHeight = "WIDTH_AND_HEIGHT"
)

func (r *run) createText(ctx context.Context, parent ports.Node, item *tree.Node, path string) error {
	spec := item.Text
	if spec == nil {
		spec = &tree.TextSpec{Content: "Text", FontSize: 16}
	}
	host := r.g.doc

	text, err := host.CreateText(ctx)
	if err != nil {
		return err
	}
	if err := attach(parent, text); err != nil {
		return err
	}

	r.mutate(ctx, path, "load font "+r.opts.FallbackFont.String(), func() error {
		return host.LoadFont(ctx, r.opts.FallbackFont)
	})
	r.set(ctx, text, path, ports.FieldCharacters, spec.Content)
	if spec.FontSize > 0 {
		r.set(ctx, text, path, ports.FieldFontSize, spec.FontSize)
	}
	if spec.Bold {
		loaded := r.mutate(ctx, path, "load font "+r.opts.BoldFont.String(), func() error {
			return host.LoadFont(ctx, r.opts.BoldFont)
		})
		if loaded {
			r.set(ctx, text, path, ports.FieldFontName, r.opts.BoldFont)
		}
	}
	if spec.Align != "" {
		r.set(ctx, text, path, ports.FieldTextAlignHorizontal, spec.Align)
	}

	r.fill(ctx, text, spec.Color, path)
	if spec.ColorStyleName != "" {
		r.fill(ctx, text, &tree.ColorRef{Name: spec.ColorStyleName}, path)
	}
	if spec.TextStyleName != "" {
		if style, ok := r.g.styles.TextStyle(ctx, spec.TextStyleName); ok {
			r.set(ctx, text, path, ports.FieldTextStyleID, style.ID)
		} else {
			r.diagnose(ctx, KindUnresolvedReference, path, "text style %q not found", spec.TextStyleName)
		}
	}

	r.applyChildLayout(ctx, text, parent, item.Layout, path)
	resize := autoResizeWidthAndHeight
	if item.Layout.HorizontalSizing == sizingFill {
		resize = autoResizeHeight
	}
	r.set(ctx, text, path, ports.FieldTextAutoResize, resize)
	return nil
}

// setText writes value into a text node without letting font problems abort
// generation. A node with a missing font is never touched. When the node's
// own fonts cannot be loaded the fallback font replaces them.
func (r *run) setText(ctx context.Context, node ports.TextNode, value, path string) bool {
	if node.HasMissingFont() {
		r.diagnose(ctx, KindFont, path, "text node %q uses a missing font; left unchanged", node.Name())
		return false
	}
	if !node.Visible() {
		r.set(ctx, node, path, ports.FieldVisible, true)
	}

	written := false
	_ = r.g.track(LabelSetTextValue, func() error {
		var loadErr error
		for _, font := range node.FontNames() {
			if loadErr = r.g.doc.LoadFont(ctx, font); loadErr != nil {
				break
			}
		}
		if loadErr == nil {
			loadErr = node.Set(ports.FieldCharacters, value)
			if loadErr == nil {
				written = true
				return nil
			}
		}

		r.log.Warn(ctx, "text write failed; retrying with fallback font", "node_path", path, "node", node.Name(), "error", loadErr.Error())
		fallback := r.opts.FallbackFont
		if err := r.g.doc.LoadFont(ctx, fallback); err != nil {
			r.diagnose(ctx, KindFont, path, "text %q abandoned: fallback font %s: %v", node.Name(), fallback, err)
			return err
		}
		if err := node.Set(ports.FieldFontName, fallback); err != nil {
			r.diagnose(ctx, KindFont, path, "text %q abandoned: %v", node.Name(), err)
			return err
		}
		if err := node.Set(ports.FieldCharacters, value); err != nil {
			r.diagnose(ctx, KindFont, path, "text %q abandoned: %v", node.Name(), err)
			return err
		}
		r.diagnose(ctx, KindFont, path, "text %q written with fallback font %s", node.Name(), fallback)
		written = true
		return nil
	})
	return written
}

// textValue turns a text property into display text. Objects and empty
// values carry nothing to write.
func textValue(v interface{}) (string, bool) {
	switch v.(type) {
	case nil, map[string]interface{}, []interface{}:
		return "", false
	}
	s := props.Stringify(v)
	return s, s != ""
}
