// Package resolve turns symbolic color and style references into concrete
// values or host style handles.
package resolve

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

// Source records which tier produced a resolved color.
type Source string

const (
	SourceToken    Source = "token"
	SourceStyle    Source = "color-style"
	SourceFallback Source = "fallback"
)

const (
	tokenTypeColor = "COLOR"
	paintSolid     = "SOLID"
)

// ColorResolver resolves color names against design tokens, then color
// styles, then a fixed fallback. It is read-only after construction.
type ColorResolver struct {
	tokens   []inventory.DesignToken
	styles   inventory.ColorStyleTable
	fallback ports.RGB
}

// NewColorResolver builds a resolver over tables with the given fallback.
func NewColorResolver(tables inventory.Tables, fallback ports.RGB) *ColorResolver {
	return &ColorResolver{
		tokens:   tables.Tokens,
		styles:   tables.Styles,
		fallback: clampRGB(fallback),
	}
}

// Color resolves name and reports the tier that produced the value. It never
// fails and every channel of the result lies in [0,1].
func (r *ColorResolver) Color(name string) (ports.RGB, Source) {
	if r == nil {
		return ports.Black, SourceFallback
	}
	if rgb, ok := r.token(name); ok {
		return rgb, SourceToken
	}
	if rgb, ok := r.style(name); ok {
		return rgb, SourceStyle
	}
	return r.fallback, SourceFallback
}

func (r *ColorResolver) token(name string) (ports.RGB, bool) {
	matchers := []func(inventory.DesignToken) bool{
		func(t inventory.DesignToken) bool { return t.Name == name },
		func(t inventory.DesignToken) bool { return strings.EqualFold(t.Name, name) },
		func(t inventory.DesignToken) bool {
			return t.Collection != "" && strings.EqualFold(t.Collection+"/"+t.Name, name)
		},
	}
	for _, match := range matchers {
		for _, token := range r.tokens {
			if !isColorToken(token) || !match(token) {
				continue
			}
			if rgb, ok := tokenValue(token.Value); ok {
				return rgb, true
			}
		}
	}
	return ports.RGB{}, false
}

func isColorToken(t inventory.DesignToken) bool {
	return t.Type == "" || strings.EqualFold(t.Type, tokenTypeColor)
}

func (r *ColorResolver) style(name string) (ports.RGB, bool) {
	matchers := []func(string) bool{
		func(s string) bool { return s == name },
		func(s string) bool { return strings.EqualFold(s, name) },
	}
	for _, match := range matchers {
		for _, category := range inventory.CategoryOrder {
			for _, style := range r.styles[category] {
				if !match(style.Name) {
					continue
				}
				if style.ColorInfo.Type != "" && style.ColorInfo.Type != paintSolid {
					continue
				}
				if rgb, err := ParseHex(style.ColorInfo.Color); err == nil {
					return rgb, true
				}
			}
		}
	}
	return ports.RGB{}, false
}

// tokenValue converts an {r,g,b} object or a hex string to RGB.
func tokenValue(v interface{}) (ports.RGB, bool) {
	switch value := v.(type) {
	case string:
		rgb, err := ParseHex(value)
		return rgb, err == nil
	case ports.RGB:
		return clampRGB(value), true
	case map[string]interface{}:
		return rgbFromMap(value)
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(value))
		for k, item := range value {
			converted[fmt.Sprint(k)] = item
		}
		return rgbFromMap(converted)
	default:
		return ports.RGB{}, false
	}
}

func rgbFromMap(m map[string]interface{}) (ports.RGB, bool) {
	var channels [3]float64
	for i, key := range []string{"r", "g", "b"} {
		raw, ok := m[key]
		if !ok {
			return ports.RGB{}, false
		}
		n, _ := tree.Number(raw)
		channels[i] = n
	}
	return clampRGB(ports.RGB{R: channels[0], G: channels[1], B: channels[2]}), true
}

// ParseHex parses "#rgb" or "#rrggbb", with or without the leading '#'.
func ParseHex(s string) (ports.RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		var expanded strings.Builder
		for _, ch := range hex {
			expanded.WriteRune(ch)
			expanded.WriteRune(ch)
		}
		hex = expanded.String()
	}
	if len(hex) != 6 {
		return ports.RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return ports.RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return clampRGB(ports.RGB{R: c.R, G: c.G, B: c.B}), nil
}

// Hex formats rgb as "#rrggbb".
func Hex(rgb ports.RGB) string {
	return colorful.Color{R: rgb.R, G: rgb.G, B: rgb.B}.Clamped().Hex()
}

func clampRGB(c ports.RGB) ports.RGB {
	return ports.RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
