package tree

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

var containerKeys = []string{
	"name", "layoutMode", "paddingTop", "paddingRight", "paddingBottom", "paddingLeft",
	"itemSpacing", "layoutWrap", "primaryAxisAlignItems", "counterAxisAlignItems",
	"primaryAxisSizingMode", "counterAxisSizingMode", "width", "height",
	"minWidth", "maxWidth", "minHeight", "maxHeight", "items",
}

var layoutKeys = []string{
	"horizontalSizing", "verticalSizing", "layoutAlign", "layoutGrow", "layoutPositioning",
	"minWidth", "maxWidth", "minHeight", "maxHeight",
}

var itemKeys = []string{
	"type", "properties", "variants", TypeLayoutContainer, "componentNodeId",
	"visibilityOverrides", "iconSwaps", "text", "content", "characters",
	"fill", "cornerRadius", "color",
}

// Decode converts a normalized generic tree into the typed model. Only the
// root shape can fail: it must be an object or an item array.
func Decode(v interface{}) (*Document, error) {
	var root map[string]interface{}
	switch typed := v.(type) {
	case map[string]interface{}:
		root = typed
	case []interface{}:
		root = map[string]interface{}{"items": typed}
	default:
		return nil, fmt.Errorf("declarative root must be an object or an array, got %s", typeName(v))
	}

	containerData := root
	nested, configured := root[TypeLayoutContainer].(map[string]interface{})
	if configured {
		containerData = nested
	}

	container := decodeContainer(containerData)
	items, ok := root["items"].([]interface{})
	if !ok {
		items, _ = containerData["items"].([]interface{})
	}
	container.Items = decodeItems(items)

	return &Document{Container: container, Configured: configured}, nil
}

func decodeItems(raw []interface{}) []Node {
	nodes := make([]Node, 0, len(raw))
	for _, entry := range raw {
		item, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		nodes = append(nodes, decodeItem(item))
	}
	return nodes
}

func decodeItem(item map[string]interface{}) Node {
	kind := itemType(item)
	node := Node{Type: kind}

	switch {
	case kind == TypeLayoutContainer:
		spec := decodeContainer(item)
		items, _ := item["items"].([]interface{})
		spec.Items = decodeItems(items)
		node.Kind = KindContainer
		node.Container = &spec
		node.Layout = decodeLayout(item)
	case kind == TypeFrame && isMap(item[TypeLayoutContainer]):
		nested := item[TypeLayoutContainer].(map[string]interface{})
		spec := decodeContainer(nested)
		items, ok := item["items"].([]interface{})
		if !ok {
			items, _ = nested["items"].([]interface{})
		}
		spec.Items = decodeItems(items)
		node.Kind = KindFrame
		node.Container = &spec
	case kind == TypeNativeText || kind == TypeText:
		node.Kind = KindText
		node.Text = decodeText(item)
		node.Layout = decodeLayout(attributeSource(item))
	case kind == TypeNativeRectangle:
		node.Kind = KindRectangle
		node.Shape = decodeShape(item)
		node.Layout = decodeLayout(mergedAttributes(item))
	case kind == TypeNativeCircle:
		node.Kind = KindEllipse
		node.Shape = decodeShape(item)
		node.Layout = decodeLayout(mergedAttributes(item))
	default:
		node.Kind = KindComponentRef
		node.Component = decodeComponent(item)
	}

	node.Extra = extraFields(item)
	return node
}

func decodeContainer(m map[string]interface{}) ContainerSpec {
	spec := ContainerSpec{
		Name:                  stringField(m, "name"),
		LayoutMode:            stringField(m, "layoutMode"),
		LayoutWrap:            stringField(m, "layoutWrap"),
		PrimaryAxisAlignItems: stringField(m, "primaryAxisAlignItems"),
		CounterAxisAlignItems: stringField(m, "counterAxisAlignItems"),
		PrimaryAxisSizingMode: stringField(m, "primaryAxisSizingMode"),
		CounterAxisSizingMode: stringField(m, "counterAxisSizingMode"),
		MinWidth:              numberPtr(m, "minWidth"),
		MaxWidth:              numberPtr(m, "maxWidth"),
		MinHeight:             numberPtr(m, "minHeight"),
		MaxHeight:             numberPtr(m, "maxHeight"),
	}
	spec.PaddingTop, _ = numberField(m, "paddingTop")
	spec.PaddingRight, _ = numberField(m, "paddingRight")
	spec.PaddingBottom, _ = numberField(m, "paddingBottom")
	spec.PaddingLeft, _ = numberField(m, "paddingLeft")
	spec.Width, _ = numberField(m, "width")
	spec.Height, _ = numberField(m, "height")

	if s, ok := m["itemSpacing"].(string); ok && strings.EqualFold(s, ports.SpacingAuto) {
		spec.ItemSpacing = Spacing{Auto: true}
	} else if gap, ok := numberField(m, "itemSpacing"); ok {
		spec.ItemSpacing = Spacing{Value: gap}
	}
	return spec
}

func decodeText(item map[string]interface{}) *TextSpec {
	props := attributeSource(item)
	nested, _ := item["properties"].(map[string]interface{})

	content := firstString(item, "text", "content")
	if content == "" {
		content = stringField(nested, "content")
	}
	if content == "" {
		content = stringField(item, "characters")
	}
	if content == "" {
		content = stringField(nested, "text")
	}
	if content == "" {
		content = "Text"
	}

	size, ok := firstNumber(props, "fontSize", "size", "textSize")
	if !ok || size <= 0 {
		size = 16
	}

	spec := &TextSpec{
		Content:        content,
		FontSize:       size,
		Bold:           stringField(props, "fontWeight") == "bold" || stringField(props, "weight") == "bold" || stringField(props, "style") == "bold",
		Align:          textAlign(firstString(props, "alignment", "textAlign")),
		Color:          decodeColor(props["color"]),
		ColorStyleName: stringField(props, "colorStyleName"),
		TextStyleName:  firstString(props, "textStyle", "textStyleName"),
	}
	return spec
}

func decodeShape(item map[string]interface{}) *ShapeSpec {
	attrs := mergedAttributes(item)
	spec := &ShapeSpec{Fill: decodeColor(attrs["fill"])}
	width, wOK := numberField(attrs, "width")
	height, hOK := numberField(attrs, "height")
	if wOK && hOK && width > 0 && height > 0 {
		spec.Width, spec.Height = width, height
	}
	spec.CornerRadius, _ = numberField(attrs, "cornerRadius")
	return spec
}

func decodeComponent(item map[string]interface{}) *ComponentSpec {
	spec := &ComponentSpec{
		ComponentType: itemType(item),
		ComponentID:   stringField(item, "componentNodeId"),
		Properties:    map[string]interface{}{},
		Variants:      map[string]interface{}{},
	}
	if props, ok := item["properties"].(map[string]interface{}); ok {
		for k, v := range props {
			spec.Properties[k] = v
		}
	}
	if variants, ok := item["variants"].(map[string]interface{}); ok {
		for k, v := range variants {
			spec.Variants[k] = v
		}
	}
	if overrides, ok := item["visibilityOverrides"].(map[string]interface{}); ok {
		spec.VisibilityOverrides = make(map[string]bool, len(overrides))
		for id, raw := range overrides {
			if visible, isBool := raw.(bool); isBool {
				spec.VisibilityOverrides[id] = visible
			}
		}
	}
	if swaps, ok := item["iconSwaps"].(map[string]interface{}); ok {
		spec.IconSwaps = make(map[string]string, len(swaps))
		for id, raw := range swaps {
			if name, isString := raw.(string); isString {
				spec.IconSwaps[id] = name
			}
		}
	}
	return spec
}

// DecodeLayout reads child layout participation fields from a property bag.
func DecodeLayout(m map[string]interface{}) Layout {
	return decodeLayout(m)
}

func decodeLayout(m map[string]interface{}) Layout {
	return Layout{
		HorizontalSizing:  stringField(m, "horizontalSizing"),
		VerticalSizing:    stringField(m, "verticalSizing"),
		LayoutAlign:       stringField(m, "layoutAlign"),
		LayoutGrow:        numberPtr(m, "layoutGrow"),
		LayoutPositioning: stringField(m, "layoutPositioning"),
		MinWidth:          numberPtr(m, "minWidth"),
		MaxWidth:          numberPtr(m, "maxWidth"),
		MinHeight:         numberPtr(m, "minHeight"),
		MaxHeight:         numberPtr(m, "maxHeight"),
	}
}

func decodeColor(raw interface{}) *ColorRef {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &ColorRef{Name: v}
	case map[string]interface{}:
		r, rOK := numberField(v, "r")
		g, gOK := numberField(v, "g")
		b, bOK := numberField(v, "b")
		if !rOK && !gOK && !bOK {
			return nil
		}
		return &ColorRef{RGB: &ports.RGB{R: r, G: g, B: b}}
	default:
		return nil
	}
}

func textAlign(value string) string {
	switch strings.ToLower(value) {
	case "center":
		return "CENTER"
	case "right":
		return "RIGHT"
	default:
		return "LEFT"
	}
}

// attributeSource returns the properties object when present, else the item.
func attributeSource(item map[string]interface{}) map[string]interface{} {
	if props, ok := item["properties"].(map[string]interface{}); ok {
		return props
	}
	return item
}

// mergedAttributes overlays the properties object on the item's own fields.
func mergedAttributes(item map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(item))
	for k, v := range item {
		merged[k] = v
	}
	if props, ok := item["properties"].(map[string]interface{}); ok {
		for k, v := range props {
			merged[k] = v
		}
	}
	return merged
}

func extraFields(item map[string]interface{}) map[string]interface{} {
	known := make(map[string]struct{}, len(itemKeys)+len(containerKeys)+len(layoutKeys))
	for _, group := range [][]string{itemKeys, containerKeys, layoutKeys} {
		for _, key := range group {
			known[key] = struct{}{}
		}
	}
	var extra map[string]interface{}
	for k, v := range item {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra[k] = v
	}
	return extra
}

func isMap(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := stringField(m, key); s != "" {
			return s
		}
	}
	return ""
}

// Number converts a decoded JSON number of any width to float64.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func numberField(m map[string]interface{}, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	return Number(m[key])
}

func firstNumber(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := numberField(m, key); ok && n != 0 {
			return n, true
		}
	}
	return 0, false
}

func numberPtr(m map[string]interface{}, key string) *float64 {
	n, ok := numberField(m, key)
	if !ok {
		return nil
	}
	return &n
}
