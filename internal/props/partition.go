package props

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
)

// Resolved is the four-way partition of a component's properties. A key
// appears in at most one partition.
type Resolved struct {
	Variants map[string]interface{}
	Text     map[string]interface{}
	Media    map[string]interface{}
	Layout   map[string]interface{}
}

func newResolved() Resolved {
	return Resolved{
		Variants: make(map[string]interface{}),
		Text:     make(map[string]interface{}),
		Media:    make(map[string]interface{}),
		Layout:   make(map[string]interface{}),
	}
}

var layoutKeys = []string{
	"horizontalSizing", "verticalSizing", "layoutAlign", "layoutGrow",
	"minWidth", "maxWidth", "minHeight", "maxHeight",
}

var mediaKeywords = []string{
	"icon", "image", "avatar", "photo", "logo", "media", "badge", "picture", "thumbnail",
}

// semanticEquivalents maps a key fragment to slot-name fragments it may
// stand for, in preference order.
var semanticEquivalents = []struct {
	fragment    string
	equivalents []string
}{
	{fragment: "text", equivalents: []string{"label", "title", "headline", "content"}},
	{fragment: "label", equivalents: []string{"text", "title", "headline"}},
	{fragment: "supporting", equivalents: []string{"subtitle", "description", "secondary"}},
	{fragment: "trailing", equivalents: []string{"end", "right", "action"}},
	{fragment: "leading", equivalents: []string{"start", "left", "icon"}},
}

// variantPurposes describes what common variant axes control, per component
// type, for warning hints.
var variantPurposes = map[string]map[string]string{
	"tab": {
		"Type":          "layout behavior (Fixed vs Scrollable)",
		"Style":         "visual emphasis (Primary vs Secondary)",
		"Configuration": "content structure (Label-only vs Label & Icon)",
	},
}

// preprocessors normalise properties for component types with list slots.
var preprocessors = map[string]func(map[string]interface{}){
	"tab":  func(p map[string]interface{}) { wrapScalar(p, "Label") },
	"tabs": func(p map[string]interface{}) { wrapScalar(p, "Label") },
	"chip": func(p map[string]interface{}) { wrapScalar(p, "label") },
}

var separators = regexp.MustCompile(`[-_\s]`)

// Partition routes separated properties into variant, text, media and layout
// partitions using the component schema when one exists. It never fails;
// the returned warnings describe remapped keys and invalid variant values.
func Partition(sep Separated, s *schema.ComponentSchema) (Resolved, []string) {
	res := newResolved()
	var warnings []string

	for key, value := range sep.Variants {
		res.Variants[key] = value
	}

	content := make(map[string]interface{}, len(sep.Content))
	for key, value := range sep.Content {
		content[key] = value
	}
	if s != nil {
		if pre, ok := preprocessors[s.ComponentType]; ok {
			pre(content)
		}
	}

	for _, key := range sortedKeys(content) {
		value := content[key]
		if _, explicit := res.Variants[key]; explicit {
			warnings = append(warnings, fmt.Sprintf("Property %q is already set as a variant; ignoring content value", key))
			continue
		}
		switch {
		case s.HasVariant(key):
			res.Variants[key] = value
		case hasTextLayer(s, key):
			res.Text[key] = value
		case hasMediaLayer(s, key):
			res.Media[key] = value
		case IsLayoutKey(key):
			res.Layout[key] = value
		default:
			warnings = append(warnings, routeUnknown(&res, s, key, value)...)
		}
	}

	warnings = append(warnings, validateVariants(res.Variants, s)...)
	warnings = append(warnings, wrapArraySlots(res.Text, s)...)
	return res, warnings
}

func routeUnknown(res *Resolved, s *schema.ComponentSchema, key string, value interface{}) []string {
	if s != nil {
		if slot, ok := FindSemanticMatch(key, sortedKeys(s.TextLayers)); ok {
			res.Text[slot] = value
			return []string{fmt.Sprintf("Mapped %q to text layer %q", key, slot)}
		}
		if axis, ok := FindSemanticMatch(key, sortedKeys(s.Variants)); ok {
			res.Variants[axis] = value
			return []string{fmt.Sprintf("Mapped %q to variant %q", key, axis)}
		}
		if slot, ok := FindSemanticMatch(key, sortedKeys(s.MediaLayers)); ok {
			res.Media[slot] = value
			return []string{fmt.Sprintf("Mapped %q to media layer %q", key, slot)}
		}
	}
	if IsMediaKey(key) {
		res.Media[key] = value
		if s != nil {
			return []string{fmt.Sprintf("Unknown property %q for component %s; treated as media", key, s.Name)}
		}
		return nil
	}
	res.Text[key] = value
	if s != nil {
		return []string{fmt.Sprintf("Unknown property %q for component %s; treated as text", key, s.Name)}
	}
	return nil
}

func validateVariants(variants map[string]interface{}, s *schema.ComponentSchema) []string {
	if s == nil {
		return nil
	}
	var warnings []string
	for _, axis := range sortedKeys(variants) {
		legal, ok := s.Variants[axis]
		if !ok {
			continue
		}
		value := variantString(variants[axis])
		if containsString(legal, value) {
			continue
		}
		quoted := make([]string, len(legal))
		for i, v := range legal {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		warning := fmt.Sprintf("Invalid value %q for variant %q. Use one of: %s", value, axis, strings.Join(quoted, ", "))
		if purpose, ok := variantPurposes[s.ComponentType][axis]; ok {
			warning += fmt.Sprintf(" (%s controls %s)", axis, purpose)
		}
		warnings = append(warnings, warning)
	}
	return warnings
}

func wrapArraySlots(text map[string]interface{}, s *schema.ComponentSchema) []string {
	if s == nil {
		return nil
	}
	var warnings []string
	for _, key := range sortedKeys(text) {
		layer, ok := s.TextLayers[key]
		if !ok || layer.Shape != schema.ShapeArray {
			continue
		}
		if _, isList := text[key].([]interface{}); isList {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("Property %q expects array but got %T. Converting to array.", key, text[key]))
		text[key] = []interface{}{text[key]}
	}
	return warnings
}

// FindSemanticMatch finds the entry of available that key most plausibly
// refers to: case-insensitive equality, then equality ignoring separators,
// then containment either way, then the semantic equivalents table.
func FindSemanticMatch(key string, available []string) (string, bool) {
	keyLower := strings.ToLower(key)
	normalizedKey := separators.ReplaceAllString(keyLower, "")
	for _, candidate := range available {
		lower := strings.ToLower(candidate)
		if lower == keyLower {
			return candidate, true
		}
		if separators.ReplaceAllString(lower, "") == normalizedKey {
			return candidate, true
		}
		if strings.Contains(lower, keyLower) || strings.Contains(keyLower, lower) {
			return candidate, true
		}
	}
	for _, entry := range semanticEquivalents {
		if !strings.Contains(keyLower, entry.fragment) {
			continue
		}
		for _, equivalent := range entry.equivalents {
			for _, candidate := range available {
				if strings.Contains(strings.ToLower(candidate), equivalent) {
					return candidate, true
				}
			}
		}
	}
	return "", false
}

// IsLayoutKey reports whether key configures layout participation.
func IsLayoutKey(key string) bool {
	lower := strings.ToLower(key)
	for _, known := range layoutKeys {
		if strings.Contains(lower, strings.ToLower(known)) {
			return true
		}
	}
	return false
}

// IsMediaKey reports whether key names a media slot by keyword.
func IsMediaKey(key string) bool {
	lower := strings.ToLower(key)
	for _, keyword := range mediaKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func hasTextLayer(s *schema.ComponentSchema, key string) bool {
	_, ok := s.TextLayer(key)
	return ok
}

func hasMediaLayer(s *schema.ComponentSchema, key string) bool {
	_, ok := s.MediaLayer(key)
	return ok
}

func wrapScalar(p map[string]interface{}, key string) {
	value, ok := p[key]
	if !ok || value == nil {
		return
	}
	if _, isList := value.([]interface{}); !isList {
		p[key] = []interface{}{value}
	}
}

// variantString coerces a variant request the way variant matching does.
func variantString(v interface{}) string {
	if b, ok := v.(bool); ok {
		if b {
			return "True"
		}
		return "False"
	}
	return Stringify(v)
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
