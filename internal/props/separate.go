// Package props splits a component reference's free-form properties into the
// partitions the slot matchers consume.
package props

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VariantsKey is the property holding an explicit variants object.
const VariantsKey = "variants"

// contentKeys pass through Separate untouched when a key contains one of them.
var contentKeys = []string{
	"text", "supporting-text", "trailing-text", "headline", "subtitle", "value",
	"horizontalSizing", "verticalSizing", "layoutAlign", "layoutGrow",
}

// variantAxes are property names treated as variant axes. Both the lower-case
// and capitalised spellings are matched exactly.
var variantAxes = []string{
	"condition", "leading", "trailing", "state", "style", "size", "type", "emphasis", "variant",
}

var (
	variantAxisSet = buildVariantAxisSet()
	whitespace     = regexp.MustCompile(`\s+`)
)

func buildVariantAxisSet() map[string]struct{} {
	set := make(map[string]struct{}, len(variantAxes)*2)
	for _, axis := range variantAxes {
		set[axis] = struct{}{}
		set[Capitalize(axis)] = struct{}{}
	}
	return set
}

// Capitalize upper-cases the first letter of s and leaves the rest alone.
// Casers hold state, so each call builds its own.
func Capitalize(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// Separated holds content properties apart from variant requests.
type Separated struct {
	Content  map[string]interface{}
	Variants map[string]interface{}
}

// Separate moves variant requests out of properties. An explicit "variants"
// object is merged as-is, known variant-axis names are capitalised, and every
// other key stays in Content. The input map is not modified.
func Separate(properties map[string]interface{}, componentID string) Separated {
	sep := Separated{
		Content:  make(map[string]interface{}),
		Variants: make(map[string]interface{}),
	}
	for _, key := range sortedKeys(properties) {
		value := properties[key]
		if key == VariantsKey {
			if nested, ok := value.(map[string]interface{}); ok {
				for k, v := range nested {
					sep.Variants[k] = v
				}
				continue
			}
		}
		if isContentKey(key) {
			sep.Content[key] = value
			continue
		}
		if _, ok := variantAxisSet[key]; ok {
			sep.Variants[Capitalize(key)] = value
			continue
		}
		sep.Content[key] = value
	}
	return sep
}

func isContentKey(key string) bool {
	lower := strings.ToLower(key)
	for _, known := range contentKeys {
		if strings.Contains(lower, strings.ToLower(known)) {
			return true
		}
	}
	return false
}

// Sanitize returns a copy of content with whitespace runs in keys replaced
// by a hyphen and the values of keys mentioning "text" stringified.
func Sanitize(content map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(content))
	for _, key := range sortedKeys(content) {
		value := content[key]
		clean := whitespace.ReplaceAllString(key, "-")
		if strings.Contains(strings.ToLower(key), "text") && value != nil {
			value = Stringify(value)
		}
		out[clean] = value
	}
	return out
}

// Stringify renders a property value as display text. Lists are joined with
// commas.
func Stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	case []interface{}:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(value)
	}
}
