// Package match locates the variant values, text layers and media layers of
// a component instance that a requested property should land on.
package match

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/canvasgen/internal/props"
)

// Method names the strategy that produced a match.
type Method string

const (
	MethodSchemaSlot     Method = "schema-slot"
	MethodExactName      Method = "exact-name"
	MethodSemantic       Method = "semantic-classification"
	MethodPartialName    Method = "partial-name"
	MethodLegacyKeyword  Method = "legacy-keyword"
	MethodPositional     Method = "positional-fallback"
	MethodSemanticBucket Method = "semantic-bucket"
	MethodPosition       Method = "position-keyword"
	MethodSize           Method = "size-keyword"
	MethodNone           Method = "none"
)

// Rejection explains why a requested variant value was dropped.
type Rejection struct {
	Axis    string
	Value   string
	Reason  string
	Options []string
}

func (r Rejection) String() string {
	if len(r.Options) == 0 {
		return fmt.Sprintf("%s %q: %s", r.Axis, r.Value, r.Reason)
	}
	return fmt.Sprintf("%s %q: %s (available: %v)", r.Axis, r.Value, r.Reason, r.Options)
}

// VariantResult holds the accepted axis values and the dropped requests.
type VariantResult struct {
	Accepted map[string]string
	Rejected []Rejection
}

// Variants checks requested values against the instance's variant axes. A
// boolean is coerced to "True" or "False"; other values are stringified. It
// never fails: requests for unknown axes or illegal values are rejected.
func Variants(axes map[string][]string, requested map[string]interface{}) VariantResult {
	result := VariantResult{Accepted: make(map[string]string)}

	keys := make([]string, 0, len(requested))
	for k := range requested {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, axis := range keys {
		value := CoerceVariant(requested[axis])
		options, ok := axes[axis]
		if !ok {
			result.Rejected = append(result.Rejected, Rejection{
				Axis:    axis,
				Value:   value,
				Reason:  "unknown variant property",
				Options: axisNames(axes),
			})
			continue
		}
		if !contains(options, value) {
			result.Rejected = append(result.Rejected, Rejection{
				Axis:    axis,
				Value:   value,
				Reason:  "invalid value",
				Options: append([]string(nil), options...),
			})
			continue
		}
		result.Accepted[axis] = value
	}
	return result
}

// CoerceVariant converts a requested variant value to its axis spelling.
func CoerceVariant(v interface{}) string {
	if b, ok := v.(bool); ok {
		if b {
			return "True"
		}
		return "False"
	}
	return props.Stringify(v)
}

func axisNames(axes map[string][]string) []string {
	names := make([]string, 0, len(axes))
	for name := range axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
