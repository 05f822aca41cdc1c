package tree

import (
	"github.com/ohler55/ojg/alt"
)

// LabelKey is the property that carries the label array of a merged run.
const LabelKey = "Label"

// NormalizeOptions configures the normalization pass.
type NormalizeOptions struct {
	// RepeatableKinds lists item types whose adjacent runs collapse into a
	// single multi-label item.
	RepeatableKinds []string
}

// DefaultNormalizeOptions merges tab runs only.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{RepeatableKinds: []string{"tab"}}
}

type normalizer struct {
	repeatable map[string]struct{}
}

// Normalize rewrites a generic declarative tree into its canonical shape. It
// never fails and never mutates its input: the tree is deep-copied first.
//
// Adjacent runs of two or more repeatable items collapse into a copy of the
// first item whose properties.Label is the ordered list of the run's labels.
// Non-adjacent items of the same type are left as they are. A bare item array
// at the root is lifted into {"items": [...]}. The pass is idempotent.
func Normalize(doc interface{}, opts NormalizeOptions) interface{} {
	n := normalizer{repeatable: make(map[string]struct{}, len(opts.RepeatableKinds))}
	for _, kind := range opts.RepeatableKinds {
		n.repeatable[kind] = struct{}{}
	}

	switch root := alt.Dup(doc).(type) {
	case []interface{}:
		return map[string]interface{}{"items": n.list(root)}
	case map[string]interface{}:
		n.walk(root)
		return root
	default:
		return root
	}
}

func (n normalizer) walk(node map[string]interface{}) {
	if items, ok := node["items"].([]interface{}); ok {
		node["items"] = n.list(items)
	}
	if container, ok := node[TypeLayoutContainer].(map[string]interface{}); ok {
		n.walk(container)
	}
}

func (n normalizer) list(items []interface{}) []interface{} {
	out := make([]interface{}, 0, len(items))
	for i := 0; i < len(items); {
		item, ok := items[i].(map[string]interface{})
		if !ok {
			out = append(out, items[i])
			i++
			continue
		}

		kind, repeatable := n.repeatableType(item)
		j := i + 1
		if repeatable {
			for j < len(items) {
				next, isMap := items[j].(map[string]interface{})
				if !isMap || itemType(next) != kind {
					break
				}
				j++
			}
		}

		if j-i >= 2 {
			item = mergeRun(items[i:j])
		}
		n.walk(item)
		out = append(out, item)
		i = j
	}
	return out
}

func (n normalizer) repeatableType(item map[string]interface{}) (string, bool) {
	kind := itemType(item)
	if kind == "" {
		return "", false
	}
	_, ok := n.repeatable[kind]
	return kind, ok
}

func mergeRun(run []interface{}) map[string]interface{} {
	first := run[0].(map[string]interface{})
	merged := make(map[string]interface{}, len(first))
	for k, v := range first {
		merged[k] = v
	}

	props := make(map[string]interface{})
	if existing, ok := first["properties"].(map[string]interface{}); ok {
		for k, v := range existing {
			props[k] = v
		}
	}

	labels := make([]interface{}, 0, len(run))
	for _, raw := range run {
		labels = append(labels, runLabels(raw.(map[string]interface{}))...)
	}
	props[LabelKey] = labels
	merged["properties"] = props
	return merged
}

func runLabels(item map[string]interface{}) []interface{} {
	props, ok := item["properties"].(map[string]interface{})
	if !ok {
		return nil
	}
	value, ok := props[LabelKey]
	if !ok {
		value, ok = props["label"]
	}
	if !ok || value == nil {
		return nil
	}
	if list, isList := value.([]interface{}); isList {
		return list
	}
	return []interface{}{value}
}

func itemType(item map[string]interface{}) string {
	kind, _ := item["type"].(string)
	return kind
}
