package tree

import (
	"regexp"
	"strings"

	"github.com/ohler55/ojg/jp"
)

var (
	concreteIDPattern = regexp.MustCompile(`^[0-9]+:[0-9]+$`)
	allItems          = jp.MustParseString("$..items[*]")
)

// ComponentLookup maps a component type such as "list-item" to a concrete
// component identifier.
type ComponentLookup func(componentType string) (string, bool)

// Unresolved describes a componentRef item whose identifier could not be
// resolved.
type Unresolved struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// IsPlaceholderID reports whether id looks like a generated stand-in rather
// than a host node identifier.
func IsPlaceholderID(id string) bool {
	return strings.Contains(id, "_id") ||
		strings.Contains(id, "placeholder") ||
		!concreteIDPattern.MatchString(id)
}

// ResolveComponentIDs rewrites, in place, the componentNodeId of every
// componentRef item in a generic tree whose identifier is missing or a
// placeholder. Call it on the output of Normalize, never on caller-owned data.
// Items the lookup cannot resolve are returned in document order.
func ResolveComponentIDs(doc interface{}, lookup ComponentLookup) []Unresolved {
	var missing []Unresolved
	for _, hit := range allItems.Get(doc) {
		item, ok := hit.(map[string]interface{})
		if !ok || !isComponentItem(item) {
			continue
		}
		kind := itemType(item)
		id := stringField(item, "componentNodeId")
		if id != "" && !IsPlaceholderID(id) {
			continue
		}
		if lookup != nil && kind != "" {
			if resolved, found := lookup(kind); found {
				item["componentNodeId"] = resolved
				continue
			}
		}
		missing = append(missing, Unresolved{Type: kind, ID: id})
	}
	return missing
}

func isComponentItem(item map[string]interface{}) bool {
	switch itemType(item) {
	case TypeLayoutContainer, TypeNativeText, TypeText, TypeNativeRectangle, TypeNativeCircle:
		return false
	case TypeFrame:
		return !isMap(item[TypeLayoutContainer])
	default:
		return true
	}
}
