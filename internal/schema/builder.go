package schema

import (
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
)

const defaultMaxItems = 10

// arrayPatterns lists, per component type, the layer-name fragments that hold
// a list of values rather than a single one.
var arrayPatterns = map[string][]string{
	"tab":        {"label"},
	"tabs":       {"label"},
	"chip":       {"label", "text"},
	"list":       {"item", "option", "choice"},
	"navigation": {"label", "text"},
	"menu":       {"item", "option", "label"},
	"breadcrumb": {"item", "label"},
	"carousel":   {"caption", "title"},
}

var maxItemsByType = map[string]int{
	"tab":        8,
	"tabs":       8,
	"navigation": 6,
	"chip":       10,
	"list":       50,
	"menu":       20,
	"breadcrumb": 5,
	"carousel":   10,
}

// Build derives a component schema from one scan record.
func Build(info inventory.ComponentInfo) *ComponentSchema {
	componentType := info.SuggestedType
	if componentType == "" {
		componentType = "unknown"
	}

	s := &ComponentSchema{
		ID:            info.ID,
		Name:          info.Name,
		ComponentType: componentType,
		Variants:      buildVariants(info),
		TextLayers:    make(map[string]TextLayer, len(info.TextHierarchy)),
		MediaLayers:   make(map[string]MediaLayer),
		ScannedAt:     info.ScannedAt,
		ScanVersion:   ScanVersion,
	}

	for _, text := range info.TextHierarchy {
		layer := TextLayer{
			NodeID:     text.NodeID,
			NodeName:   text.NodeName,
			Rank:       Rank(text.Classification),
			Shape:      InferShape(componentType, text.NodeName),
			FontSize:   text.FontSize,
			FontWeight: text.FontWeight,
		}
		if layer.Rank == "" {
			layer.Rank = RankSecondary
		}
		if layer.Shape == ShapeArray {
			layer.MaxItems = InferMaxItems(componentType)
		}
		s.TextLayers[text.NodeName] = layer
	}

	for _, inst := range info.ComponentInstances {
		s.MediaLayers[inst.NodeName] = mediaLayer(inst.NodeID, inst.NodeName, inst.Visible)
	}
	for _, vec := range info.VectorNodes {
		s.MediaLayers[vec.NodeName] = mediaLayer(vec.NodeID, vec.NodeName, vec.Visible)
	}
	for _, img := range info.ImageNodes {
		s.MediaLayers[img.NodeName] = mediaLayer(img.NodeID, img.NodeName, img.Visible)
	}

	return s
}

func buildVariants(info inventory.ComponentInfo) map[string][]string {
	variants := make(map[string][]string)
	if len(info.VariantDetails) > 0 {
		for axis, detail := range info.VariantDetails {
			variants[axis] = append([]string(nil), detail.Values...)
		}
		return variants
	}
	for axis, values := range info.Variants {
		variants[axis] = append([]string(nil), values...)
	}
	return variants
}

func mediaLayer(id, name string, visible bool) MediaLayer {
	return MediaLayer{
		NodeID:    id,
		NodeName:  name,
		MediaType: InferMediaType(name),
		Visible:   visible,
	}
}

// InferShape reports whether a text layer of the given component type holds
// a list of values.
func InferShape(componentType, layerName string) Shape {
	patterns, ok := arrayPatterns[componentType]
	if !ok {
		return ShapeScalar
	}
	lower := strings.ToLower(layerName)
	for _, pattern := range patterns {
		if strings.Contains(lower, pattern) {
			return ShapeArray
		}
	}
	return ShapeScalar
}

// InferMaxItems returns the list capacity for array slots of componentType.
func InferMaxItems(componentType string) int {
	if n, ok := maxItemsByType[componentType]; ok {
		return n
	}
	return defaultMaxItems
}

// InferMediaType classifies a media layer by its name.
func InferMediaType(name string) MediaType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "avatar"), strings.Contains(lower, "profile"):
		return MediaAvatar
	case strings.Contains(lower, "badge"), strings.Contains(lower, "indicator"):
		return MediaBadge
	case strings.Contains(lower, "image"), strings.Contains(lower, "photo"):
		return MediaImage
	default:
		return MediaIcon
	}
}
