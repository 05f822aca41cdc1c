package match

import (
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

// MediaKind is the structural kind of a media candidate.
type MediaKind string

const (
	MediaVector   MediaKind = "vector"
	MediaShape    MediaKind = "image-shape"
	MediaInstance MediaKind = "instance"
)

// MediaCandidate is a node inside an instance that could carry media.
type MediaCandidate struct {
	NodeID string
	Name   string
	Kind   MediaKind
}

// MediaKindOf maps a host node type to a media kind.
func MediaKindOf(t ports.NodeType) (MediaKind, bool) {
	switch t {
	case ports.NodeTypeVector:
		return MediaVector, true
	case ports.NodeTypeRectangle, ports.NodeTypeEllipse:
		return MediaShape, true
	case ports.NodeTypeInstance, ports.NodeTypeComponent:
		return MediaInstance, true
	default:
		return "", false
	}
}

// Buckets groups media candidates by semantic role.
type Buckets struct {
	Avatars           []MediaCandidate
	Icons             []MediaCandidate
	Badges            []MediaCandidate
	Logos             []MediaCandidate
	Vectors           []MediaCandidate
	Images            []MediaCandidate
	SmallImages       []MediaCandidate
	LargeImages       []MediaCandidate
	Circles           []MediaCandidate
	RectangularImages []MediaCandidate
}

// ClassifyMedia sorts candidates into buckets by name keywords. Each
// candidate lands in exactly one primary bucket; images are additionally
// sub-classified by size and shape.
func ClassifyMedia(candidates []MediaCandidate) Buckets {
	var b Buckets
	for _, c := range candidates {
		name := strings.ToLower(c.Name)
		switch {
		case containsAny(name, "avatar", "profile", "user", "person", "selfie", "face", "man", "woman", "people") ||
			(c.Kind == MediaShape && strings.Contains(name, "photo")):
			b.Avatars = append(b.Avatars, c)
		case containsAny(name, "icon", "symbol", "pictogram") || (c.Kind == MediaVector && len(name) < 10):
			b.Icons = append(b.Icons, c)
		case containsAny(name, "badge", "indicator", "status", "notification", "dot", "alert"):
			b.Badges = append(b.Badges, c)
		case containsAny(name, "logo", "brand", "company"):
			b.Logos = append(b.Logos, c)
		case c.Kind == MediaVector:
			b.Vectors = append(b.Vectors, c)
		case c.Kind == MediaShape || containsAny(name, "image", "picture", "photo"):
			b.Images = append(b.Images, c)
			switch {
			case containsAny(name, "small", "mini", "thumb"):
				b.SmallImages = append(b.SmallImages, c)
			case containsAny(name, "large", "big", "cover"):
				b.LargeImages = append(b.LargeImages, c)
			}
			if containsAny(name, "circle", "round") {
				b.Circles = append(b.Circles, c)
			} else {
				b.RectangularImages = append(b.RectangularImages, c)
			}
		case c.Kind == MediaInstance:
			b.Images = append(b.Images, c)
		}
	}
	return b
}

// MediaMatch is the advisory outcome of a media search.
type MediaMatch struct {
	Candidate   MediaCandidate
	Method      Method
	Reason      string
	Suggestions []string
}

// Found reports whether a candidate was chosen.
func (m MediaMatch) Found() bool {
	return m.Method != MethodNone
}

// Media picks the candidate a media property for key would land on: exact
// name, then substring, then semantic bucket, then position keywords, then
// size keywords. Nothing is mutated.
func Media(key string, candidates []MediaCandidate, b Buckets) MediaMatch {
	if len(candidates) == 0 {
		return MediaMatch{Method: MethodNone, Reason: "no media slots found in component"}
	}
	lowerKey := strings.ToLower(key)

	// Unnamed slots only take part in the keyword passes.
	for _, c := range candidates {
		name := strings.ToLower(c.Name)
		if name == "" {
			continue
		}
		if name == lowerKey || strings.ReplaceAll(name, " ", "-") == lowerKey {
			return MediaMatch{Candidate: c, Method: MethodExactName, Reason: "exact name"}
		}
	}
	for _, c := range candidates {
		name := strings.ToLower(c.Name)
		if name == "" || lowerKey == "" {
			continue
		}
		if strings.Contains(name, lowerKey) || strings.Contains(lowerKey, name) {
			return MediaMatch{Candidate: c, Method: MethodPartialName, Reason: "partial name"}
		}
	}
	if c, ok := semanticBucket(lowerKey, b); ok {
		return MediaMatch{Candidate: c, Method: MethodSemanticBucket, Reason: "semantic bucket"}
	}
	if c, ok := positionMatch(lowerKey, candidates, b); ok {
		return MediaMatch{Candidate: c, Method: MethodPosition, Reason: "position keyword"}
	}
	if c, ok := sizeMatch(lowerKey, b); ok {
		return MediaMatch{Candidate: c, Method: MethodSize, Reason: "size keyword"}
	}

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.Name
	}
	return MediaMatch{
		Method:      MethodNone,
		Reason:      "no matching media slot found for \"" + key + "\"",
		Suggestions: suggestions,
	}
}

func semanticBucket(key string, b Buckets) (MediaCandidate, bool) {
	switch {
	case containsAny(key, "avatar", "profile", "user"):
		return first(b.Avatars, b.Images, b.Circles)
	case strings.Contains(key, "icon") && !containsAny(key, "leading", "trailing"):
		return first(b.Icons, b.Vectors, b.SmallImages)
	case containsAny(key, "image", "photo", "picture"):
		return first(b.Images, b.RectangularImages, b.Avatars)
	case containsAny(key, "logo", "brand"):
		return first(b.Logos, b.Vectors, b.Images)
	case containsAny(key, "badge", "indicator", "status"):
		return first(b.Badges, b.SmallImages, b.Vectors)
	default:
		return MediaCandidate{}, false
	}
}

var (
	leadingKeywords  = []string{"leading", "start", "left", "first", "begin"}
	trailingKeywords = []string{"trailing", "end", "right", "last", "final"}
)

func positionMatch(key string, candidates []MediaCandidate, b Buckets) (MediaCandidate, bool) {
	var keywords []string
	switch {
	case containsAny(key, "leading", "start", "left"):
		keywords = leadingKeywords
	case containsAny(key, "trailing", "end", "right"):
		keywords = trailingKeywords
	default:
		return MediaCandidate{}, false
	}
	for _, c := range candidates {
		if containsAny(strings.ToLower(c.Name), keywords...) {
			return c, true
		}
	}
	return first(b.Icons, b.Vectors)
}

func sizeMatch(key string, b Buckets) (MediaCandidate, bool) {
	switch {
	case containsAny(key, "large", "big", "cover"):
		return first(b.LargeImages, b.Images)
	case containsAny(key, "small", "mini", "thumb"):
		return first(b.SmallImages, b.Icons, b.Vectors)
	case strings.Contains(key, "icon"):
		return first(b.Vectors, b.Icons)
	default:
		return MediaCandidate{}, false
	}
}

func first(lists ...[]MediaCandidate) (MediaCandidate, bool) {
	for _, list := range lists {
		if len(list) > 0 {
			return list[0], true
		}
	}
	return MediaCandidate{}, false
}
