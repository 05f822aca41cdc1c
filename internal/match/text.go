package match

import (
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/canvasgen/internal/props"
	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
)

// TextCandidate is a text node found inside an instance, in document order.
type TextCandidate struct {
	NodeID   string
	SourceID string
	Name     string
	Rank     schema.Rank
	Index    int
}

// Slot is a ranked text layer reported by the scanner for a component.
type Slot struct {
	NodeID   string
	NodeName string
	Rank     schema.Rank
}

// Candidates is the search space for one instance.
type Candidates struct {
	Nodes []TextCandidate
	Slots []Slot
}

// Match is the outcome of a slot search.
type Match struct {
	NodeID string
	Name   string
	Index  int
	Method Method
}

// Found reports whether the match located a node.
func (m Match) Found() bool {
	return m.Method != MethodNone
}

// Strategy is one step of the text fallback chain.
type Strategy struct {
	Method Method
	Find   func(key string, c Candidates) (TextCandidate, bool)
}

var semanticRanks = map[string][]schema.Rank{
	"primary-text":    {schema.RankPrimary},
	"secondary-text":  {schema.RankSecondary},
	"tertiary-text":   {schema.RankTertiary},
	"headline":        {schema.RankPrimary, schema.RankSecondary},
	"title":           {schema.RankPrimary, schema.RankSecondary},
	"content":         {schema.RankPrimary, schema.RankSecondary},
	"text":            {schema.RankPrimary, schema.RankSecondary},
	"supporting-text": {schema.RankSecondary, schema.RankTertiary},
	"supporting":      {schema.RankSecondary, schema.RankTertiary},
	"subtitle":        {schema.RankSecondary, schema.RankTertiary},
	"trailing-text":   {schema.RankTertiary, schema.RankSecondary},
	"trailing":        {schema.RankTertiary, schema.RankSecondary},
	"caption":         {schema.RankTertiary},
	"overline":        {schema.RankTertiary},
}

var legacyKeywords = map[string][]string{
	"content":         {"headline", "title", "text", "label"},
	"headline":        {"headline", "title", "text", "label"},
	"text":            {"headline", "title", "text", "label"},
	"supporting-text": {"supporting", "subtitle", "description", "body"},
	"supporting":      {"supporting", "subtitle", "description", "body"},
	"trailing-text":   {"trailing", "value", "action", "status", "end"},
	"trailing":        {"trailing", "value", "action", "status", "end"},
	"title":           {"title", "headline", "text"},
	"subtitle":        {"subtitle", "supporting", "description"},
}

// GenericStrategies is the fallback chain used for every component.
var GenericStrategies = []Strategy{
	{Method: MethodExactName, Find: exactName},
	{Method: MethodSemantic, Find: semanticRank},
	{Method: MethodPartialName, Find: partialName},
	{Method: MethodLegacyKeyword, Find: legacyKeyword},
	{Method: MethodPositional, Find: positional},
}

// Text finds the text node key should be written to. With a schema it first
// tries the slot registered under key, then semantic matching over the
// schema's slot names, before the generic chain.
func Text(key string, c Candidates, s *schema.ComponentSchema) Match {
	var chain []Strategy
	if s != nil {
		chain = append(chain, SchemaStrategies(s)...)
	}
	chain = append(chain, GenericStrategies...)
	return Run(key, c, chain)
}

// Run applies strategies in order and returns the first hit.
func Run(key string, c Candidates, chain []Strategy) Match {
	for _, strategy := range chain {
		if node, ok := strategy.Find(key, c); ok {
			return Match{NodeID: node.NodeID, Name: node.Name, Index: node.Index, Method: strategy.Method}
		}
	}
	return Match{Index: -1, Method: MethodNone}
}

// SchemaStrategies returns the schema-aware strategies for s.
func SchemaStrategies(s *schema.ComponentSchema) []Strategy {
	names := make([]string, 0, len(s.TextLayers))
	for name := range s.TextLayers {
		names = append(names, name)
	}
	sort.Strings(names)

	return []Strategy{
		{Method: MethodSchemaSlot, Find: func(key string, c Candidates) (TextCandidate, bool) {
			layer, ok := s.TextLayers[key]
			if !ok {
				return TextCandidate{}, false
			}
			return c.NodeFor(layer.NodeID, layer.NodeName)
		}},
		{Method: MethodSemantic, Find: func(key string, c Candidates) (TextCandidate, bool) {
			name, ok := props.FindSemanticMatch(key, names)
			if !ok {
				return TextCandidate{}, false
			}
			layer := s.TextLayers[name]
			return c.NodeFor(layer.NodeID, layer.NodeName)
		}},
	}
}

// NodeFor resolves a slot to a node by identity, then by exact name.
func (c Candidates) NodeFor(nodeID, nodeName string) (TextCandidate, bool) {
	for _, node := range c.Nodes {
		if nodeID != "" && (node.NodeID == nodeID || node.SourceID == nodeID) {
			return node, true
		}
	}
	for _, node := range c.Nodes {
		if node.Name == nodeName {
			return node, true
		}
	}
	return TextCandidate{}, false
}

// SlotsFromSchema lists a schema's text layers ordered by rank, then by name.
func SlotsFromSchema(s *schema.ComponentSchema) []Slot {
	if s == nil {
		return nil
	}
	slots := make([]Slot, 0, len(s.TextLayers))
	for _, layer := range s.TextLayers {
		slots = append(slots, Slot{NodeID: layer.NodeID, NodeName: layer.NodeName, Rank: layer.Rank})
	}
	order := map[schema.Rank]int{schema.RankPrimary: 0, schema.RankSecondary: 1, schema.RankTertiary: 2}
	sort.SliceStable(slots, func(i, j int) bool {
		if order[slots[i].Rank] != order[slots[j].Rank] {
			return order[slots[i].Rank] < order[slots[j].Rank]
		}
		return slots[i].NodeName < slots[j].NodeName
	})
	return slots
}

func normalizeName(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

func exactName(key string, c Candidates) (TextCandidate, bool) {
	want := normalizeName(key)
	for _, slot := range c.Slots {
		if normalizeName(slot.NodeName) == want {
			if node, ok := c.NodeFor(slot.NodeID, slot.NodeName); ok {
				return node, true
			}
		}
	}
	return TextCandidate{}, false
}

func semanticRank(key string, c Candidates) (TextCandidate, bool) {
	ranks, ok := semanticRanks[strings.ToLower(key)]
	if !ok {
		return TextCandidate{}, false
	}
	for _, rank := range ranks {
		for _, slot := range c.Slots {
			if slot.Rank != rank {
				continue
			}
			if node, ok := c.NodeFor(slot.NodeID, slot.NodeName); ok {
				return node, true
			}
		}
		for _, node := range c.Nodes {
			if node.Rank == rank {
				return node, true
			}
		}
	}
	return TextCandidate{}, false
}

func partialName(key string, c Candidates) (TextCandidate, bool) {
	lowerKey := strings.ToLower(key)
	for _, slot := range c.Slots {
		name := strings.ToLower(slot.NodeName)
		if strings.Contains(name, lowerKey) || strings.Contains(lowerKey, name) {
			if node, ok := c.NodeFor(slot.NodeID, slot.NodeName); ok {
				return node, true
			}
		}
	}
	return TextCandidate{}, false
}

func legacyKeyword(key string, c Candidates) (TextCandidate, bool) {
	lowerKey := strings.ToLower(key)
	keywords, ok := legacyKeywords[lowerKey]
	if !ok {
		keywords = []string{lowerKey}
	}
	for _, keyword := range keywords {
		for _, node := range c.Nodes {
			if strings.Contains(strings.ToLower(node.Name), keyword) {
				return node, true
			}
		}
	}
	return TextCandidate{}, false
}

func positional(key string, c Candidates) (TextCandidate, bool) {
	if len(c.Nodes) == 0 {
		return TextCandidate{}, false
	}
	lowerKey := strings.ToLower(key)
	switch {
	case containsAny(lowerKey, "headline", "title", "primary"):
		return c.Nodes[0], true
	case containsAny(lowerKey, "trailing", "tertiary"):
		return c.Nodes[len(c.Nodes)-1], true
	case containsAny(lowerKey, "supporting", "secondary"):
		if len(c.Nodes) > 1 {
			return c.Nodes[1], true
		}
		return c.Nodes[0], true
	default:
		return TextCandidate{}, false
	}
}

// ArrayTargets returns the nodes an array value for key spreads across, in
// declaration order: nodes named like the layer, named after key, or whose
// name contains key.
func ArrayTargets(key string, nodes []TextCandidate, layer schema.TextLayer) []TextCandidate {
	layerName := strings.ToLower(layer.NodeName)
	lowerKey := strings.ToLower(key)
	var targets []TextCandidate
	for _, node := range nodes {
		name := strings.ToLower(node.Name)
		if name == layerName || name == lowerKey || strings.Contains(name, lowerKey) {
			targets = append(targets, node)
		}
	}
	return targets
}

func containsAny(s string, fragments ...string) bool {
	for _, fragment := range fragments {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
