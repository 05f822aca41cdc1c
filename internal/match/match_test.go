package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
)

func TestVariantsCoercionAndRejection(t *testing.T) {
	t.Parallel()

	axes := map[string][]string{
		"Selected":  {"True", "False"},
		"Condition": {"1-line", "2-line"},
		"Size":      {"1", "2"},
	}

	result := Variants(axes, map[string]interface{}{
		"Selected":  true,
		"Condition": "3-line",
		"Size":      2.0,
		"Shape":     "round",
	})

	assert.Equal(t, map[string]string{"Selected": "True", "Size": "2"}, result.Accepted)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, "Condition", result.Rejected[0].Axis)
	assert.Equal(t, "invalid value", result.Rejected[0].Reason)
	assert.Equal(t, []string{"1-line", "2-line"}, result.Rejected[0].Options)
	assert.Equal(t, "Shape", result.Rejected[1].Axis)
	assert.Equal(t, "unknown variant property", result.Rejected[1].Reason)
	assert.Contains(t, result.Rejected[1].String(), "available")
}

func TestVariantsWithNothingAccepted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		options   []string
		requested interface{}
	}{
		{name: "unrecognised string", options: []string{"True", "False"}, requested: "yes"},
		{name: "boolean against lower-case axis", options: []string{"true", "false"}, requested: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := Variants(map[string][]string{"Selected": tc.options}, map[string]interface{}{"Selected": tc.requested})
			assert.Empty(t, result.Accepted)
			require.Len(t, result.Rejected, 1)
			assert.Equal(t, "Selected", result.Rejected[0].Axis)
			assert.Equal(t, "invalid value", result.Rejected[0].Reason)
			assert.Equal(t, tc.options, result.Rejected[0].Options)
		})
	}

	assert.Equal(t, "False", CoerceVariant(false))
}

func listCandidates() Candidates {
	return Candidates{
		Nodes: []TextCandidate{
			{NodeID: "I5:1;10:3", SourceID: "10:3", Name: "Title", Rank: schema.RankPrimary, Index: 0},
			{NodeID: "I5:1;10:4", SourceID: "10:4", Name: "Subtitle", Rank: schema.RankSecondary, Index: 1},
			{NodeID: "I5:1;10:6", SourceID: "10:6", Name: "Meta value", Index: 2},
		},
		Slots: []Slot{
			{NodeID: "10:3", NodeName: "Title", Rank: schema.RankPrimary},
			{NodeID: "10:4", NodeName: "Subtitle", Rank: schema.RankSecondary},
		},
	}
}

func TestTextFallbackOrder(t *testing.T) {
	t.Parallel()

	c := listCandidates()

	cases := []struct {
		key    string
		nodeID string
		method Method
	}{
		{key: "title", nodeID: "I5:1;10:3", method: MethodExactName},
		{key: "SUB-title", nodeID: "I5:1;10:4", method: MethodExactName},
		{key: "headline", nodeID: "I5:1;10:3", method: MethodSemantic},
		{key: "supporting-text", nodeID: "I5:1;10:4", method: MethodSemantic},
		{key: "trailing", nodeID: "I5:1;10:4", method: MethodSemantic},
		{key: "Title text", nodeID: "I5:1;10:3", method: MethodPartialName},
		{key: "amount", nodeID: "", method: MethodNone},
		{key: "value", nodeID: "I5:1;10:6", method: MethodLegacyKeyword},
		{key: "primary-label", nodeID: "I5:1;10:3", method: MethodPositional},
		{key: "tertiary-label", nodeID: "I5:1;10:6", method: MethodPositional},
		{key: "secondary-label", nodeID: "I5:1;10:4", method: MethodPositional},
	}

	for _, tc := range cases {
		got := Text(tc.key, c, nil)
		assert.Equal(t, tc.method, got.Method, tc.key)
		assert.Equal(t, tc.nodeID, got.NodeID, tc.key)
	}
}

func TestTextHeadlineResolvesBySemanticClassificationWithSchema(t *testing.T) {
	t.Parallel()

	s := &schema.ComponentSchema{
		ID:   "10:1",
		Name: "List Item",
		TextLayers: map[string]schema.TextLayer{
			"Title":    {NodeID: "10:3", NodeName: "Title", Rank: schema.RankPrimary, Shape: schema.ShapeScalar},
			"Subtitle": {NodeID: "10:4", NodeName: "Subtitle", Rank: schema.RankSecondary, Shape: schema.ShapeScalar},
		},
	}
	c := listCandidates()
	c.Slots = SlotsFromSchema(s)

	got := Text("headline", c, s)
	assert.Equal(t, MethodSemantic, got.Method)
	assert.Equal(t, "Title", got.Name)

	got = Text("Subtitle", c, s)
	assert.Equal(t, MethodSchemaSlot, got.Method)
	assert.Equal(t, "I5:1;10:4", got.NodeID)
}

func TestNodeForFallsBackToName(t *testing.T) {
	t.Parallel()

	c := listCandidates()
	node, ok := c.NodeFor("99:9", "Subtitle")
	require.True(t, ok)
	assert.Equal(t, 1, node.Index)

	_, ok = c.NodeFor("99:9", "Missing")
	assert.False(t, ok)
}

func TestArrayTargets(t *testing.T) {
	t.Parallel()

	nodes := []TextCandidate{
		{NodeID: "1", Name: "Label", Index: 0},
		{NodeID: "2", Name: "Icon", Index: 1},
		{NodeID: "3", Name: "Label", Index: 2},
		{NodeID: "4", Name: "Tab label", Index: 3},
		{NodeID: "5", Name: "label", Index: 4},
		{NodeID: "6", Name: "Badge", Index: 5},
	}

	targets := ArrayTargets("label", nodes, schema.TextLayer{NodeName: "Label"})
	ids := make([]string, 0, len(targets))
	for _, n := range targets {
		ids = append(ids, n.NodeID)
	}
	assert.Equal(t, []string{"1", "3", "4", "5"}, ids)
}

func TestClassifyMedia(t *testing.T) {
	t.Parallel()

	b := ClassifyMedia([]MediaCandidate{
		{NodeID: "1", Name: "User avatar", Kind: MediaInstance},
		{NodeID: "2", Name: "Star", Kind: MediaVector},
		{NodeID: "3", Name: "Status dot", Kind: MediaShape},
		{NodeID: "4", Name: "Company logo", Kind: MediaInstance},
		{NodeID: "5", Name: "Decorative swoosh", Kind: MediaVector},
		{NodeID: "6", Name: "Cover image round", Kind: MediaShape},
		{NodeID: "7", Name: "Thumb", Kind: MediaShape},
		{NodeID: "8", Name: "Chevron button", Kind: MediaInstance},
	})

	assert.Equal(t, "1", b.Avatars[0].NodeID)
	assert.Equal(t, "2", b.Icons[0].NodeID)
	assert.Equal(t, "3", b.Badges[0].NodeID)
	assert.Equal(t, "4", b.Logos[0].NodeID)
	assert.Equal(t, "5", b.Vectors[0].NodeID)
	require.Len(t, b.Images, 3)
	assert.Equal(t, "6", b.LargeImages[0].NodeID)
	assert.Equal(t, "6", b.Circles[0].NodeID)
	assert.Equal(t, "7", b.SmallImages[0].NodeID)
	assert.Equal(t, "7", b.RectangularImages[0].NodeID)
	assert.Equal(t, "8", b.Images[2].NodeID)
}

func TestMediaAdvisoryChain(t *testing.T) {
	t.Parallel()

	candidates := []MediaCandidate{
		{NodeID: "1", Name: "Leading element", Kind: MediaVector},
		{NodeID: "2", Name: "Heart", Kind: MediaVector},
		{NodeID: "3", Name: "Hero picture large", Kind: MediaShape},
		{NodeID: "4", Name: "Trailing element", Kind: MediaVector},
	}
	b := ClassifyMedia(candidates)

	cases := []struct {
		key    string
		nodeID string
		method Method
	}{
		{key: "heart", nodeID: "2", method: MethodExactName},
		{key: "leading-element", nodeID: "1", method: MethodExactName},
		{key: "hero", nodeID: "3", method: MethodPartialName},
		{key: "icon", nodeID: "2", method: MethodSemanticBucket},
		{key: "photo", nodeID: "3", method: MethodSemanticBucket},
		{key: "end-slot", nodeID: "4", method: MethodPosition},
		{key: "cover", nodeID: "3", method: MethodSize},
		{key: "qr", nodeID: "", method: MethodNone},
	}

	for _, tc := range cases {
		got := Media(tc.key, candidates, b)
		assert.Equal(t, tc.method, got.Method, tc.key)
		assert.Equal(t, tc.nodeID, got.Candidate.NodeID, tc.key)
	}

	none := Media("qr", candidates, b)
	assert.Len(t, none.Suggestions, 4)
	assert.False(t, Media("x", nil, Buckets{}).Found())
}

func TestMediaSkipsUnnamedCandidatesByName(t *testing.T) {
	t.Parallel()

	candidates := []MediaCandidate{
		{NodeID: "1", Name: "", Kind: MediaVector},
		{NodeID: "2", Name: "Hero picture large", Kind: MediaShape},
	}
	b := ClassifyMedia(candidates)

	cases := []struct {
		key    string
		nodeID string
		method Method
	}{
		{key: "hero", nodeID: "2", method: MethodPartialName},
		{key: "picture", nodeID: "2", method: MethodPartialName},
		{key: "qr", nodeID: "", method: MethodNone},
	}

	for _, tc := range cases {
		got := Media(tc.key, candidates, b)
		assert.Equal(t, tc.method, got.Method, tc.key)
		assert.Equal(t, tc.nodeID, got.Candidate.NodeID, tc.key)
	}
}
