package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
)

func listSchema() *schema.ComponentSchema {
	return &schema.ComponentSchema{
		ID:            "10:1",
		Name:          "List Item",
		ComponentType: "list-item",
		Variants: map[string][]string{
			"Condition": {"1-line", "2-line", "3-line"},
			"Leading":   {"None", "Icon"},
		},
		TextLayers: map[string]schema.TextLayer{
			"Headline":        {NodeID: "10:3", NodeName: "Headline", Rank: schema.RankPrimary, Shape: schema.ShapeScalar},
			"Supporting text": {NodeID: "10:4", NodeName: "Supporting text", Rank: schema.RankSecondary, Shape: schema.ShapeScalar},
		},
		MediaLayers: map[string]schema.MediaLayer{
			"Leading icon": {NodeID: "10:5", NodeName: "Leading icon", MediaType: schema.MediaIcon},
		},
	}
}

func TestSeparate(t *testing.T) {
	t.Parallel()

	in := map[string]interface{}{
		"text":             "Hello",
		"supporting-text":  "World",
		"condition":        "2-line",
		"Leading":          "Icon",
		"horizontalSizing": "FILL",
		"variants":         map[string]interface{}{"Selected": "True", "Condition": "3-line"},
		"state":            true,
		"STATE":            "kept",
		"badge":            "new",
	}

	sep := Separate(in, "10:1")

	assert.Equal(t, map[string]interface{}{
		"Condition": "3-line",
		"Leading":   "Icon",
		"Selected":  "True",
		"State":     true,
	}, sep.Variants)
	assert.Equal(t, map[string]interface{}{
		"text":             "Hello",
		"supporting-text":  "World",
		"horizontalSizing": "FILL",
		"STATE":            "kept",
		"badge":            "new",
	}, sep.Content)
	assert.Contains(t, in, "condition", "input must not be modified")
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	got := Sanitize(map[string]interface{}{
		"supporting  text": 42.0,
		"Trailing text":    []interface{}{"a", 1.5},
		"count":            3.0,
		"text":             nil,
	})

	assert.Equal(t, map[string]interface{}{
		"supporting-text": "42",
		"Trailing-text":   "a,1.5",
		"count":           3.0,
		"text":            nil,
	}, got)
}

func TestPartitionWithSchema(t *testing.T) {
	t.Parallel()

	sep := Separated{
		Content: map[string]interface{}{
			"Headline":         "Title",
			"supporting":       "Body",
			"Leading icon":     "star",
			"horizontalSizing": "FILL",
			"mystery":          "value",
			"avatar":           "me.png",
		},
		Variants: map[string]interface{}{"Condition": "4-line"},
	}

	res, warnings := Partition(sep, listSchema())

	assert.Equal(t, map[string]interface{}{"Condition": "4-line"}, res.Variants)
	assert.Equal(t, map[string]interface{}{
		"Headline":        "Title",
		"Supporting text": "Body",
		"mystery":         "value",
	}, res.Text)
	assert.Equal(t, map[string]interface{}{"Leading icon": "star", "avatar": "me.png"}, res.Media)
	assert.Equal(t, map[string]interface{}{"horizontalSizing": "FILL"}, res.Layout)

	joined := ""
	for _, w := range warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, `Mapped "supporting" to text layer "Supporting text"`)
	assert.Contains(t, joined, `Invalid value "4-line" for variant "Condition". Use one of: "1-line", "2-line", "3-line"`)
	assert.Contains(t, joined, `Unknown property "mystery"`)
}

func TestPartitionKeysAreDisjoint(t *testing.T) {
	t.Parallel()

	listSep := Separate(map[string]interface{}{
		"text":        "a",
		"Headline":    "b",
		"condition":   "1-line",
		"icon":        "x",
		"layoutGrow":  1.0,
		"description": "c",
	}, "10:1")

	cases := []struct {
		name   string
		sep    Separated
		schema *schema.ComponentSchema
	}{
		{
			name:   "list item",
			sep:    Separated{Content: Sanitize(listSep.Content), Variants: listSep.Variants},
			schema: listSchema(),
		},
		{
			name: "explicit variant shadows content",
			sep: Separate(map[string]interface{}{
				"variants": map[string]interface{}{"Label": "x"},
				"Label":    "y",
			}, "10:2"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, _ := Partition(tc.sep, tc.schema)
			seen := map[string]int{}
			for _, key := range partitionKeys(res) {
				seen[key]++
			}
			for key, count := range seen {
				assert.Equal(t, 1, count, key)
			}
		})
	}
}

func TestExplicitVariantWinsOverContent(t *testing.T) {
	t.Parallel()

	sep := Separate(map[string]interface{}{
		"variants": map[string]interface{}{"Label": "x"},
		"Label":    "y",
	}, "10:2")
	res, warnings := Partition(sep, nil)

	assert.Equal(t, map[string]interface{}{"Label": "x"}, res.Variants)
	assert.Empty(t, res.Text)
	assert.Empty(t, res.Media)
	assert.Empty(t, res.Layout)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"Label" is already set as a variant`)
}

func partitionKeys(r Resolved) []string {
	var keys []string
	for _, part := range []map[string]interface{}{r.Variants, r.Text, r.Media, r.Layout} {
		keys = append(keys, sortedKeys(part)...)
	}
	return keys
}

func TestPartitionWithoutSchemaIsTotal(t *testing.T) {
	t.Parallel()

	sep := Separated{
		Content:  map[string]interface{}{"title": "Hi", "icon": "star", "minWidth": 40.0},
		Variants: map[string]interface{}{"Size": "Large"},
	}

	res, warnings := Partition(sep, nil)
	assert.Empty(t, warnings)
	assert.Equal(t, map[string]interface{}{"Size": "Large"}, res.Variants)
	assert.Equal(t, map[string]interface{}{"title": "Hi"}, res.Text)
	assert.Equal(t, map[string]interface{}{"icon": "star"}, res.Media)
	assert.Equal(t, map[string]interface{}{"minWidth": 40.0}, res.Layout)
}

func TestPartitionWrapsArraySlots(t *testing.T) {
	t.Parallel()

	tabs := &schema.ComponentSchema{
		ID:            "20:1",
		Name:          "Tabs",
		ComponentType: "tab",
		TextLayers: map[string]schema.TextLayer{
			"Label":   {NodeID: "20:3", NodeName: "Label", Rank: schema.RankPrimary, Shape: schema.ShapeArray, MaxItems: 8},
			"Caption": {NodeID: "20:4", NodeName: "Caption", Rank: schema.RankSecondary, Shape: schema.ShapeArray, MaxItems: 8},
		},
	}

	res, warnings := Partition(Separated{Content: map[string]interface{}{"Label": "Home", "Caption": "x"}}, tabs)
	assert.Equal(t, []interface{}{"Home"}, res.Text["Label"])
	assert.Equal(t, []interface{}{"x"}, res.Text["Caption"])
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"Caption" expects array`)
}

func TestFindSemanticMatch(t *testing.T) {
	t.Parallel()

	available := []string{"Headline", "Supporting text", "Trailing action"}

	cases := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "headline", want: "Headline", wantOK: true},
		{key: "supporting_text", want: "Supporting text", wantOK: true},
		{key: "Supporting", want: "Supporting text", wantOK: true},
		{key: "text", want: "Supporting text", wantOK: true},
		{key: "trailing", want: "Trailing action", wantOK: true},
		{key: "label", want: "Supporting text", wantOK: true},
		{key: "footer", wantOK: false},
	}

	for _, tc := range cases {
		got, ok := FindSemanticMatch(tc.key, available)
		assert.Equal(t, tc.wantOK, ok, tc.key)
		assert.Equal(t, tc.want, got, tc.key)
	}
}
