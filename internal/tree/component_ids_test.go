package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaceholderID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id   string
		want bool
	}{
		{id: "12:345", want: false},
		{id: "list_item_id", want: true},
		{id: "placeholder-button", want: true},
		{id: "button", want: true},
		{id: "", want: true},
		{id: "I1:2;3:4", want: true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsPlaceholderID(tc.id), tc.id)
	}
}

func TestResolveComponentIDsRewritesPlaceholders(t *testing.T) {
	t.Parallel()

	doc := Normalize(mustParse(t, `{"layoutContainer": {"items": [
		{"type": "button", "componentNodeId": "button_id"},
		{"type": "layoutContainer", "items": [
			{"type": "list-item"},
			{"type": "native-text", "text": "skip me"}
		]},
		{"type": "chip", "componentNodeId": "7:7"},
		{"type": "mystery", "componentNodeId": "placeholder"}
	]}}`), DefaultNormalizeOptions())

	known := map[string]string{"button": "1:10", "list-item": "1:20"}
	missing := ResolveComponentIDs(doc, func(kind string) (string, bool) {
		id, ok := known[kind]
		return id, ok
	})

	require.Equal(t, []Unresolved{{Type: "mystery", ID: "placeholder"}}, missing)

	decoded, err := Decode(doc)
	require.NoError(t, err)
	items := decoded.Container.Items
	assert.Equal(t, "1:10", items[0].Component.ComponentID)
	assert.Equal(t, "1:20", items[1].Container.Items[0].Component.ComponentID)
	assert.Equal(t, "7:7", items[2].Component.ComponentID)
}
