package resolve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

func testTables() inventory.Tables {
	return inventory.Tables{
		Tokens: []inventory.DesignToken{
			{Name: "primary", Collection: "brand", Type: "COLOR", Value: "#f00"},
			{Name: "surface", Collection: "brand", Type: "COLOR", Value: map[string]interface{}{"r": 1.5, "g": -0.2, "b": 0.5}},
			{Name: "spacing-md", Type: "FLOAT", Value: 16},
			{Name: "broken", Type: "COLOR", Value: true},
		},
		Styles: inventory.ColorStyleTable{
			inventory.CategoryPrimary: {
				{Name: "Primary/primary80", ColorInfo: inventory.ColorInfo{Type: "SOLID", Color: "#00ff00"}},
				{Name: "primary", ColorInfo: inventory.ColorInfo{Type: "SOLID", Color: "#0000ff"}},
			},
			inventory.CategoryNeutral: {
				{Name: "Gradient", ColorInfo: inventory.ColorInfo{Type: "GRADIENT_LINEAR", Color: "#123456"}},
				{Name: "Bad hex", ColorInfo: inventory.ColorInfo{Type: "SOLID", Color: "not-a-color"}},
			},
			inventory.CategoryOther: {
				{Name: "broken", ColorInfo: inventory.ColorInfo{Type: "SOLID", Color: "#ffffff"}},
			},
		},
	}
}

func TestColorResolutionPriority(t *testing.T) {
	t.Parallel()

	r := NewColorResolver(testTables(), ports.Black)

	cases := []struct {
		name   string
		want   ports.RGB
		source Source
	}{
		{name: "primary", want: ports.RGB{R: 1}, source: SourceToken},
		{name: "PRIMARY", want: ports.RGB{R: 1}, source: SourceToken},
		{name: "brand/primary", want: ports.RGB{R: 1}, source: SourceToken},
		{name: "surface", want: ports.RGB{R: 1, G: 0, B: 0.5}, source: SourceToken},
		{name: "primary/PRIMARY80", want: ports.RGB{G: 1}, source: SourceStyle},
		{name: "broken", want: ports.RGB{R: 1, G: 1, B: 1}, source: SourceStyle},
		{name: "Gradient", want: ports.Black, source: SourceFallback},
		{name: "Bad hex", want: ports.Black, source: SourceFallback},
		{name: "spacing-md", want: ports.Black, source: SourceFallback},
		{name: "unknown", want: ports.Black, source: SourceFallback},
	}

	for _, tc := range cases {
		got, source := r.Color(tc.name)
		assert.Equal(t, tc.source, source, tc.name)
		assert.InDelta(t, tc.want.R, got.R, 1e-9, tc.name)
		assert.InDelta(t, tc.want.G, got.G, 1e-9, tc.name)
		assert.InDelta(t, tc.want.B, got.B, 1e-9, tc.name)
	}
}

func TestColorResolutionIsTotalAndIdempotent(t *testing.T) {
	t.Parallel()

	r := NewColorResolver(testTables(), ports.RGB{R: 2, G: 0.5, B: math.NaN()})
	names := []string{"", "primary", "surface", "???", "brand/", "Primary/primary80", "broken"}

	for _, name := range names {
		first, firstSource := r.Color(name)
		second, secondSource := r.Color(name)
		assert.Equal(t, first, second, name)
		assert.Equal(t, firstSource, secondSource, name)
		for _, channel := range []float64{first.R, first.G, first.B} {
			assert.GreaterOrEqual(t, channel, 0.0, name)
			assert.LessOrEqual(t, channel, 1.0, name)
		}
	}
	assert.Equal(t, ports.RGB{R: 1, G: 0.5, B: 0}, r.fallback)
}

func TestNilColorResolverFallsBackToBlack(t *testing.T) {
	t.Parallel()

	var r *ColorResolver
	got, source := r.Color("primary")
	assert.Equal(t, ports.Black, got)
	assert.Equal(t, SourceFallback, source)
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    ports.RGB
		wantErr bool
	}{
		{in: "#fff", want: ports.RGB{R: 1, G: 1, B: 1}},
		{in: "000000", want: ports.RGB{}},
		{in: "#FF0000", want: ports.RGB{R: 1}},
		{in: " #0f0 ", want: ports.RGB{G: 1}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseHex(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want.R, got.R, 1e-9, tc.in)
		assert.InDelta(t, tc.want.G, got.G, 1e-9, tc.in)
		assert.InDelta(t, tc.want.B, got.B, 1e-9, tc.in)
	}
}

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()

	rgb, err := ParseHex("#6750a4")
	require.NoError(t, err)
	assert.Equal(t, "#6750a4", Hex(rgb))
}
