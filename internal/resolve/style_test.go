package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/memdoc"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
)

func styledDocument(t *testing.T) *memdoc.Document {
	t.Helper()
	doc, err := memdoc.NewFromLibrary(&memdoc.Library{
		PaintStyles: []memdoc.PaintStyleDef{
			{ID: "S:1", Name: "Primary/primary80", Color: "#00ff00"},
		},
		TextStyles: []memdoc.TextStyleDef{
			{ID: "S:2", Name: "Body Large", Font: ports.FontName{Family: "Inter", Style: "Regular"}},
		},
	})
	require.NoError(t, err)
	return doc
}

func TestStyleResolverMatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewStyleResolver(styledDocument(t))

	style, ok := r.PaintStyle(ctx, "primary/PRIMARY80")
	require.True(t, ok)
	assert.Equal(t, "S:1", style.ID)

	style, ok = r.TextStyle(ctx, "Body Large")
	require.True(t, ok)
	assert.Equal(t, ports.StyleKindText, style.Kind)

	_, ok = r.PaintStyle(ctx, "Body Large")
	assert.False(t, ok)

	var nilResolver *StyleResolver
	_, ok = nilResolver.TextStyle(ctx, "Body Large")
	assert.False(t, ok)
}

func TestApplyFillPrefersStyleHandle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := styledDocument(t)
	filler := Filler{
		Colors: NewColorResolver(testTables(), ports.Black),
		Styles: NewStyleResolver(doc),
	}

	cases := []struct {
		name    string
		ref     *tree.ColorRef
		source  Source
		styleID string
		color   ports.RGB
	}{
		{name: "style handle", ref: &tree.ColorRef{Name: "Primary/primary80"}, source: SourceStyleHandle, styleID: "S:1"},
		{name: "token", ref: &tree.ColorRef{Name: "primary"}, source: SourceToken, color: ports.RGB{R: 1}},
		{name: "fallback", ref: &tree.ColorRef{Name: "nope"}, source: SourceFallback, color: ports.Black},
		{name: "literal", ref: &tree.ColorRef{RGB: &ports.RGB{R: 2, G: 0.5}}, source: SourceLiteral, color: ports.RGB{R: 1, G: 0.5}},
	}

	for _, tc := range cases {
		rect, err := doc.CreateRectangle(ctx)
		require.NoError(t, err)

		got, err := filler.ApplyFill(ctx, rect, tc.ref)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.source, got.Source, tc.name)
		assert.Equal(t, tc.styleID, got.StyleID, tc.name)

		fills, ok := rect.Get(ports.FieldFills)
		require.True(t, ok, tc.name)
		paints := fills.([]ports.Paint)
		require.Len(t, paints, 1, tc.name)
		if tc.styleID == "" {
			assert.Equal(t, tc.color, paints[0].Color, tc.name)
			assert.Equal(t, tc.color, got.Color, tc.name)
		} else {
			assert.Equal(t, ports.RGB{G: 1}, paints[0].Color, tc.name)
		}
	}

	result, err := filler.ApplyFill(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Source)
}

func TestApplyFillReportsHostFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := styledDocument(t)
	doc.FailOn(memdoc.FaultRule{Op: memdoc.OpSet, Field: ports.FieldFills})
	rect, err := doc.CreateRectangle(ctx)
	require.NoError(t, err)

	filler := Filler{Colors: NewColorResolver(testTables(), ports.Black)}
	_, err = filler.ApplyFill(ctx, rect, &tree.ColorRef{Name: "primary"})
	require.ErrorIs(t, err, memdoc.ErrInjected)
}
