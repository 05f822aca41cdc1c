package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/memdoc"
	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/perf"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/resolve"
	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

type fixture struct {
	doc     *memdoc.Document
	buffer  *logging.EventBuffer
	session *Session
	gen     *Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	lib, err := memdoc.LoadLibrary("testdata/library.yaml")
	require.NoError(t, err)
	doc, err := memdoc.NewFromLibrary(lib)
	require.NoError(t, err)

	infos, err := inventory.LoadScanFile("testdata/scan.yaml")
	require.NoError(t, err)
	registry := schema.NewRegistry()
	for _, info := range infos {
		require.NoError(t, registry.Register(info.ID, schema.Build(info)))
	}

	buffer := logging.NewEventBuffer(0)
	session := &Session{
		Registry: registry,
		Colors:   resolve.NewColorResolver(inventory.Tables{}, ports.Black),
		Catalog:  inventory.NewCatalog(infos),
		Tracker:  perf.NewTracker(),
		Logger:   logging.NewBufferedLogger(buffer),
		Options:  DefaultOptions(),
	}
	return &fixture{doc: doc, buffer: buffer, session: session, gen: New(doc, session)}
}

func parse(t *testing.T, input string) *tree.Document {
	t.Helper()
	doc, err := tree.Parse([]byte(input), "test.json", tree.DefaultNormalizeOptions())
	require.NoError(t, err)
	return doc
}

func textContents(nodes []ports.Node) []string {
	var out []string
	for _, n := range nodes {
		if text, ok := n.(ports.TextNode); ok {
			out = append(out, text.Characters())
		}
	}
	return out
}

func TestGenerateCardScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"layoutContainer": {"name": "Card", "layoutMode": "VERTICAL", "width": 300},
		"items": [{"type": "native-text", "text": "Hello", "properties": {"fontSize": 20}}]
	}`), nil)

	require.NoError(t, res.Err)
	require.NotNil(t, res.Root)
	assert.Len(t, f.doc.CurrentPage().Children(), 1)
	assert.Equal(t, "Card", res.Root.Name())
	assert.Equal(t, 300.0, res.Root.Width())

	children := res.Root.Children()
	require.Len(t, children, 1)
	text, ok := children[0].(ports.TextNode)
	require.True(t, ok)
	assert.Equal(t, "Hello", text.Characters())
	size, _ := text.Get(ports.FieldFontSize)
	assert.Equal(t, 20.0, size)

	assert.Equal(t, []string{res.Root.ID()}, f.doc.Selection())
	notes := f.doc.Notifications()
	require.NotEmpty(t, notes)
	assert.Equal(t, `UI "Card" generated!`, notes[len(notes)-1].Message)
	assert.Contains(t, f.session.Tracker.Labels(), LabelGenerate)
}

func TestExplicitWidthSurvivesFillChildren(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"layoutContainer": {"name": "Form", "layoutMode": "VERTICAL", "width": 360,
			"paddingLeft": 8, "paddingRight": 8, "itemSpacing": 12},
		"items": [
			{"type": "native-text", "text": "Email", "properties": {"horizontalSizing": "FILL"}},
			{"type": "native-rectangle", "horizontalSizing": "FILL", "fill": {"r": 0.9, "g": 0.9, "b": 0.9}},
			{"type": "layoutContainer", "layoutMode": "HORIZONTAL", "horizontalSizing": "FILL",
				"items": [{"type": "native-circle"}]}
		]
	}`), nil)

	require.NoError(t, res.Err)
	assert.Equal(t, 360.0, res.Root.Width())

	children := res.Root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, 344.0, children[1].Width())
	assert.Equal(t, 344.0, children[2].Width())
	resize, _ := children[0].Get(ports.FieldTextAutoResize)
	assert.Equal(t, autoResizeHeight, resize)

	ellipse := children[2].Children()[0]
	assert.Equal(t, 50.0, ellipse.Width())
}

func TestExplicitWidthKeepsHuggingHeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		mode       string
		cardHeight float64
	}{
		{name: "vertical card stacks its children", mode: "VERTICAL", cardHeight: 260},
		{name: "horizontal card takes the tallest child", mode: "HORIZONTAL", cardHeight: 80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			res := f.gen.Generate(context.Background(), parse(t, `{
				"layoutContainer": {"name": "Screen", "layoutMode": "VERTICAL"},
				"items": [{"type": "layoutContainer", "name": "Card", "layoutMode": "`+tc.mode+`",
					"width": 300, "itemSpacing": 10, "items": [
						{"type": "native-rectangle", "width": 50, "height": 80},
						{"type": "native-rectangle", "width": 50, "height": 80},
						{"type": "native-rectangle", "width": 50, "height": 80}
					]}]
			}`), nil)

			require.NoError(t, res.Err)
			children := res.Root.Children()
			require.Len(t, children, 1)
			card := children[0]
			assert.Equal(t, 300.0, card.Width())
			assert.Equal(t, tc.cardHeight, card.Height())
			assert.Equal(t, tc.cardHeight, res.Root.Height())
		})
	}
}

func TestGenerateFallsBackOnHostFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		rule  memdoc.FaultRule
		input string
	}{
		{
			name:  "append fails",
			rule:  memdoc.FaultRule{Op: memdoc.OpAppend, NodeType: ports.NodeTypeRectangle},
			input: `{"items": [{"type": "native-text", "text": "ok"}, {"type": "native-rectangle"}]}`,
		},
		{
			name: "panic mid-tree",
			rule: memdoc.FaultRule{Op: memdoc.OpSet, Field: ports.FieldCornerRadius, Panic: true},
			input: `{"items": [{"type": "layoutContainer", "layoutMode": "VERTICAL",
				"items": [{"type": "native-rectangle", "cornerRadius": 4}]}]}`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.doc.FailOn(tc.rule)
			res := f.gen.Generate(context.Background(), parse(t, tc.input), nil)

			require.Error(t, res.Err)
			var genErr *canvaserrors.GenerationError
			require.ErrorAs(t, res.Err, &genErr)
			require.NotNil(t, res.Root)
			assert.Equal(t, errorFrameName, res.Root.Name())
			assert.Equal(t, 1, res.Count(KindCatastrophic))

			page := f.doc.CurrentPage().Children()
			require.Len(t, page, 1, "partial output is replaced by the error frame")
			assert.Equal(t, res.Root.ID(), page[0].ID())

			labels := res.Root.Children()
			require.Len(t, labels, 1)
			assert.True(t, labels[0].Visible())
			assert.True(t, strings.HasPrefix(textContents(labels)[0], "Error creating UI: "))

			notes := f.doc.Notifications()
			require.NotEmpty(t, notes)
			assert.True(t, notes[len(notes)-1].Error)
		})
	}

	f := newFixture(t)
	f.doc.FailOn(memdoc.FaultRule{Op: memdoc.OpAppend, NodeType: ports.NodeTypeRectangle})
	res := f.gen.Generate(context.Background(), parse(t, `{"items": [{"type": "native-rectangle"}]}`), nil)
	assert.ErrorIs(t, res.Err, memdoc.ErrInjected)
}

func TestPropertyFailuresAreDiagnostics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.doc.FailOn(memdoc.FaultRule{Op: memdoc.OpSet, Field: ports.FieldFills})
	res := f.gen.Generate(context.Background(), parse(t, `{
		"layoutContainer": {"name": "Swatches", "layoutMode": "HORIZONTAL", "layoutWrap": "WRAP"},
		"items": [
			{"type": "native-rectangle", "fill": "primary"},
			{"type": "native-text", "text": "Styled", "properties": {"textStyle": "Missing Style"}}
		]
	}`), nil)

	require.NoError(t, res.Err)
	assert.Len(t, res.Root.Children(), 2)
	assert.Equal(t, 1, res.Count(KindHostMutation))
	assert.Equal(t, 1, res.Count(KindUnresolvedReference))
	for _, d := range res.Diagnostics {
		assert.NotEmpty(t, d.Path)
	}
}

func TestFillPrefersPaintStyle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"items": [
			{"type": "native-rectangle", "fill": "Primary/primary80"},
			{"type": "native-rectangle", "fill": "unknown-color"}
		]
	}`), nil)

	require.NoError(t, res.Err)
	children := res.Root.Children()
	require.Len(t, children, 2)
	styleID, _ := children[0].Get(ports.FieldFillStyleID)
	assert.Equal(t, "S:1", styleID)
	assert.Equal(t, "#000000", memdoc.Snapshot(children[1]).Fill)
	assert.Equal(t, 1, res.Count(KindUnresolvedReference))
}

func TestArrayTextHidesUnusedNodes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"items": [{"type": "tabs", "properties": {"Label": ["Mon", "Tue", "Wed"]}}]
	}`), nil)

	require.NoError(t, res.Err)
	inst, ok := res.Root.Children()[0].(ports.InstanceNode)
	require.True(t, ok)
	assert.Equal(t, "20:1", inst.MainComponentID())

	labels := inst.Children()
	require.Len(t, labels, 5)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Tab", "Tab"}, textContents(labels))
	visible := make([]bool, len(labels))
	for i, n := range labels {
		visible[i] = n.Visible()
	}
	assert.Equal(t, []bool{true, true, true, false, false}, visible)
	assert.Contains(t, f.session.Tracker.Labels(), LabelSetTextValue)
}

func TestHeadlineResolvesBySemanticRank(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"items": [{"type": "card-header", "componentNodeId": "30:1",
			"properties": {"headline": "Inbox", "leadingIcon": "star"}}]
	}`), nil)

	require.NoError(t, res.Err)
	inst := res.Root.Children()[0]
	texts := inst.FindAll(func(n ports.Node) bool { return n.Type() == ports.NodeTypeText })
	assert.Equal(t, []string{"Inbox", "Subtitle"}, textContents(texts))

	var method interface{}
	for _, entry := range f.buffer.Entries() {
		if entry.Msg == "text slot matched" {
			method, _ = entry.Field("method")
		}
	}
	assert.Equal(t, "semantic-classification", method)

	var advised bool
	for _, d := range res.Diagnostics {
		if d.Kind == KindAdvisory && strings.Contains(d.Message, `"Leading icon"`) {
			advised = true
		}
	}
	assert.True(t, advised, "media placement is reported")
	assert.Contains(t, f.session.Tracker.Labels(), LabelFindMediaNodes)
}

func TestUnknownVariantAxisIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"layoutContainer": {"name": "List", "layoutMode": "VERTICAL"},
		"items": [{"type": "list-item", "componentNodeId": "10:1",
			"variants": {"Shape": "Round"},
			"properties": {"condition": "2-line", "headline": "Inbox", "supporting-text": "3 unread"},
			"visibilityOverrides": {"10:8": false}}]
	}`), nil)

	require.NoError(t, res.Err)
	inst, ok := res.Root.Children()[0].(ports.InstanceNode)
	require.True(t, ok)
	assert.Equal(t, "10:6", inst.MainComponentID())
	assert.Equal(t, "List Item", inst.Name())

	texts := inst.FindAll(func(n ports.Node) bool { return n.Type() == ports.NodeTypeText })
	require.Len(t, texts, 2)
	assert.Equal(t, []string{"Inbox", "3 unread"}, textContents(texts))
	assert.True(t, texts[1].Visible(), "writing text shows the layer again")

	var rejected bool
	for _, d := range res.Diagnostics {
		if d.Kind == KindSchemaMismatch && strings.Contains(d.Message, "Shape") {
			rejected = true
		}
	}
	assert.True(t, rejected)
	assert.Contains(t, f.session.Tracker.Labels(), LabelApplyVariants)
}

func TestMissingFontLeavesTextUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"items": [{"type": "badge", "componentNodeId": "40:1", "properties": {"Count": 5}}]
	}`), nil)

	require.NoError(t, res.Err)
	texts := res.Root.Children()[0].FindAll(func(n ports.Node) bool { return n.Type() == ports.NodeTypeText })
	assert.Equal(t, []string{"3"}, textContents(texts))
	assert.Equal(t, 1, res.Count(KindFont))
}

func TestTextFallsBackToDefaultFont(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.doc.FailOn(memdoc.FaultRule{Op: memdoc.OpLoadFont, Font: ports.FontName{Family: "Roboto", Style: "Regular"}})
	require.NoError(t, f.doc.Install(&memdoc.Library{Components: []memdoc.ComponentDef{{
		NodeDef: memdoc.NodeDef{ID: "50:1", Name: "Chip", Children: []memdoc.NodeDef{{
			ID: "50:2", Type: ports.NodeTypeText, Name: "Label", Characters: "Chip",
			Fonts: []ports.FontName{{Family: "Roboto", Style: "Regular"}},
		}}},
	}}}))

	res := f.gen.Generate(context.Background(), parse(t, `{
		"items": [{"type": "chip", "componentNodeId": "50:1", "properties": {"label": "Filter"}}]
	}`), nil)

	require.NoError(t, res.Err)
	texts := res.Root.Children()[0].FindAll(func(n ports.Node) bool { return n.Type() == ports.NodeTypeText })
	assert.Equal(t, []string{"Filter"}, textContents(texts))
	font, ok := texts[0].Get(ports.FieldFontName)
	require.True(t, ok)
	assert.Equal(t, DefaultOptions().FallbackFont, font)
	assert.Equal(t, 1, res.Count(KindFont))
}

func TestUnresolvedComponentIsSkipped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.gen.Generate(context.Background(), parse(t, `{
		"items": [
			{"type": "button", "componentNodeId": "99:1"},
			{"type": "stepper"},
			{"type": "native-text", "text": "after"}
		]
	}`), nil)

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"after"}, textContents(res.Root.Children()))
	assert.Equal(t, 2, res.Count(KindUnresolvedReference))
}

func TestModifyReplacesChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	target, err := f.doc.CreateFrame(ctx)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		rect, err := f.doc.CreateRectangle(ctx)
		require.NoError(t, err)
		require.NoError(t, target.AppendChild(rect))
	}

	root, err := f.gen.Modify(ctx, parse(t, `{"items": [{"type": "native-text", "text": "Replaced"}]}`), target.ID())
	require.NoError(t, err)
	assert.Equal(t, target.ID(), root.ID())
	assert.Equal(t, []string{"Replaced"}, textContents(target.Children()))
	assert.Len(t, target.Children(), 1)

	notes := f.doc.Notifications()
	assert.Equal(t, "UI updated successfully!", notes[len(notes)-1].Message)
}

func TestModifyFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	rect, err := f.doc.CreateRectangle(ctx)
	require.NoError(t, err)

	cases := []struct {
		name     string
		targetID string
		check    func(t *testing.T, err error)
	}{
		{name: "missing node", targetID: "9:9", check: func(t *testing.T, err error) {
			var refErr *canvaserrors.ReferenceError
			assert.ErrorAs(t, err, &refErr)
		}},
		{name: "not a frame", targetID: rect.ID(), check: func(t *testing.T, err error) {
			var validationErr *canvaserrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}},
	}

	for _, tc := range cases {
		root, err := f.gen.Modify(ctx, parse(t, `{"items": []}`), tc.targetID)
		require.Error(t, err, tc.name)
		assert.Nil(t, root, tc.name)
		tc.check(t, err)

		notes := f.doc.Notifications()
		last := notes[len(notes)-1]
		assert.True(t, last.Error, tc.name)
		assert.True(t, strings.HasPrefix(last.Message, "Modification error: "), tc.name)
	}
}

func TestGenerateWithoutSession(t *testing.T) {
	t.Parallel()

	doc := memdoc.New()
	res := New(doc, nil).Generate(context.Background(), parse(t, `[{"type": "native-text", "text": "bare"}]`), nil)

	require.NoError(t, res.Err)
	assert.Equal(t, defaultFrameName, res.Root.Name())
	assert.Equal(t, 800.0, res.Root.Width())
	assert.Equal(t, []string{"bare"}, textContents(res.Root.Children()))
}

func TestNonFrameParentIsRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := memdoc.New()
	rect, err := doc.CreateRectangle(ctx)
	require.NoError(t, err)

	res := New(doc, nil).Generate(ctx, parse(t, `{"items": [{"type": "native-text"}]}`), rect)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Root)
	assert.Empty(t, res.Root.Children())
	notes := doc.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Cannot add items without a parent frame.", notes[0].Message)
}
