package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/resolve"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

const (
	defaultFrameName = "Generated Frame"
	errorFrameName   = "Error Frame"
	errorFrameWidth  = 375
	errorFrameHeight = 100
)

// Generator renders declarative trees into one host document.
type Generator struct {
	doc     ports.Document
	session *Session
	filler  resolve.Filler
	styles  *resolve.StyleResolver
	logger  ports.Logger
}

// New creates a generator that mutates doc using the shared session.
func New(doc ports.Document, session *Session) *Generator {
	styles := resolve.NewStyleResolver(doc)
	var colors *resolve.ColorResolver
	if session != nil {
		colors = session.Colors
	}
	return &Generator{
		doc:     doc,
		session: session,
		filler:  resolve.Filler{Colors: colors, Styles: styles},
		styles:  styles,
		logger:  session.logger().With("layer", "domain", "component", "generator"),
	}
}

// Generate builds doc under parent, or under the current page when parent is
// nil. Failures of individual properties become diagnostics. An error or
// panic that escapes the walk is caught here: the result then holds an error
// frame as Root and the cause in Err.
func (g *Generator) Generate(ctx context.Context, doc *tree.Document, parent ports.Node) *Result {
	if ports.GetCorrelationID(ctx) == "" {
		ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	}
	if parent == nil {
		parent = g.doc.CurrentPage()
	}
	r := &run{g: g, opts: g.session.options(), log: g.logger}

	var root ports.Node
	err := g.track(LabelGenerate, func() error {
		return r.protect("generate", func() error {
			var genErr error
			root, genErr = r.generateRoot(ctx, doc, parent)
			return genErr
		})
	})
	if err != nil {
		var genErr *canvaserrors.GenerationError
		if !errors.As(err, &genErr) {
			err = canvaserrors.NewGenerationError("generate", err)
		}
		r.discard(parent, r.root)
		root = r.fallback(ctx, parent, err)
	}
	return &Result{Root: root, Diagnostics: r.diags, Err: err}
}

// Modify replaces the children of the frame targetID with a fresh rendering
// of doc.
func (g *Generator) Modify(ctx context.Context, doc *tree.Document, targetID string) (ports.Node, error) {
	res, err := g.ModifyResult(ctx, doc, targetID)
	if err != nil {
		return nil, err
	}
	return res.Root, nil
}

// ModifyResult is Modify with the full generation result.
func (g *Generator) ModifyResult(ctx context.Context, doc *tree.Document, targetID string) (*Result, error) {
	if ports.GetCorrelationID(ctx) == "" {
		ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	}
	res, err := g.modify(ctx, doc, targetID)
	if err != nil {
		g.doc.Notify(ctx, "Modification error: "+err.Error(), ports.NotifyOptions{Error: true})
		g.logger.Error(ctx, "modification failed", "target", targetID, "error", err.Error())
		return res, err
	}
	g.doc.Notify(ctx, "UI updated successfully!", ports.NotifyOptions{})
	return res, nil
}

func (g *Generator) modify(ctx context.Context, doc *tree.Document, targetID string) (*Result, error) {
	target, err := g.doc.NodeByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Type() != ports.NodeTypeFrame {
		return nil, canvaserrors.NewValidationError("target", fmt.Sprintf("node %s is a %s, not a frame", targetID, target.Type()), nil)
	}

	children := target.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if err := children[i].Remove(); err != nil {
			return nil, err
		}
	}

	res := g.Generate(ctx, doc, target)
	if res.Err != nil {
		return res, res.Err
	}
	return res, nil
}

func (g *Generator) track(label string, fn func() error) error {
	if g.session == nil {
		return fn()
	}
	return g.session.Tracker.Track(label, fn)
}

// protect runs fn and converts a panic into a GenerationError.
func (r *run) protect(stage string, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = canvaserrors.NewGenerationError(stage, fmt.Errorf("panic: %v", rec))
		}
	}()
	return fn()
}

func (r *run) generateRoot(ctx context.Context, doc *tree.Document, parent ports.Node) (ports.Node, error) {
	if doc == nil {
		return nil, canvaserrors.NewGenerationError("decode", errors.New("declarative document is nil"))
	}
	host := r.g.doc

	var frame ports.Node
	configure := doc.Configured
	switch parent.Type() {
	case ports.NodeTypePage:
		created, err := host.CreateFrame(ctx)
		if err != nil {
			return nil, err
		}
		frame = created
		r.root = created
		if err := parent.AppendChild(frame); err != nil {
			return frame, err
		}
		width, height := r.opts.FrameWidth, r.opts.FrameHeight
		if doc.Container.Width > 0 {
			width = doc.Container.Width
		}
		if doc.Container.Height > 0 {
			height = doc.Container.Height
		}
		r.mutate(ctx, "root", "resize root frame", func() error { return frame.Resize(width, height) })
		configure = true
	case ports.NodeTypeFrame:
		frame = parent
	default:
		host.Notify(ctx, "Cannot add items without a parent frame.", ports.NotifyOptions{Error: true})
		r.diagnose(ctx, KindAdvisory, "root", "parent %s is a %s; nothing generated", parent.ID(), parent.Type())
		return host.CreateFrame(ctx)
	}

	if configure {
		r.applyContainer(ctx, frame, &doc.Container, "root")
	}
	if err := r.generateChildren(ctx, frame, doc.Container.Items, "root"); err != nil {
		return frame, err
	}
	if configure {
		r.pinWidth(ctx, frame, &doc.Container, "root")
	}

	if parent.Type() == ports.NodeTypePage {
		host.Select(ctx, frame)
		r.logPerf(ctx)
		host.Notify(ctx, fmt.Sprintf("UI %q generated!", frame.Name()), ports.NotifyOptions{})
	}
	return frame, nil
}

func (r *run) generateChildren(ctx context.Context, frame ports.Node, items []tree.Node, path string) error {
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := &items[i]
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)

		var err error
		switch item.Kind {
		case tree.KindContainer:
			err = r.generateContainer(ctx, frame, item, itemPath, true)
		case tree.KindFrame:
			err = r.generateContainer(ctx, frame, item, itemPath, false)
		case tree.KindText:
			err = r.createText(ctx, frame, item, itemPath)
		case tree.KindRectangle:
			err = r.createRectangle(ctx, frame, item, itemPath)
		case tree.KindEllipse:
			err = r.createEllipse(ctx, frame, item, itemPath)
		case tree.KindComponentRef:
			err = r.createInstance(ctx, frame, item, itemPath)
		default:
			r.diagnose(ctx, KindAdvisory, itemPath, "unknown item kind %q skipped", item.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *run) generateContainer(ctx context.Context, parent ports.Node, item *tree.Node, path string, participates bool) error {
	if item.Container == nil {
		r.diagnose(ctx, KindAdvisory, path, "container without payload skipped")
		return nil
	}
	frame, err := r.g.doc.CreateFrame(ctx)
	if err != nil {
		return err
	}
	if err := attach(parent, frame); err != nil {
		return err
	}
	if participates {
		r.applyChildLayout(ctx, frame, parent, item.Layout, path)
	}
	r.applyContainer(ctx, frame, item.Container, path)
	if err := r.generateChildren(ctx, frame, item.Container.Items, path); err != nil {
		return err
	}
	r.pinWidth(ctx, frame, item.Container, path)
	return nil
}

// attach appends child to parent. A child that cannot be attached is removed
// so it does not linger on the page.
func attach(parent, child ports.Node) error {
	if err := parent.AppendChild(child); err != nil {
		_ = child.Remove()
		return err
	}
	return nil
}

// fallback builds the error frame shown in place of a failed generation.
func (r *run) fallback(ctx context.Context, parent ports.Node, cause error) (root ports.Node) {
	message := "Error creating UI: " + cause.Error()
	r.diagnose(ctx, KindCatastrophic, "root", "%v", cause)
	r.log.Error(ctx, "generation failed", "error", cause.Error())
	r.g.doc.Notify(ctx, message, ports.NotifyOptions{Error: true})

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error(ctx, "error frame could not be built", "panic", fmt.Sprint(rec))
			root = nil
		}
	}()

	host := r.g.doc
	frame, err := host.CreateFrame(ctx)
	if err != nil {
		r.log.Error(ctx, "error frame could not be built", "error", err.Error())
		return nil
	}
	_ = frame.Set(ports.FieldName, errorFrameName)
	_ = frame.Resize(errorFrameWidth, errorFrameHeight)

	if label, err := host.CreateText(ctx); err == nil {
		if host.LoadFont(ctx, r.opts.FallbackFont) == nil {
			_ = label.Set(ports.FieldCharacters, message)
		}
		_ = label.Set(ports.FieldVisible, true)
		_ = frame.AppendChild(label)
	}
	if parent != nil && parent.Type() == ports.NodeTypePage {
		_ = parent.AppendChild(frame)
	}
	return frame
}

// discard removes a partially built root frame created on a page.
func (r *run) discard(parent, root ports.Node) {
	if root == nil || parent == nil || root == parent || parent.Type() != ports.NodeTypePage {
		return
	}
	defer func() { _ = recover() }()
	_ = root.Remove()
}

func (r *run) logPerf(ctx context.Context) {
	if r.g.session == nil || r.g.session.Tracker == nil {
		return
	}
	report := r.g.session.Tracker.Report()
	for _, label := range r.g.session.Tracker.Labels() {
		stats := report[label]
		r.log.Debug(ctx, "perf", "label", label, "count", stats.Count, "avg", stats.Avg.String(), "max", stats.Max.String())
	}
}
