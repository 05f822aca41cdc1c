// Package memdoc is an in-memory host document. It backs the CLI and the
// generator tests with a small auto-layout model, a component library and
// fault injection for mutation failures.
//
// A Document is not safe for concurrent use. The generator drives it from a
// single goroutine.
package memdoc

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

var (
	// DefaultFonts are available in every document without a library.
	DefaultFonts = []ports.FontName{
		{Family: "Inter", Style: "Regular"},
		{Family: "Inter", Style: "Bold"},
	}

	white = ports.RGB{R: 1, G: 1, B: 1}
	grey  = ports.RGB{R: 0.85, G: 0.85, B: 0.85}

	errFontUnavailable = errors.New("font is not available in this document")
	errFontNotLoaded   = errors.New("font must be loaded before editing text")
	errRemoved         = errors.New("node has been removed")
)

// Notification is a message surfaced to the host UI.
type Notification struct {
	Message string
	Error   bool
}

type paintStyle struct {
	style ports.Style
	color ports.RGB
}

type textStyle struct {
	style ports.Style
	font  ports.FontName
	size  float64
}

// Document is an in-memory ports.Document.
type Document struct {
	page       *node
	nodes      map[string]*node
	nextID     int
	components map[string]*component

	available map[ports.FontName]bool
	loaded    map[ports.FontName]bool

	paintStyles []paintStyle
	textStyles  []textStyle

	faults        []FaultRule
	notifications []Notification
	selection     []string
}

var _ ports.Document = (*Document)(nil)

// New creates an empty document with a single page.
func New() *Document {
	d := &Document{
		nodes:      make(map[string]*node),
		components: make(map[string]*component),
		available:  make(map[ports.FontName]bool),
		loaded:     make(map[ports.FontName]bool),
	}
	for _, f := range DefaultFonts {
		d.available[f] = true
	}
	d.page = d.newNode(d.nextNodeID(), ports.NodeTypePage, "Page 1")
	return d
}

// NewFromLibrary creates a document and installs lib into it.
func NewFromLibrary(lib *Library) (*Document, error) {
	d := New()
	if err := d.Install(lib); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) nextNodeID() string {
	d.nextID++
	return fmt.Sprintf("0:%d", d.nextID)
}

// CurrentPage returns the document's page.
func (d *Document) CurrentPage() ports.Node {
	return d.page.handle
}

// NodeByID finds an attached node.
func (d *Document) NodeByID(ctx context.Context, id string) (ports.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, ok := d.nodes[id]
	if !ok || n.removed {
		return nil, canvaserrors.NewReferenceError(canvaserrors.ReferenceNode, id)
	}
	return n.handle, nil
}

// Component finds a component, component set or variant by identifier.
func (d *Document) Component(ctx context.Context, id string) (ports.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := d.components[id]
	if !ok {
		return nil, canvaserrors.NewReferenceError(canvaserrors.ReferenceComponent, id)
	}
	return c, nil
}

func (d *Document) create(ctx context.Context, t ports.NodeType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.fault(call{op: OpCreate, nodeType: t})
}

// place attaches a freshly created node to the page, as the host does.
func (d *Document) place(n *node) {
	n.parent = d.page
	d.page.children = append(d.page.children, n)
}

// CreateFrame creates a 100x100 frame on the page.
func (d *Document) CreateFrame(ctx context.Context) (ports.Node, error) {
	if err := d.create(ctx, ports.NodeTypeFrame); err != nil {
		return nil, err
	}
	n := d.newNode(d.nextNodeID(), ports.NodeTypeFrame, "Frame")
	d.place(n)
	return n.handle, nil
}

// CreateText creates an empty text node on the page.
func (d *Document) CreateText(ctx context.Context) (ports.TextNode, error) {
	if err := d.create(ctx, ports.NodeTypeText); err != nil {
		return nil, err
	}
	n := d.newNode(d.nextNodeID(), ports.NodeTypeText, "Text")
	d.place(n)
	return n.handle.(ports.TextNode), nil
}

// CreateRectangle creates a 100x100 rectangle on the page.
func (d *Document) CreateRectangle(ctx context.Context) (ports.Node, error) {
	if err := d.create(ctx, ports.NodeTypeRectangle); err != nil {
		return nil, err
	}
	n := d.newNode(d.nextNodeID(), ports.NodeTypeRectangle, "Rectangle")
	d.place(n)
	return n.handle, nil
}

// CreateEllipse creates a 100x100 ellipse on the page.
func (d *Document) CreateEllipse(ctx context.Context) (ports.Node, error) {
	if err := d.create(ctx, ports.NodeTypeEllipse); err != nil {
		return nil, err
	}
	n := d.newNode(d.nextNodeID(), ports.NodeTypeEllipse, "Ellipse")
	d.place(n)
	return n.handle, nil
}

// LoadFont marks an available font as loaded. Fonts outside the library fail
// with a FontError.
func (d *Document) LoadFont(ctx context.Context, font ports.FontName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.fault(call{op: OpLoadFont, font: font}); err != nil {
		return canvaserrors.NewFontError(font.Family, font.Style, err)
	}
	if !d.available[font] {
		return canvaserrors.NewFontError(font.Family, font.Style, errFontUnavailable)
	}
	d.loaded[font] = true
	return nil
}

// FontLoaded reports whether font has been loaded.
func (d *Document) FontLoaded(font ports.FontName) bool {
	return d.loaded[font]
}

// PaintStyles lists the document's paint styles.
func (d *Document) PaintStyles(ctx context.Context) ([]ports.Style, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]ports.Style, len(d.paintStyles))
	for i, s := range d.paintStyles {
		out[i] = s.style
	}
	return out, nil
}

// TextStyles lists the document's text styles.
func (d *Document) TextStyles(ctx context.Context) ([]ports.Style, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]ports.Style, len(d.textStyles))
	for i, s := range d.textStyles {
		out[i] = s.style
	}
	return out, nil
}

func (d *Document) paintStyleByID(id string) (paintStyle, bool) {
	for _, s := range d.paintStyles {
		if s.style.ID == id {
			return s, true
		}
	}
	return paintStyle{}, false
}

func (d *Document) textStyleByID(id string) (textStyle, bool) {
	for _, s := range d.textStyles {
		if s.style.ID == id {
			return s, true
		}
	}
	return textStyle{}, false
}

// Notify records a host notification.
func (d *Document) Notify(_ context.Context, message string, opts ports.NotifyOptions) {
	d.notifications = append(d.notifications, Notification{Message: message, Error: opts.Error})
}

// Notifications returns the recorded notifications in order.
func (d *Document) Notifications() []Notification {
	out := make([]Notification, len(d.notifications))
	copy(out, d.notifications)
	return out
}

// Select replaces the current selection.
func (d *Document) Select(_ context.Context, nodes ...ports.Node) {
	d.selection = d.selection[:0]
	for _, n := range nodes {
		if n != nil {
			d.selection = append(d.selection, n.ID())
		}
	}
}

// Selection returns the selected node identifiers.
func (d *Document) Selection() []string {
	out := make([]string, len(d.selection))
	copy(out, d.selection)
	return out
}
