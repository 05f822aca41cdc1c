package memdoc

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

// Text metrics used to size auto-resizing text.
const (
	glyphWidthRatio = 0.5
	lineHeightRatio = 1.2
)

func (n *node) isAutoLayout() bool {
	mode := n.str(ports.FieldLayoutMode)
	return mode == ports.LayoutModeHorizontal || mode == ports.LayoutModeVertical
}

func (n *node) horizontal() bool {
	return n.str(ports.FieldLayoutMode) == ports.LayoutModeHorizontal
}

// reflow re-runs layout from the outermost auto-layout ancestor of n. Axes in
// AUTO sizing hug their content, so a size set on such an axis does not stick.
func (d *Document) reflow(n *node) {
	if n == nil || n.removed {
		return
	}
	top := n
	for top.parent != nil && top.parent.isAutoLayout() {
		top = top.parent
	}
	d.measure(top)
	d.arrange(top)
}

// measure computes intrinsic sizes bottom-up.
func (d *Document) measure(n *node) {
	for _, c := range n.children {
		d.measure(c)
	}
	switch {
	case n.nodeType == ports.NodeTypeText:
		n.autosizeText()
	case n.isAutoLayout():
		n.hug()
	}
}

// flow returns the children that take part in auto-layout.
func (n *node) flow() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		if c.visible && c.str(ports.FieldLayoutPositioning) != "ABSOLUTE" {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) spacing() float64 {
	return n.num(ports.FieldItemSpacing)
}

func (n *node) hug() {
	kids := n.flow()
	horizontal := n.horizontal()

	var primary, cross float64
	for i, c := range kids {
		along, across := c.height, c.width
		if horizontal {
			along, across = c.width, c.height
		}
		primary += along
		if i > 0 {
			primary += n.spacing()
		}
		if c.str(ports.FieldLayoutAlign) != ports.AlignStretch && across > cross {
			cross = across
		}
	}

	padH := n.num(ports.FieldPaddingLeft) + n.num(ports.FieldPaddingRight)
	padV := n.num(ports.FieldPaddingTop) + n.num(ports.FieldPaddingBottom)
	primaryAuto := n.str(ports.FieldPrimaryAxisSizingMode) == ports.SizingAuto
	counterAuto := n.str(ports.FieldCounterAxisSizingMode) == ports.SizingAuto

	if horizontal {
		if primaryAuto {
			n.width = padH + primary
		}
		if counterAuto {
			n.height = padV + cross
		}
	} else {
		if primaryAuto {
			n.height = padV + primary
		}
		if counterAuto {
			n.width = padH + cross
		}
	}
	n.clampSize()
}

// clampSize applies min/max constraints. A frame hugging nothing keeps the
// host minimum size.
func (n *node) clampSize() {
	n.width = math.Max(clamp(n.width, n, ports.FieldMinWidth, ports.FieldMaxWidth), minSize)
	n.height = math.Max(clamp(n.height, n, ports.FieldMinHeight, ports.FieldMaxHeight), minSize)
}

func clamp(v float64, n *node, minField, maxField ports.Field) float64 {
	if lo, ok := n.optional(minField); ok && v < lo {
		v = lo
	}
	if hi, ok := n.optional(maxField); ok && v > hi {
		v = hi
	}
	return v
}

// arrange positions children top-down and applies STRETCH and grow.
func (d *Document) arrange(n *node) {
	if n.isAutoLayout() {
		n.layoutChildren()
	}
	for _, c := range n.children {
		d.arrange(c)
	}
}

func (n *node) layoutChildren() {
	kids := n.flow()
	horizontal := n.horizontal()
	top, right := n.num(ports.FieldPaddingTop), n.num(ports.FieldPaddingRight)
	bottom, left := n.num(ports.FieldPaddingBottom), n.num(ports.FieldPaddingLeft)

	innerPrimary, innerCross := n.height-top-bottom, n.width-left-right
	if horizontal {
		innerPrimary, innerCross = n.width-left-right, n.height-top-bottom
	}

	for _, c := range kids {
		if c.str(ports.FieldLayoutAlign) != ports.AlignStretch {
			continue
		}
		if horizontal {
			c.height = math.Max(innerCross, minSize)
		} else {
			c.width = math.Max(innerCross, minSize)
		}
		c.clampSize()
	}

	gap := n.spacing()
	var used, grow float64
	for _, c := range kids {
		if horizontal {
			used += c.width
		} else {
			used += c.height
		}
		grow += c.num(ports.FieldLayoutGrow)
	}
	if len(kids) > 1 {
		used += gap * float64(len(kids)-1)
	}

	if n.str(ports.FieldPrimaryAxisSizingMode) == ports.SizingFixed && grow > 0 && used < innerPrimary {
		extra := innerPrimary - used
		for _, c := range kids {
			share := c.num(ports.FieldLayoutGrow) / grow * extra
			if share <= 0 {
				continue
			}
			if horizontal {
				c.width += share
			} else {
				c.height += share
			}
			c.clampSize()
		}
	}

	if n.str(ports.FieldItemSpacing) == ports.SpacingAuto && len(kids) > 1 {
		var total float64
		for _, c := range kids {
			if horizontal {
				total += c.width
			} else {
				total += c.height
			}
		}
		gap = math.Max(0, (innerPrimary-total)/float64(len(kids)-1))
	}

	offset := left
	if !horizontal {
		offset = top
	}
	for _, c := range kids {
		if horizontal {
			c.x, c.y = offset, top
			offset += c.width + gap
		} else {
			c.x, c.y = left, offset
			offset += c.height + gap
		}
	}
}

// autosizeText estimates text bounds from the character count.
func (n *node) autosizeText() {
	size := n.num(ports.FieldFontSize)
	lines := strings.Split(n.chars, "\n")
	longest := 0
	for _, l := range lines {
		if c := utf8.RuneCountInString(l); c > longest {
			longest = c
		}
	}
	height := lineHeightRatio * size * float64(len(lines))

	switch n.str(ports.FieldTextAutoResize) {
	case "WIDTH_AND_HEIGHT":
		n.width = math.Max(glyphWidthRatio*size*float64(longest), minSize)
		n.height = height
	case "HEIGHT":
		n.height = height
	}
}
