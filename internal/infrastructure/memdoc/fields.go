package memdoc

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

var (
	commonFields = []ports.Field{
		ports.FieldName, ports.FieldVisible, ports.FieldX, ports.FieldY,
		ports.FieldWidth, ports.FieldHeight,
		ports.FieldLayoutAlign, ports.FieldLayoutGrow, ports.FieldLayoutPositioning,
		ports.FieldMinWidth, ports.FieldMaxWidth, ports.FieldMinHeight, ports.FieldMaxHeight,
	}
	paintFields = []ports.Field{ports.FieldFills, ports.FieldStrokes, ports.FieldFillStyleID}
	frameFields = []ports.Field{
		ports.FieldLayoutMode,
		ports.FieldPaddingTop, ports.FieldPaddingRight, ports.FieldPaddingBottom, ports.FieldPaddingLeft,
		ports.FieldItemSpacing, ports.FieldLayoutWrap,
		ports.FieldPrimaryAxisAlignItems, ports.FieldCounterAxisAlignItems,
		ports.FieldPrimaryAxisSizingMode, ports.FieldCounterAxisSizingMode,
		ports.FieldCornerRadius,
	}
	textFields = []ports.Field{
		ports.FieldCharacters, ports.FieldFontSize, ports.FieldFontName,
		ports.FieldTextAlignHorizontal, ports.FieldTextAutoResize, ports.FieldTextStyleID,
	}

	supported = map[ports.NodeType]map[ports.Field]bool{
		ports.NodeTypePage:      fieldSet([]ports.Field{ports.FieldName}),
		ports.NodeTypeFrame:     fieldSet(commonFields, paintFields, frameFields),
		ports.NodeTypeComponent: fieldSet(commonFields, paintFields, frameFields),
		ports.NodeTypeInstance:  fieldSet(commonFields, paintFields, frameFields),
		ports.NodeTypeGroup:     fieldSet(commonFields),
		ports.NodeTypeText:      fieldSet(commonFields, paintFields, textFields),
		ports.NodeTypeRectangle: fieldSet(commonFields, paintFields, []ports.Field{ports.FieldCornerRadius}),
		ports.NodeTypeEllipse:   fieldSet(commonFields, paintFields),
		ports.NodeTypeVector:    fieldSet(commonFields, paintFields),
	}

	enums = map[ports.Field][]string{
		ports.FieldLayoutMode:            {ports.LayoutModeNone, ports.LayoutModeHorizontal, ports.LayoutModeVertical},
		ports.FieldLayoutWrap:            {"NO_WRAP", "WRAP"},
		ports.FieldPrimaryAxisAlignItems: {"MIN", "CENTER", "MAX", "SPACE_BETWEEN"},
		ports.FieldCounterAxisAlignItems: {"MIN", "CENTER", "MAX", "BASELINE"},
		ports.FieldPrimaryAxisSizingMode: {ports.SizingFixed, ports.SizingAuto},
		ports.FieldCounterAxisSizingMode: {ports.SizingFixed, ports.SizingAuto},
		ports.FieldLayoutAlign:           {"INHERIT", ports.AlignStretch, "MIN", "CENTER", "MAX"},
		ports.FieldLayoutPositioning:     {"AUTO", "ABSOLUTE"},
		ports.FieldTextAlignHorizontal:   {"LEFT", "CENTER", "RIGHT", "JUSTIFIED"},
		ports.FieldTextAutoResize:        {"NONE", "HEIGHT", "WIDTH_AND_HEIGHT", "TRUNCATE"},
	}

	numberFields = fieldSet([]ports.Field{
		ports.FieldLayoutGrow, ports.FieldCornerRadius,
		ports.FieldPaddingTop, ports.FieldPaddingRight, ports.FieldPaddingBottom, ports.FieldPaddingLeft,
	})
	sizeLimitFields = fieldSet([]ports.Field{
		ports.FieldMinWidth, ports.FieldMaxWidth, ports.FieldMinHeight, ports.FieldMaxHeight,
	})
)

func fieldSet(lists ...[]ports.Field) map[ports.Field]bool {
	set := make(map[ports.Field]bool)
	for _, list := range lists {
		for _, f := range list {
			set[f] = true
		}
	}
	return set
}

func supports(t ports.NodeType, field ports.Field) bool {
	return supported[t][field]
}

// assign validates and stores a single field. Size fields resize the node.
func (n *node) assign(field ports.Field, value interface{}) error {
	switch {
	case field == ports.FieldName:
		s, ok := value.(string)
		if !ok {
			return typeError(field, "string", value)
		}
		n.name = s
	case field == ports.FieldVisible:
		b, ok := value.(bool)
		if !ok {
			return typeError(field, "bool", value)
		}
		n.visible = b
	case field == ports.FieldX || field == ports.FieldY:
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		if field == ports.FieldX {
			n.x = f
		} else {
			n.y = f
		}
	case field == ports.FieldWidth:
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		return n.resize(f, n.height)
	case field == ports.FieldHeight:
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		return n.resize(n.width, f)
	case field == ports.FieldItemSpacing:
		if s, ok := value.(string); ok {
			if s != ports.SpacingAuto {
				return fmt.Errorf("%s accepts a number or %q, got %q", field, ports.SpacingAuto, s)
			}
			n.fields[field] = s
			return nil
		}
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		n.fields[field] = f
	case field == ports.FieldLayoutMode:
		s, err := enumValue(field, value)
		if err != nil {
			return err
		}
		if n.str(field) == ports.LayoutModeNone && s != ports.LayoutModeNone {
			n.fields[ports.FieldPrimaryAxisSizingMode] = ports.SizingFixed
			n.fields[ports.FieldCounterAxisSizingMode] = ports.SizingFixed
		}
		n.fields[field] = s
	case field == ports.FieldLayoutWrap:
		s, err := enumValue(field, value)
		if err != nil {
			return err
		}
		if s == "WRAP" && n.str(ports.FieldLayoutMode) != ports.LayoutModeHorizontal {
			return errors.New("layoutWrap WRAP requires a HORIZONTAL layout")
		}
		n.fields[field] = s
	case sizeLimitFields[field]:
		if !n.isAutoLayout() && (n.parent == nil || !n.parent.isAutoLayout()) {
			return fmt.Errorf("%s applies only to auto-layout frames and their children", field)
		}
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		n.fields[field] = f
	case numberFields[field]:
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		n.fields[field] = f
	case field == ports.FieldFills || field == ports.FieldStrokes:
		paints, ok := value.([]ports.Paint)
		if !ok {
			return typeError(field, "[]ports.Paint", value)
		}
		n.fields[field] = append([]ports.Paint(nil), paints...)
		if field == ports.FieldFills {
			delete(n.fields, ports.FieldFillStyleID)
		}
	case field == ports.FieldFillStyleID:
		return n.assignFillStyle(value)
	case field == ports.FieldTextStyleID:
		return n.assignTextStyle(value)
	case field == ports.FieldCharacters:
		s, ok := value.(string)
		if !ok {
			return typeError(field, "string", value)
		}
		if err := n.requireLoadedFonts(); err != nil {
			return err
		}
		n.chars = s
		n.fonts = n.fonts[:1]
	case field == ports.FieldFontSize:
		f, err := toFloat(field, value)
		if err != nil {
			return err
		}
		if f < 1 {
			return fmt.Errorf("%s must be at least 1, got %g", field, f)
		}
		if err := n.requireLoadedFonts(); err != nil {
			return err
		}
		n.fields[field] = f
	case field == ports.FieldFontName:
		font, ok := value.(ports.FontName)
		if !ok {
			return typeError(field, "ports.FontName", value)
		}
		if !n.doc.loaded[font] {
			return canvaserrors.NewFontError(font.Family, font.Style, errFontNotLoaded)
		}
		n.fonts = []ports.FontName{font}
	default:
		s, err := enumValue(field, value)
		if err != nil {
			return err
		}
		n.fields[field] = s
	}
	return nil
}

func (n *node) assignFillStyle(value interface{}) error {
	id, ok := value.(string)
	if !ok {
		return typeError(ports.FieldFillStyleID, "string", value)
	}
	if id == "" {
		delete(n.fields, ports.FieldFillStyleID)
		return nil
	}
	style, ok := n.doc.paintStyleByID(id)
	if !ok {
		return canvaserrors.NewReferenceError(canvaserrors.ReferencePaintStyle, id)
	}
	n.fields[ports.FieldFills] = []ports.Paint{ports.SolidPaint(style.color)}
	n.fields[ports.FieldFillStyleID] = id
	return nil
}

func (n *node) assignTextStyle(value interface{}) error {
	id, ok := value.(string)
	if !ok {
		return typeError(ports.FieldTextStyleID, "string", value)
	}
	style, ok := n.doc.textStyleByID(id)
	if !ok {
		return canvaserrors.NewReferenceError(canvaserrors.ReferenceTextStyle, id)
	}
	if !n.doc.loaded[style.font] {
		return canvaserrors.NewFontError(style.font.Family, style.font.Style, errFontNotLoaded)
	}
	n.fonts = []ports.FontName{style.font}
	if style.size > 0 {
		n.fields[ports.FieldFontSize] = style.size
	}
	n.fields[ports.FieldTextStyleID] = id
	return nil
}

// requireLoadedFonts enforces the host rule that every font in a text node
// is loaded before its content or size changes.
func (n *node) requireLoadedFonts() error {
	for _, f := range distinctFonts(n.fonts) {
		if !n.doc.available[f] {
			return canvaserrors.NewFontError(f.Family, f.Style, errFontUnavailable)
		}
		if !n.doc.loaded[f] {
			return canvaserrors.NewFontError(f.Family, f.Style, errFontNotLoaded)
		}
	}
	return nil
}

func enumValue(field ports.Field, value interface{}) (string, error) {
	legal, ok := enums[field]
	if !ok {
		return "", fmt.Errorf("field %s is not settable", field)
	}
	s, ok := value.(string)
	if !ok {
		return "", typeError(field, "string", value)
	}
	if !containsString(legal, s) {
		return "", fmt.Errorf("invalid %s %q, expected one of %v", field, s, legal)
	}
	return s, nil
}

func toFloat(field ports.Field, value interface{}) (float64, error) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, typeError(field, "number", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be finite", field)
	}
	return f, nil
}

func typeError(field ports.Field, want string, got interface{}) error {
	return fmt.Errorf("%s expects %s, got %T", field, want, got)
}
