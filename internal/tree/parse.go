package tree

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ohler55/ojg/oj"

	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

var positionPattern = regexp.MustCompile(`(?:at|line) (\d+)`)

// ParseJSON parses raw declarative JSON into generic maps and slices. The
// source label is used in error messages only.
func ParseJSON(data []byte, source string) (interface{}, error) {
	if source == "" {
		source = "<input>"
	}
	value, err := oj.Parse(data)
	if err != nil {
		return nil, canvaserrors.NewParseError(source, extractLine(err), err)
	}
	return value, nil
}

// Parse parses, normalizes and decodes declarative JSON in one step.
func Parse(data []byte, source string, opts NormalizeOptions) (*Document, error) {
	raw, err := ParseJSON(data, source)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(Normalize(raw, opts))
	if err != nil {
		return nil, canvaserrors.NewParseError(source, 0, err)
	}
	return doc, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := positionPattern.FindStringSubmatch(err.Error())
	if len(matches) == 2 {
		if line, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return line
		}
	}
	return 0
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
