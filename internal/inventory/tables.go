package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/canvasgen/internal/validation"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// ColorCategory groups color styles the way the scanner reports them.
type ColorCategory string

const (
	CategoryPrimary   ColorCategory = "primary"
	CategorySecondary ColorCategory = "secondary"
	CategoryTertiary  ColorCategory = "tertiary"
	CategoryNeutral   ColorCategory = "neutral"
	CategorySemantic  ColorCategory = "semantic"
	CategorySurface   ColorCategory = "surface"
	CategoryOther     ColorCategory = "other"
)

// CategoryOrder is the order color-style categories are searched in.
var CategoryOrder = []ColorCategory{
	CategoryPrimary,
	CategorySecondary,
	CategoryTertiary,
	CategoryNeutral,
	CategorySemantic,
	CategorySurface,
	CategoryOther,
}

// DesignToken is a named design value. Color tokens carry either a hex
// string or an {r,g,b} object in Value.
type DesignToken struct {
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Collection string      `json:"collection,omitempty" yaml:"collection,omitempty"`
	Type       string      `json:"type" yaml:"type"`
	Value      interface{} `json:"value" yaml:"value"`
}

// ColorInfo is the resolved paint behind a color style.
type ColorInfo struct {
	Type  string `json:"type" yaml:"type"`
	Color string `json:"color" yaml:"color"`
}

// ColorStyle is a named color style with its resolved hex value.
type ColorStyle struct {
	Name      string    `json:"name" yaml:"name" validate:"required"`
	ColorInfo ColorInfo `json:"colorInfo" yaml:"colorInfo"`
}

// ColorStyleTable maps each category to its styles in scan order.
type ColorStyleTable map[ColorCategory][]ColorStyle

type tokenFile struct {
	Tokens []DesignToken `yaml:"tokens" validate:"dive"`
}

// LoadTokens reads a design-token table from a YAML or JSON file. The file may
// be a bare list or an object with a "tokens" list. An empty path yields no
// tokens.
func LoadTokens(path string) ([]DesignToken, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}

	var list []DesignToken
	if err := yaml.Unmarshal(data, &list); err != nil {
		var wrapped tokenFile
		if wrappedErr := yaml.Unmarshal(data, &wrapped); wrappedErr != nil {
			return nil, canvaserrors.NewParseError(path, 0, wrappedErr)
		}
		list = wrapped.Tokens
	}
	if err := validation.Struct(tokenFile{Tokens: list}); err != nil {
		return nil, err
	}
	return list, nil
}

// LoadColorStyles reads a color-style table keyed by category from a YAML or
// JSON file. An empty path yields an empty table.
func LoadColorStyles(path string) (ColorStyleTable, error) {
	table := ColorStyleTable{}
	if path == "" {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read color styles: %w", err)
	}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, canvaserrors.NewParseError(path, 0, err)
	}
	return table, nil
}

// LoadScanFile reads scan records from a YAML or JSON file and validates them.
func LoadScanFile(path string) ([]ComponentInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scan results: %w", err)
	}
	var infos []ComponentInfo
	if err := yaml.Unmarshal(data, &infos); err != nil {
		return nil, canvaserrors.NewParseError(path, 0, err)
	}
	if err := Validate(infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// Tables bundles the color lookup tables used by the resolvers.
type Tables struct {
	Tokens []DesignToken
	Styles ColorStyleTable
}

// LoadTables reads the design-token and color-style tables. Either path may be
// empty.
func LoadTables(tokensPath, stylesPath string) (Tables, error) {
	tokens, err := LoadTokens(tokensPath)
	if err != nil {
		return Tables{}, err
	}
	styles, err := LoadColorStyles(stylesPath)
	if err != nil {
		return Tables{}, err
	}
	return Tables{Tokens: tokens, Styles: styles}, nil
}
