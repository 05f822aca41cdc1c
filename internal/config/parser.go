package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/canvasgen/internal/validation"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the configuration at path. An empty path or a missing file
// yields Default. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return finalize(Default())
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, canvaserrors.NewParseError(path, 0, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return finalize(Default())
	}
	if err != nil {
		return nil, canvaserrors.NewParseError(expanded, 0, err)
	}

	return Parse(data, expanded)
}

// Parse decodes YAML data over the defaults, validates it and expands home
// directory references in every path.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, canvaserrors.NewParseError(source, extractLine(err), err)
	}
	return finalize(cfg)
}

// Validate checks cfg against its field rules.
func Validate(cfg *Config) error {
	if cfg == nil {
		return canvaserrors.NewValidationError("config", "configuration is nil", nil)
	}
	return validation.Struct(cfg)
}

func finalize(cfg *Config) (*Config, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	paths := []struct {
		field string
		value *string
	}{
		{"storage.path", &cfg.Storage.Path},
		{"inventory.tokens", &cfg.Inventory.Tokens},
		{"inventory.color_styles", &cfg.Inventory.ColorStyles},
	}
	for _, p := range paths {
		expanded, err := homedir.Expand(*p.value)
		if err != nil {
			return nil, canvaserrors.NewValidationError(p.field, fmt.Sprintf("cannot expand %q", *p.value), err)
		}
		*p.value = expanded
	}
	return cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
