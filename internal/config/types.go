package config

import (
	"time"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

// Supported values for LoggingConfig.Format.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultPath is where the CLI looks for a configuration file when none is given.
const DefaultPath = "~/.canvasgen/config.yaml"

// Config represents the full canvasgen configuration document.
type Config struct {
	Version   string          `yaml:"version" validate:"required,oneof=1"`
	Logging   LoggingConfig   `yaml:"logging"`
	Storage   StorageConfig   `yaml:"storage"`
	Inventory InventoryConfig `yaml:"inventory"`
	Render    RenderConfig    `yaml:"render"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"log_level"`
	Format string `yaml:"format" validate:"omitempty,oneof=auto text json"`
}

// StorageConfig locates the client-storage file and the key scan results live under.
type StorageConfig struct {
	Path    string `yaml:"path" validate:"required"`
	ScanKey string `yaml:"scan_key" validate:"required"`
}

// InventoryConfig points at the optional design-token and color-style tables.
type InventoryConfig struct {
	Tokens      string `yaml:"tokens,omitempty"`
	ColorStyles string `yaml:"color_styles,omitempty"`
}

// RenderConfig holds the generator defaults.
type RenderConfig struct {
	FallbackFont      ports.FontName   `yaml:"fallback_font"`
	BoldFont          ports.FontName   `yaml:"bold_font"`
	PreloadFonts      []ports.FontName `yaml:"preload_fonts,omitempty" validate:"omitempty,dive"`
	FallbackColor     string           `yaml:"fallback_color" validate:"required,hexcolor"`
	RepeatableKinds   []string         `yaml:"repeatable_kinds" validate:"dive,required"`
	MinTypeConfidence float64          `yaml:"min_type_confidence" validate:"gte=0,lte=1"`
	SchemaMaxAge      time.Duration    `yaml:"schema_max_age" validate:"gte=0"`
	Frame             FrameConfig      `yaml:"frame"`
}

// FrameConfig is the size of a root frame created on a page.
type FrameConfig struct {
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: "1",
		Logging: LoggingConfig{Level: "info", Format: FormatAuto},
		Storage: StorageConfig{
			Path:    "~/.canvasgen/storage.json",
			ScanKey: "last-scan-results",
		},
		Render: RenderConfig{
			FallbackFont:      ports.FontName{Family: "Inter", Style: "Regular"},
			BoldFont:          ports.FontName{Family: "Inter", Style: "Bold"},
			FallbackColor:     "#000000",
			RepeatableKinds:   []string{"tab"},
			MinTypeConfidence: 0.7,
			SchemaMaxAge:      7 * 24 * time.Hour,
			Frame:             FrameConfig{Width: 800, Height: 600},
		},
	}
}
