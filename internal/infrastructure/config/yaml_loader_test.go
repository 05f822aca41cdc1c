package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/logging"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

func TestYAMLLoaderLoadSuccess(t *testing.T) {
	buffer := logging.NewEventBuffer(0)
	loader := NewYAMLLoader(logging.NewBufferedLogger(buffer))
	ctx := context.Background()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `version: "1"
render:
  fallback_color: "#112233"
  frame:
    width: 1280
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loader.Load(ctx, configPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Render.FallbackColor != "#112233" {
		t.Fatalf("expected fallback color #112233, got %s", cfg.Render.FallbackColor)
	}
	if cfg.Render.Frame.Width != 1280 || cfg.Render.Frame.Height != 600 {
		t.Fatalf("expected frame 1280x600, got %vx%v", cfg.Render.Frame.Width, cfg.Render.Frame.Height)
	}

	entries := buffer.Entries()
	if len(entries) == 0 || entries[len(entries)-1].Msg != "configuration loaded" {
		t.Fatalf("expected a configuration loaded entry, got %+v", entries)
	}
}

func TestYAMLLoaderLoadMissingFileUsesDefaults(t *testing.T) {
	loader := newTestLoader()

	cfg, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	if cfg.Version != "1" {
		t.Fatalf("expected default version, got %q", cfg.Version)
	}
}

func TestYAMLLoaderLoadParseError(t *testing.T) {
	loader := newTestLoader()

	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("version: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := loader.Load(context.Background(), configPath)
	var parseErr *canvaserrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
}

func TestYAMLLoaderLoadValidationError(t *testing.T) {
	loader := newTestLoader()

	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  format: xml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := loader.Load(context.Background(), configPath)
	var validationErr *canvaserrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if validationErr.Field != "logging.format" {
		t.Fatalf("expected field logging.format, got %s", validationErr.Field)
	}
}

func TestYAMLLoaderLoadCancelled(t *testing.T) {
	loader := newTestLoader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, "whatever.yaml")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
}

func TestYAMLLoaderValidate(t *testing.T) {
	loader := newTestLoader()
	ctx := context.Background()
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("version: \"1\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := loader.Validate(ctx, configPath); err != nil {
		t.Fatalf("expected validate success, got %v", err)
	}

	textPath := filepath.Join(dir, "config.txt")
	if err := os.WriteFile(textPath, []byte("version: \"1\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := loader.Validate(ctx, textPath); err == nil {
		t.Fatalf("expected unsupported extension error")
	}

	if err := loader.Validate(ctx, dir); err == nil {
		t.Fatalf("expected directory error")
	}

	if err := loader.Validate(ctx, filepath.Join(dir, "absent.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func newTestLoader() *YAMLLoader {
	return NewYAMLLoader(logging.NewNoOpLogger())
}
