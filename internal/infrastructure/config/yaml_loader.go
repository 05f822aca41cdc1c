package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/go-homedir"

	cfgpkg "github.com/alexisbeaulieu97/canvasgen/internal/config"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// YAMLLoader implements config.Loader by reading YAML files from disk.
type YAMLLoader struct {
	logger ports.Logger
}

func NewYAMLLoader(logger ports.Logger) *YAMLLoader {
	return &YAMLLoader{logger: logger}
}

func (l *YAMLLoader) Load(ctx context.Context, path string) (*cfgpkg.Config, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	l.logDebug(ctx, "loading configuration", map[string]interface{}{"path": path})

	cfg, err := cfgpkg.Load(path)
	if err != nil {
		l.logError(ctx, "failed to load configuration", err, map[string]interface{}{"path": path})
		return nil, err
	}

	l.logInfo(ctx, "configuration loaded", map[string]interface{}{
		"path":       path,
		"storage":    cfg.Storage.Path,
		"repeatable": len(cfg.Render.RepeatableKinds),
	})
	return cfg, nil
}

func (l *YAMLLoader) Validate(ctx context.Context, path string) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return canvaserrors.NewParseError(path, 0, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		l.logError(ctx, "configuration path stat failed", err, map[string]interface{}{"path": expanded})
		return canvaserrors.NewParseError(expanded, 0, err)
	}
	if info.IsDir() {
		return canvaserrors.NewValidationError("path", fmt.Sprintf("%s is a directory", expanded), nil)
	}

	switch ext := filepath.Ext(expanded); ext {
	case ".yaml", ".yml":
		l.logDebug(ctx, "validating configuration", map[string]interface{}{"path": expanded})
		_, err = l.Load(ctx, expanded)
		return err
	default:
		return canvaserrors.NewValidationError("path", fmt.Sprintf("unsupported configuration file extension %q", ext), nil)
	}
}

var _ cfgpkg.Loader = (*YAMLLoader)(nil)

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("configuration load cancelled: %w", err)
	}
	return nil
}

func (l *YAMLLoader) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err.Error()
	l.logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
