package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchellh/go-homedir"

	"github.com/alexisbeaulieu97/canvasgen/internal/config"
	infraconfig "github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/canvasgen/internal/logger"
	"github.com/alexisbeaulieu97/canvasgen/internal/perf"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/storage"
)

// bootstrapBufferSize bounds the events kept before the real logger exists.
const bootstrapBufferSize = 64

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config  *config.Config
	Logger  ports.Logger
	Tracker *perf.Tracker
}

// newAppContext loads configuration, applies the persistent flag overrides
// and builds the logger. Events emitted while loading are replayed into it.
func newAppContext(ctx context.Context, flags *rootFlags, stderr io.Writer) (*AppContext, error) {
	buffer := logging.NewEventBuffer(bootstrapBufferSize)
	loader := infraconfig.NewYAMLLoader(logging.NewBufferedLogger(buffer))

	path := config.DefaultPath
	if flags.configPath != "" {
		if err := loader.Validate(ctx, flags.configPath); err != nil {
			return nil, newCommandError("load configuration", flags.configPath, err, "Check that the file exists and fix the reported field")
		}
		path = flags.configPath
	}

	cfg, err := loader.Load(ctx, path)
	if err != nil {
		return nil, newCommandError("load configuration", path, err, "Fix the configuration file or remove it to use defaults")
	}

	if flags.storagePath != "" {
		expanded, err := homedir.Expand(flags.storagePath)
		if err != nil {
			return nil, newCommandError("resolve storage path", flags.storagePath, err, "Pass an absolute path to --storage")
		}
		cfg.Storage.Path = expanded
	}

	log, err := newLogger(cfg.Logging, flags, stderr)
	if err != nil {
		return nil, newCommandError("configure logging", cfg.Logging.Format, err, "Use --log-format auto, text or json")
	}
	buffer.Flush(log)

	return &AppContext{
		Config:  cfg,
		Logger:  log,
		Tracker: perf.NewTracker(),
	}, nil
}

// OpenStore opens the client storage file named by the configuration.
func (a *AppContext) OpenStore() (*storage.FileStore, error) {
	store, err := storage.NewFileStore(a.Config.Storage.Path)
	if err != nil {
		return nil, newCommandError("open storage", a.Config.Storage.Path, err, "Check permissions or pass --storage")
	}
	return store, nil
}

func newLogger(cfg config.LoggingConfig, flags *rootFlags, w io.Writer) (ports.Logger, error) {
	level := cfg.Level
	if flags.verbose {
		level = string(logger.LevelDebug)
	}
	format := cfg.Format
	if flags.logFormat != "" {
		format = flags.logFormat
	}

	switch format {
	case config.FormatText:
		charm, err := logging.NewCharm(logging.Options{Writer: w, Level: level, Layer: "cli"})
		if err != nil {
			return nil, err
		}
		return charm, nil
	case config.FormatJSON, config.FormatAuto, "":
		base, err := logger.New(logger.Options{
			Level:         level,
			Writer:        w,
			HumanReadable: format != config.FormatJSON && isTerminal(w),
		})
		if err != nil {
			return nil, err
		}
		return logging.NewZerolog(base, "cli"), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
