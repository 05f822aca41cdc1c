package logging

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/canvasgen/internal/logger"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

// ZerologLogger bridges the application zerolog wrapper onto ports.Logger.
// The CLI uses it for JSON log output.
type ZerologLogger struct {
	base   *logger.Logger
	fields []interface{}
	layer  string
}

// NewZerolog wraps an application logger. A nil base yields a logger that
// discards everything.
func NewZerolog(base *logger.Logger, layer string) *ZerologLogger {
	if layer == "" {
		layer = "infrastructure"
	}
	return &ZerologLogger{base: base, layer: layer}
}

// Debug emits a debug log entry.
func (l *ZerologLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, logger.LevelDebug, msg, fields...)
}

// Info emits an info log entry.
func (l *ZerologLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, logger.LevelInfo, msg, fields...)
}

// Warn emits a warning log entry.
func (l *ZerologLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, logger.LevelWarn, msg, fields...)
}

// Error emits an error log entry.
func (l *ZerologLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, logger.LevelError, msg, fields...)
}

// With derives a new logger with persistent fields.
func (l *ZerologLogger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return &NoOpLogger{}
	}
	next := make([]interface{}, len(l.fields), len(l.fields)+len(fields))
	copy(next, l.fields)
	next = append(next, fields...)
	return &ZerologLogger{base: l.base, fields: next, layer: l.layer}
}

func (l *ZerologLogger) log(ctx context.Context, level logger.Level, msg string, fields ...interface{}) {
	if l == nil || l.base == nil {
		return
	}
	payload := mergeFields(l.fields, fields, contextExtras(ctx, l.layer))
	l.base.Emit(level, msg, pairsToMap(payload))
}

func pairsToMap(pairs []interface{}) map[string]any {
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			key = fmt.Sprint(pairs[i])
		}
		value := pairs[i+1]
		if err, isErr := value.(error); isErr {
			value = err.Error()
		}
		out[key] = value
	}
	return out
}

var _ ports.Logger = (*ZerologLogger)(nil)
