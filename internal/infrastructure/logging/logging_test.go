package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/logger"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	payload := make(map[string]interface{})
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(line)), &payload))
	return payload
}

func TestCharmLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := NewCharm(Options{
		Writer:    &buf,
		Level:     "debug",
		Formatter: cblog.JSONFormatter,
		Layer:     "domain",
		Component: "generator",
	})
	require.NoError(t, err)

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	log.Info(ctx, "generated container", "node_path", "root")

	payload := decodeLine(t, buf.String())
	require.Equal(t, "domain", payload["layer"])
	require.Equal(t, "generator", payload["component"])
	require.Equal(t, "abc123", payload["correlation_id"])
	require.Equal(t, "root", payload["node_path"])
	require.Equal(t, "generated container", payload["msg"])
}

func TestCharmLoggerWithAddsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := NewCharm(Options{Writer: &buf, Formatter: cblog.JSONFormatter})
	require.NoError(t, err)

	child := log.With("component", "matcher").(*CharmLogger)
	child.Warn(context.Background(), "no text target", "key", "headline")

	payload := decodeLine(t, buf.String())
	require.Equal(t, "matcher", payload["component"])
	require.Equal(t, "headline", payload["key"])
	require.Equal(t, "infrastructure", payload["layer"])
}

func TestCharmLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := NewCharm(Options{Level: "noisy"})
	require.Error(t, err)
}

func TestZerologLoggerBridgesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log := NewZerolog(base, "application").With("component", "render")
	ctx := ports.WithCorrelationID(context.Background(), "corr-1")
	log.Error(ctx, "render failed", "error", errors.New("boom"))

	payload := decodeLine(t, buf.String())
	require.Equal(t, "error", payload["level"])
	require.Equal(t, "render failed", payload["message"])
	require.Equal(t, "render", payload["component"])
	require.Equal(t, "application", payload["layer"])
	require.Equal(t, "corr-1", payload["correlation_id"])
	require.Equal(t, "boom", payload["error"])
}

func TestNoOpLogger(t *testing.T) {
	t.Parallel()

	noOp := NewNoOpLogger()
	require.NotPanics(t, func() {
		noOp.Info(context.Background(), "hello world")
	})
	require.Same(t, noOp, noOp.With("key", "value"))
}

func TestBufferedLoggerStoresAndFlushes(t *testing.T) {
	t.Parallel()

	buffer := NewEventBuffer(10)
	bufLogger := NewBufferedLogger(buffer)

	ctx := ports.WithCorrelationID(context.Background(), "buffered")
	bufLogger.Info(ctx, "booting", "component", "bootstrap")
	bufLogger.With("component", "generator").Error(ctx, "failed", "attempt", 1)

	entries := buffer.Entries()
	require.Len(t, entries, 2)
	value, ok := entries[1].Field("component")
	require.True(t, ok)
	require.Equal(t, "generator", value)
	require.Equal(t, LevelError, entries[1].Level)

	var output bytes.Buffer
	delegate, err := NewCharm(Options{Writer: &output, Formatter: cblog.JSONFormatter})
	require.NoError(t, err)

	buffer.Flush(delegate)
	require.Empty(t, buffer.Entries())

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2)

	first := decodeLine(t, lines[0])
	require.Equal(t, "booting", first["msg"])
	require.Equal(t, "bootstrap", first["component"])

	second := decodeLine(t, lines[1])
	require.Equal(t, "failed", second["msg"])
	require.Equal(t, "buffered", second["correlation_id"])
}

func TestEventBufferDropsOldest(t *testing.T) {
	t.Parallel()

	buffer := NewEventBuffer(2)
	log := NewBufferedLogger(buffer)
	log.Info(context.Background(), "one")
	log.Info(context.Background(), "two")
	log.Info(context.Background(), "three")

	entries := buffer.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "two", entries[0].Msg)
	require.Equal(t, "three", entries[1].Msg)
}
