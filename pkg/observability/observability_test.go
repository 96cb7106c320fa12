package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/testidgen/pkg/observability"
)

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.LoggerOptions{
		Level: slog.LevelDebug,
		JSON:  true,
		Mode:  observability.ModeBatch,
	})

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	logger.InfoContext(trace.ContextWithSpanContext(context.Background(), sc), "annotated")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "testidgen", record["service"])
	assert.Equal(t, "batch", record["mode"])
}

func TestTracingHandler_NoTraceContextAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.LoggerOptions{JSON: true, Mode: observability.ModeFile})
	logger.WithGroup("file").Info("done", "path", "a.jsx")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.NotContains(t, record, "trace_id")
	assert.Equal(t, "file", record["mode"])
	assert.Equal(t, map[string]any{"path": "a.jsx"}, record["file"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.LoggerOptions{Level: observability.ParseLevel("warn")})
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("verbose"))
}

func TestRunMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	rm, err := observability.NewRunMetrics()
	require.NoError(t, err)

	rm.RecordFile(ctx, observability.StatusOK, 20*time.Millisecond, map[string]int{"html": 3, "framework": 1})
	rm.RecordFile(ctx, observability.StatusFailed, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "testidgen.prom")
	require.NoError(t, rm.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "testidgen_files")
	assert.Contains(t, text, `status="failed"`)
	assert.Contains(t, text, `category="html"`)
	assert.Contains(t, text, "testidgen_file_duration")

	require.NoError(t, rm.Shutdown(ctx))
}

func TestRunMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var rm *observability.RunMetrics

	assert.NotPanics(t, func() {
		rm.RecordFile(context.Background(), observability.StatusOK, time.Second, nil)
	})
}
