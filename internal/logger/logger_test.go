package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "app-state-relay")

	l.Info().Str("collection", "regular_high").Msg("patch appended")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "app-state-relay", entry["role"])
	assert.Equal(t, "regular_high", entry["collection"])
	assert.Contains(t, entry, zerolog.TimestampFieldName)
	// caller пишется именем функции, а не file:line
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewLogger_Stdout(t *testing.T) {
	require.NotNil(t, NewLogger("relay"))
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "client")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("device_id", "phone").Logger()
	child.Info().Msg("child")
	parent.Info().Msg("parent")

	assert.NotSame(t, parent, child)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "client", entry["role"])
	assert.NotContains(t, entry, "device_id")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	tests := []struct {
		name string
		get  func() *Logger
	}{
		{
			name: "context",
			get:  func() *Logger { return FromContext(zl.WithContext(context.Background())) },
		},
		{
			name: "request",
			get: func() *Logger {
				req := httptest.NewRequest(http.MethodPost, "/api/sync/w:sync:app:state", nil)
				return FromRequest(req.WithContext(zl.WithContext(req.Context())))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.get().Info().Msg("scoped")
			assert.Equal(t, "abc", lastEntry(t, &buf)["trace_id"])
		})
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	l := NewClientLogger("client", dir)

	l.Info().Str("collection", "regular").Msg("pulled")

	data, err := os.ReadFile(filepath.Join(dir, clientLogFile))
	require.NoError(t, err)
	entry := lastEntry(t, bytes.NewBuffer(data))
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "regular", entry["collection"])
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, "relay")

	ctx, l := base.WithTraceID(context.Background(), "t-1")
	FromContext(ctx).Info().Msg("from context")
	assert.Equal(t, "t-1", lastEntry(t, &buf)["trace_id"])

	l.Info().Msg("direct")
	assert.Equal(t, "t-1", lastEntry(t, &buf)["trace_id"])

	base.Info().Msg("base")
	assert.NotContains(t, lastEntry(t, &buf), "trace_id")
}
