package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTimeTermFormat(t *testing.T) {
	b := new(bytes.Buffer)
	writeTimeTermFormat(b, time.Date(2026, 3, 7, 9, 5, 1, 42_000_000, time.UTC))
	assert.Equal(t, "03-07|09:05:01.042", b.String())
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("Generated bytes", "count", 8, "state", uint64(7381772627135888450))

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO ["))
	assert.Contains(t, line, "Generated bytes")
	assert.Contains(t, line, "count=8")
	assert.Contains(t, line, "state=7,381,772,627,135,888,450")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, slog.LevelWarn, false))
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestOddArguments(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("odd", "key")
	assert.Contains(t, out.String(), errorKey)
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Debug("Seeded", "seed", []byte{0x2a, 0, 0, 0})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "debug", rec["lvl"])
	assert.Equal(t, "Seeded", rec["msg"])
	assert.Equal(t, "2a000000", rec["seed"])
}

func TestGlogVmodule(t *testing.T) {
	out := new(bytes.Buffer)
	glog := NewGlogHandler(NewTerminalHandler(out, false))
	glog.Verbosity(LevelWarn)
	l := NewLogger(glog)

	l.Debug("filtered")
	assert.Empty(t, out.String())

	require.NoError(t, glog.Vmodule("logger_test.go=4"))
	l.Debug("passed")
	assert.Contains(t, out.String(), "passed")

	assert.ErrorIs(t, glog.Vmodule("logger_test.go"), errVmoduleSyntax)
	assert.ErrorIs(t, glog.Vmodule("logger_test.go=x"), errVmoduleSyntax)
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}
