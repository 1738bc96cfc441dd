package logutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	defer SetupLogger(false, false)

	Debug("hidden message", "key", "value")
	assert.Empty(t, buf.String())

	Info("visible message")
	assert.Contains(t, buf.String(), "visible message")
}

func TestDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, true, false)
	defer SetupLogger(false, false)

	Debug("token request", "url", "https://example.com")
	out := buf.String()
	assert.Contains(t, out, "token request")
	assert.Contains(t, out, "https://example.com")
}

func TestDebugEnabledByEnvVar(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	defer SetupLogger(false, false)

	t.Setenv(EnvDebug, "true")
	require.True(t, IsDebugEnabled())
}

func TestStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, true)
	defer SetupLogger(false, false)

	Info("structured message", "step", "discovery")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"step":"discovery"`)
}
