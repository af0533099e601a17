package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/portrait/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("failed", "error", errors.New("boom"))
	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestNew_MasksSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("configured", "bot_token", "123:abc", "redis_password", "hunter2", "addr", ":8080")
	out := buf.String()
	assert.NotContains(t, out, "123:abc")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "bot_token=***")
	assert.Contains(t, out, "addr=:8080")
}

func TestNew_MasksSecretValues(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo, "123:abc", "")

	logger.Warn("request failed", "url", "https://api.telegram.org/bot123:abc/getUpdates", "err", errors.New("Post bot123:abc: timeout"))
	out := buf.String()
	assert.NotContains(t, out, "123:abc")
	assert.Contains(t, out, "bot***/getUpdates")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelWarn)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = logging.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}
