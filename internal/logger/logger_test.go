package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := build("info", "json", zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("scan complete", zap.Int("elements", 7))
	require.NoError(t, log.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scan complete", entry["msg"])
	assert.EqualValues(t, 7, entry["elements"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := build("debug", "console", zapcore.AddSync(&buf))
	require.NoError(t, err)
	log.Debug("cache miss", zap.String("hash", "abc"))
	assert.Contains(t, buf.String(), "cache miss")
	assert.Contains(t, buf.String(), "abc")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("loud", "console")
	assert.Error(t, err)
	_, err = New("info", "xml")
	assert.Error(t, err)
}
