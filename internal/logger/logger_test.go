package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug", false))
	assert.Equal(t, WarnLevel, ParseLevel("WARN", false))
	assert.Equal(t, ErrorLevel, ParseLevel("error", true))
	assert.Equal(t, InfoLevel, ParseLevel("", false))
	assert.Equal(t, DebugLevel, ParseLevel("", true))
	assert.Equal(t, "warn", WarnLevel.String())
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, InfoLevel)

	log.Debug("Dispatcher", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Info("Dispatcher", "Running 1 tests from Sobel", map[string]interface{}{"total": 1})
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Dispatcher", entry["component"])
	assert.Equal(t, "Running 1 tests from Sobel", entry["message"])
	assert.Equal(t, float64(1), entry["total"])

	buf.Reset()
	log.Error("Case", errors.New("boom"), nil)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestZerologErrorMessage(t *testing.T) {
	var buf bytes.Buffer
	var entry map[string]interface{}

	NewZerolog(&buf, InfoLevel).Error("Dispatcher", errors.New("boom"), nil)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, DefaultErrorMessage, entry["message"])

	buf.Reset()
	entry = nil
	log := NewZerolog(&buf, InfoLevel, WithErrorMessage("case failed"))
	log.Error("Dispatcher", errors.New("boom"), map[string]interface{}{"case": 3})
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "case failed", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, float64(3), entry["case"])
	assert.Equal(t, "Dispatcher", entry["component"])
}

func TestZerologStack(t *testing.T) {
	var buf bytes.Buffer
	var entry map[string]interface{}

	log := NewZerolog(&buf, InfoLevel, WithStack())
	log.Error("Case", errors.New("boom"), nil)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotEmpty(t, entry["stack"])
}
