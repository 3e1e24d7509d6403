package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLoggerTo(&buf, "debug", "json")
	require.NoError(t, err)

	log.Component("session").Info("connected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session", entry["component"])
	assert.Equal(t, "connected", entry["msg"])
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLoggerTo(&bytes.Buffer{}, "loud", "text")
	require.Error(t, err)

	_, err = NewLoggerTo(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLoggerTo(&buf, "warn", "text")
	require.NoError(t, err)

	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
