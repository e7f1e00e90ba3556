package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "ERROR", Output: &buf})
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())

	log.Warn("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "loud", Output: &buf})

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid log level 'loud'")
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	log := New(Options{Level: "error", Verbose: true, Output: &bytes.Buffer{}})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_ProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Environment: "production", Output: &buf})

	log.WithField("key", "beloved-data").Info("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "beloved-data", entry["key"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_DevelopmentLogsText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Environment: "development", Output: &buf})

	log.Info("hello")
	assert.Contains(t, buf.String(), `msg=hello`)
}

func TestIsStructured(t *testing.T) {
	assert.True(t, IsStructured("production"))
	assert.True(t, IsStructured("Staging"))
	assert.False(t, IsStructured("development"))
	assert.False(t, IsStructured(""))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing")
	assert.NotNil(t, log)
}
