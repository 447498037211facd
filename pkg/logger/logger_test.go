package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubsub/pkg/logger"
)

func TestNew_ProductionWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "production", "")

	log.Debug("hidden")
	log.Info("published", "event_type", "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "published", rec["msg"])
	assert.Equal(t, "test", rec["event_type"])
}

func TestNew_LocalWritesTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "local", "")

	log.Debug("subscribed", "event_type", "test")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "event_type=test")
}

func TestNew_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "local", "warn")

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
