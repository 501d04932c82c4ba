package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", true)

	log.Debug().Msg("hidden")
	log.Info().Str("kind", "chest").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "chest", entry["kind"])
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "loud", true)

	log.Info().Msg("below warn")
	assert.Empty(t, buf.String())

	log.Warn().Msg("at warn")
	assert.Contains(t, buf.String(), "at warn")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, "debug", true), "registry")
	log.Debug().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"registry"`)
}
