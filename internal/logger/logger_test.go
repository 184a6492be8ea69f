package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONOutsideDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "release", "debug")
	log.Debug().Str("k", "v").Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hola", line["message"])
	assert.Equal(t, "tablero", line["service"])
	assert.Equal(t, "v", line["k"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "release", "verbose")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid log level")
}
