package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesSeverityField(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "production", "info")

	l.Info().Str("customer_id", "c1").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["severity"])
	assert.Equal(t, "c1", entry["customer_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "production", "chatty")

	l.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}
