package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLast(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "lasumba-api", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithField(ctx, "volunteer_id", "v-1")
	log.Error(ctx, "notification failed", errors.New("smtp down"))

	entry := decodeLast(t, buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "v-1", entry["volunteer_id"])
	assert.Equal(t, "smtp down", entry["error"])
	assert.Equal(t, "lasumba-api", entry["service"])
	assert.Equal(t, "error", entry["level"])
}

func TestLevelFiltersEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: zerolog.WarnLevel, Output: buf})

	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown")
	assert.Equal(t, "shown", decodeLast(t, buf)["message"])
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Output: buf})

	parent := context.Background()
	child := log.WithFields(parent, map[string]any{"kind": "quote.created"})

	log.Info(child, "child")
	assert.Equal(t, "quote.created", decodeLast(t, buf)["kind"])

	log.Info(parent, "parent")
	_, ok := decodeLast(t, buf)["kind"]
	assert.False(t, ok)
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Error(context.Background(), "ignored", errors.New("x"))
	})
}
