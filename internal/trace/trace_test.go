package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_AppendWritesOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.ndjson")

	w, err := NewWriter(path)
	require.NoError(t, err)

	w.Append(Record{RequestID: "req-1", ModelName: "gemini-2.0-flash", Status: "ok", LatencyMS: 42})
	w.Append(Record{RequestID: "req-2", Status: "failed", Error: "timeout"})
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "generate", first["event"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "gemini-2.0-flash", first["model_name"])
	assert.Equal(t, "ok", first["status"])
	assert.Equal(t, float64(42), first["latency_ms"])
	assert.NotEmpty(t, first["ts"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "req-2", second["request_id"])
	assert.Equal(t, "timeout", second["error"])
}

func TestWriter_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")

	w, err := NewWriter(path)
	require.NoError(t, err)
	w.Append(Record{RequestID: "a"})
	require.NoError(t, w.Close())

	w2, err := NewWriter(path)
	require.NoError(t, err)
	w2.Append(Record{RequestID: "b"})
	require.NoError(t, w2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
}

func TestNopWriter(t *testing.T) {
	w := NewNopWriter()
	w.Append(Record{RequestID: "ignored"})
	assert.NoError(t, w.Close())
}

func TestNilWriterIsSafe(t *testing.T) {
	var w *Writer
	w.Append(Record{RequestID: "ignored"})
	assert.NoError(t, w.Close())
}
