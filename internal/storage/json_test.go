package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEngineRead(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantLen int
		wantErr bool
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: strPtr("")},
		{name: "whitespace only", content: strPtr("  \n")},
		{name: "null document", content: strPtr("null")},
		{name: "empty object", content: strPtr("{}")},
		{name: "one record", content: strPtr(`{"User.1": {"id": "1"}}`), wantLen: 1},
		{name: "truncated", content: strPtr(`{"User.1": {"id"`), wantErr: true},
		{name: "wrong shape", content: strPtr(`["User.1"]`), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			doc, err := NewJSONEngine(path).Read()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, doc)
			assert.Len(t, doc, tt.wantLen)
		})
	}
}

func TestJSONEngineKeepsNumbersExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	e := NewJSONEngine(path)

	require.NoError(t, e.Write(Document{
		"Place.1": {"price_by_night": 9007199254740993, "latitude": 0.1},
	}))

	doc, err := e.Read()
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), doc["Place.1"]["price_by_night"])
	assert.Equal(t, json.Number("0.1"), doc["Place.1"]["latitude"])
}

func TestJSONEngineWriteIsSingleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	e := NewJSONEngine(path)
	require.NoError(t, e.Write(Document{
		"User.1":  {"id": "1", "__class__": "User"},
		"State.2": {"id": "2", "__class__": "State"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2)
	assert.Equal(t, "User", raw["User.1"]["__class__"])
}

func TestWriteAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")

	require.NoError(t, writeAtomic(path, []byte(`{"a":1}`)))
	require.NoError(t, writeAtomic(path, []byte(`{"b":2}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.json", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(data))
}

func TestWriteAtomicMissingDir(t *testing.T) {
	err := writeAtomic(filepath.Join(t.TempDir(), "nope", "file.json"), []byte("{}"))
	assert.ErrorContains(t, err, "creating temp file")
}

func strPtr(s string) *string { return &s }
