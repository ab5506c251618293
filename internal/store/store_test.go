package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	type rec struct {
		Name  string `json:"name"`
		Price int    `json:"price"`
	}

	require.NoError(t, s.WriteJSON("deals.json", []rec{{Name: "LAX-LAS", Price: 89}}))

	data, err := os.ReadFile(filepath.Join(dir, "deals.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"LAX-LAS\",\n    \"price\": 89\n  }\n]", string(data))
}

func TestWriteJSONOverwrites(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.WriteJSON("doc.json", map[string]int{"a": 1, "b": 2}))
	require.NoError(t, s.WriteJSON("doc.json", map[string]int{"a": 3}))

	data, err := os.ReadFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 3}`, string(data))
}

func TestNewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.DirExists(t, dir)
}
