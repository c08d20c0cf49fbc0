package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(buf, "test", "debug", logger.FormatJSON)
}

func logLevels(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var levels []string
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		levels = append(levels, entry["level"].(string))
	}
	return levels
}

// ── FileLoader ────────────────────────────────────────────────────────────────

func TestFileLoader_ValidTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "key = \"value\"\n[section]\nfoo = 123\n")

	values, err := NewTOMLFileLoader(path, false, logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "value", "section": map[string]any{"foo": int64(123)}}, values.Map())
}

func TestFileLoader_ArrayOfTables(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[[servers]]\nname = \"a\"\n[[servers]]\nname = \"b\"\n")

	values, err := NewTOMLFileLoader(path, true, logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"name": "a"},
		map[string]any{"name": "b"},
	}, values.Map()["servers"])
}

// TestFileLoader_RequiredMissing verifies that a missing required file fails
// with ErrMissingRequiredSource naming the path.
func TestFileLoader_RequiredMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, err := NewTOMLFileLoader(path, true, logger.Nop()).Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredSource)
	assert.Contains(t, err.Error(), path)
}

// TestFileLoader_OptionalMissing verifies that a missing optional file
// yields an empty tree and a debug entry.
func TestFileLoader_OptionalMissing(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.toml")

	values, err := NewTOMLFileLoader(path, false, bufferLogger(&buf)).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
	assert.Equal(t, []string{"debug"}, logLevels(t, &buf))
}

// TestFileLoader_Malformed verifies that a malformed file yields an empty
// tree plus a warning, whether or not it is required.
func TestFileLoader_Malformed(t *testing.T) {
	for _, required := range []bool{false, true} {
		var buf bytes.Buffer
		path := writeFile(t, t.TempDir(), "invalid.toml", "key = \"value\" \n broken_line")

		values, err := NewTOMLFileLoader(path, required, bufferLogger(&buf)).Load()

		require.NoError(t, err)
		assert.Equal(t, 0, values.Len())
		assert.Equal(t, []string{"warn"}, logLevels(t, &buf))
	}
}

// TestFileLoader_Unreadable verifies that a path that exists but cannot be
// read as a file is treated as malformed.
func TestFileLoader_Unreadable(t *testing.T) {
	dir := t.TempDir()

	values, err := NewTOMLFileLoader(dir, true, logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
}

func TestNewFileLoader_FormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "config.yaml", "model:\n  id: from-yaml\n  top_p: 0.5\n")
	jsonPath := writeFile(t, dir, "config.json", `{"model": {"id": "from-json"}}`)

	yamlValues, err := NewFileLoader(yamlPath, true, logger.Nop()).Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"model": map[string]any{"id": "from-yaml", "top_p": 0.5}}, yamlValues.Map())

	jsonValues, err := NewFileLoader(jsonPath, true, logger.Nop()).Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"model": map[string]any{"id": "from-json"}}, jsonValues.Map())
}

func TestFileLoader_EmptyYAMLDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yml", "")

	values, err := NewFileLoader(path, true, logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
}

func TestFileLoader_Name(t *testing.T) {
	l := NewTOMLFileLoader("config.default.toml", true, nil)
	assert.Equal(t, "file(config.default.toml, required=true)", l.Name())
	assert.Equal(t, "config.default.toml", l.Path())
	assert.True(t, l.Required())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: ".toml", want: FormatTOML},
		{in: "YML", want: FormatYAML},
		{in: "yaml", want: FormatYAML},
		{in: ".json", want: FormatJSON},
		{in: ".ini", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
