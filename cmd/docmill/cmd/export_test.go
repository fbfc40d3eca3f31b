package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommandTxt(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "note.txt")
	output := filepath.Join(dir, "note.jsonl")
	require.NoError(t, os.WriteFile(input, []byte("Hello export. Symbol µ here."), 0o600))

	_, err := runCommand(t, []string{"export", input, output})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"text","content":"Hello export. Symbol µ here.","meta":{}}`, lines[0])
	assert.JSONEq(t, `{"type":"symbol","content":"µ","meta":{"unicode":"U+00B5","desc":"MICRO SIGN","position":21}}`, lines[1])
}

func TestExportCommandMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, []string{"export", filepath.Join(dir, "absent.txt"), filepath.Join(dir, "out.jsonl")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File not found")
}

func TestExportCommandArgCount(t *testing.T) {
	_, err := runCommand(t, []string{"export", "only-one.txt"})
	require.Error(t, err)
}
