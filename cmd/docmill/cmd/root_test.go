package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and captures its output.
// Flag values stick to the shared command between calls, so tests that set
// a mode-changing flag (--help, --text) run after the ones they would leak
// into.
func runCommand(t *testing.T, args []string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// decodeJSONOutput parses a single JSON document from command output.
func decodeJSONOutput(t *testing.T, output string) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &m), "output is not JSON: %s", output)
	return m
}

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "docmill", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommandSubcommands(t *testing.T) {
	subcommands := rootCmd.Commands()
	commandNames := make([]string, len(subcommands))
	for i, subcmd := range subcommands {
		commandNames[i] = subcmd.Name()
	}

	expectedCommands := []string{"extract", "analyze", "export", "version"}
	for _, expected := range expectedCommands {
		assert.Contains(t, commandNames, expected, "Expected subcommand '%s' not found", expected)
	}
}

func TestRootCommandInvalidFlag(t *testing.T) {
	output, err := runCommand(t, []string{"--invalid-flag"})
	require.Error(t, err)
	assert.Contains(t, output, "unknown flag")
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, []string{"version"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "docmill version "), "unexpected output: %s", output)
}

func TestRootCommandVersionFlag(t *testing.T) {
	output, err := runCommand(t, []string{"--version"})
	require.NoError(t, err)
	assert.Contains(t, output, "docmill version")
}

func TestGetConfig(t *testing.T) {
	cfg := GetConfig()
	require.NotNil(t, cfg)
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.ModelsDir)
}

func TestRootCommandHelp(t *testing.T) {
	output, err := runCommand(t, []string{"--help"})
	require.NoError(t, err)

	assert.Contains(t, output, "Text extraction from PDF, DOCX, DOC, TXT")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "Usage:")
}
