package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	expected := []string{"add", "edit", "rm", "list", "export", "import", "subscribe"}
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "missing subcommand %q", name)
	}
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	tmp := t.TempDir()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"list", "2024-03-15",
		"--format", "xml",
		"--db", filepath.Join(tmp, "test.db"),
		"--config", filepath.Join(tmp, "none.yaml"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}

func TestOpenStore_CreatesParentDirectory(t *testing.T) {
	tmp := t.TempDir()
	opts := &RootOptions{
		Database: filepath.Join(tmp, "nested", "dir", "test.db"),
	}

	st, closeStore, err := openStore(t.Context(), opts)
	require.NoError(t, err)
	defer closeStore()

	assert.NotNil(t, st)
}

func TestOpenStore_PathPrecedence(t *testing.T) {
	tmp := t.TempDir()

	// Flag wins over config.
	opts := &RootOptions{
		Database: filepath.Join(tmp, "flag.db"),
		Config:   Config{Database: filepath.Join(tmp, "config.db")},
	}
	_, closeStore, err := openStore(t.Context(), opts)
	require.NoError(t, err)
	closeStore()

	entries, err := filepath.Glob(filepath.Join(tmp, "*.db"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0], "flag.db"))
}
