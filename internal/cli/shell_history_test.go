package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryFile_MissingFile(t *testing.T) {
	h := historyFile{path: filepath.Join(t.TempDir(), "nonexistent", "shell_history")}
	assert.Nil(t, h.Load())
}

func TestHistoryFile_Disabled(t *testing.T) {
	var h historyFile
	h.Append("doc list")
	assert.Nil(t, h.Load())
}

func TestHistoryFile_ReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell_history")
	require.NoError(t, os.WriteFile(path, []byte("doc list\n\nsection list\npreview\n"), 0o644))

	h := historyFile{path: path}
	assert.Equal(t, []string{"doc list", "section list", "preview"}, h.Load())
}

func TestHistoryFile_KeepsMostRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell_history")

	var b strings.Builder
	for i := 0; i < maxHistoryLines+100; i++ {
		b.WriteString("old\n")
	}
	b.WriteString("newest\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	lines := historyFile{path: path}.Load()
	assert.Len(t, lines, maxHistoryLines)
	assert.Equal(t, "newest", lines[len(lines)-1])
}

func TestHistoryFile_AppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vitae", "shell_history")
	h := historyFile{path: path}

	h.Append("doc list")
	h.Append("  preview  ")
	h.Append("   ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "doc list\npreview\n", string(data))
}
