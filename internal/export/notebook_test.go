// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/scriptkit/internal/storage"
)

func sampleSnippet() *storage.Snippet {
	return &storage.Snippet{
		ID:        "0190c0de-0000-7000-8000-000000000000",
		Title:     "Curl JSON",
		Tags:      []string{"http", "curl"},
		Language:  "bash",
		Notes:     "post with a JSON body",
		Content:   "curl -d '{}' {{url}}\n\n",
		CreatedAt: "2025-04-10T12:00:05.042Z",
	}
}

func TestEntry(t *testing.T) {
	want := "## Curl JSON (bash)\n" +
		"- Saved: 2025-04-10T12:00:05.042Z\n" +
		"- Tags: http, curl\n" +
		"- Notes: post with a JSON body\n" +
		"\n" +
		"```bash\n" +
		"curl -d '{}' {{url}}\n" +
		"```\n"
	assert.Equal(t, want, Entry(sampleSnippet()))
}

func TestEntry_Defaults(t *testing.T) {
	sn := &storage.Snippet{
		Title:     "Bare",
		Content:   "text",
		CreatedAt: "2025-01-02T03:04:05.000Z",
	}
	want := "## Bare (plain text)\n" +
		"- Saved: 2025-01-02T03:04:05.000Z\n" +
		"- Tags: none\n" +
		"- Notes: none\n" +
		"\n" +
		"```\n" +
		"text\n" +
		"```\n"
	assert.Equal(t, want, Entry(sn))
}

func TestNotebook_Disabled(t *testing.T) {
	nb := NewNotebook("")
	assert.False(t, nb.Enabled())
	assert.NoError(t, nb.Append(sampleSnippet()))
}

func TestNotebook_AppendFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes", "learning.md")
	nb := NewNotebook(file)

	require.NoError(t, nb.Append(sampleSnippet()))
	require.NoError(t, nb.Append(sampleSnippet()))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	entry := Entry(sampleSnippet())
	assert.Equal(t, entry+entry, string(data))
}

func TestNotebook_FolderTarget(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Notebook")
	nb := NewNotebook(dir)

	gotDir, gotFile, err := nb.Target()
	require.NoError(t, err)
	assert.Equal(t, dir, gotDir)
	assert.Equal(t, filepath.Join(dir, NotebookFileName), gotFile)

	require.NoError(t, nb.Append(sampleSnippet()))
	assert.FileExists(t, gotFile)
}

func TestNotebook_RelativeToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	_, file, err := NewNotebook("Documents/learning.md").Target()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents", "learning.md"), file)
}

func TestNotebook_Errors(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewNotebook(filepath.Join(blocker, "sub", "notes.md")).Append(sampleSnippet())
	assert.ErrorIs(t, err, ErrNotebookDir)

	folderAsFile := filepath.Join(base, "taken.md")
	require.NoError(t, os.Mkdir(folderAsFile, 0755))
	err = NewNotebook(folderAsFile).Append(sampleSnippet())
	assert.ErrorIs(t, err, ErrNotebookWrite)
}

func TestNotebookPath(t *testing.T) {
	t.Setenv(EnvNotebook, "")
	t.Setenv(EnvNotebookPath, "")
	assert.Equal(t, "", NotebookPath(""))

	t.Setenv(EnvNotebookPath, "old.md")
	assert.Equal(t, "old.md", NotebookPath(""))

	t.Setenv(EnvNotebook, "new.md")
	assert.Equal(t, "new.md", NotebookPath(""))
	assert.Equal(t, "flag.md", NotebookPath("flag.md"))
}

func TestHasExtension(t *testing.T) {
	assert.True(t, hasExtension("/a/b/notes.md"))
	assert.False(t, hasExtension("/a/b/Notebook"))
	assert.False(t, hasExtension("/a/b/.notes"))
}
