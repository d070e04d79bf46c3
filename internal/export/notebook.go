// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jeranaias/scriptkit/internal/storage"
	"github.com/jeranaias/scriptkit/internal/util"
)

// =============================================================================
// NOTEBOOK LOCATION
// =============================================================================

const (
	// EnvNotebook names the notebook file or folder.
	EnvNotebook = "LEARNING_SNIPPET_NOTEBOOK"

	// EnvNotebookPath is the older spelling, consulted second.
	EnvNotebookPath = "LEARNING_SNIPPET_NOTEBOOK_PATH"

	// NotebookFileName is used when the configured path is a folder.
	NotebookFileName = "learning-snippets.md"
)

var (
	// ErrNotebookDir is returned when the notebook folder cannot be created.
	ErrNotebookDir = errors.New("could not prepare the note directory")

	// ErrNotebookWrite is returned when the entry cannot be appended.
	ErrNotebookWrite = errors.New("could not write to the learning notebook file")
)

// NotebookPath picks the configured notebook path: flagValue, then the
// environment. Empty means the notebook is disabled.
func NotebookPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvNotebook); v != "" {
		return v
	}
	return os.Getenv(EnvNotebookPath)
}

// =============================================================================
// NOTEBOOK
// =============================================================================

// Notebook appends Markdown entries to a single file.
type Notebook struct {
	// Path is the configured file or folder, possibly relative to home
	Path string
}

// NewNotebook creates a notebook for path. An empty path disables it.
func NewNotebook(path string) *Notebook {
	return &Notebook{Path: path}
}

// Enabled reports whether a notebook path is configured.
func (n *Notebook) Enabled() bool {
	return n != nil && n.Path != ""
}

// Target resolves the directory to create and the file to append to.
func (n *Notebook) Target() (dir, file string, err error) {
	resolved, err := util.HomePath(n.Path)
	if err != nil {
		return "", "", err
	}
	if hasExtension(resolved) {
		return filepath.Dir(resolved), resolved, nil
	}
	return resolved, filepath.Join(resolved, NotebookFileName), nil
}

// Append writes the entry for snippet. It is a no-op when the notebook is
// disabled.
func (n *Notebook) Append(snippet *storage.Snippet) error {
	if !n.Enabled() {
		return nil
	}

	dir, file, err := n.Target()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotebookDir, err)
	}
	if err := util.EnsureDir(dir, util.DefaultDirPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrNotebookDir, err)
	}

	if err := util.AppendFile(file, []byte(Entry(snippet)), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrNotebookWrite, err)
	}
	return nil
}

// Entry renders the Markdown block appended for snippet. It ends with a
// newline after the closing fence.
func Entry(snippet *storage.Snippet) string {
	language := snippet.Language
	if language == "" {
		language = "plain text"
	}
	tags := "none"
	if len(snippet.Tags) > 0 {
		tags = strings.Join(snippet.Tags, ", ")
	}
	notes := "none"
	if snippet.Notes != "" {
		notes = snippet.Notes
	}

	lines := []string{
		fmt.Sprintf("## %s (%s)", snippet.Title, language),
		"- Saved: " + snippet.CreatedAt,
		"- Tags: " + tags,
		"- Notes: " + notes,
		"",
		"```" + snippet.Language + "\n" + strings.TrimRightFunc(snippet.Content, unicode.IsSpace) + "\n```",
		"",
	}
	return strings.Join(lines, "\n")
}

// hasExtension treats dotfiles such as ".notes" as extensionless.
func hasExtension(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return ext != "" && ext != base
}
