// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jeranaias/scriptkit/internal/cli"
	"github.com/jeranaias/scriptkit/internal/clipboard"
	"github.com/jeranaias/scriptkit/internal/export"
	"github.com/jeranaias/scriptkit/internal/storage"
)

// Actions understood by Run. Anything else searches.
const (
	ActionSave   = "save"
	ActionSearch = "search"
	ActionInsert = "insert"
)

// CommandName is used in error messages.
const CommandName = "learning-snippets"

// User-facing messages.
const (
	msgMissingMetadata = "Provide metadata in argument2: 'Title | tags | language | notes'."
	msgClipboardRead   = "Could not read from the clipboard. Make sure a clipboard utility is available."
	msgClipboardWrite  = "Could not copy the snippet to the clipboard."
	msgUnreadableStore = "Could not read snippets file. A new library will be created."
	msgNotebookDir     = "Could not prepare the note directory."
	msgNotebookWrite   = "Could not write to the learning notebook file."
	msgEmptyLibrary    = "No snippets saved yet. Use the 'save' action first."
	msgNoMatches       = "No matches found for that query. Try different keywords or tags."
	msgNothingToInsert = "No snippets to insert. Save something first."
	msgNoInsertMatch   = "No snippets found for that description."
)

// =============================================================================
// MANAGER
// =============================================================================

// Manager runs snippet actions against a store and clipboard.
type Manager struct {
	Store     *storage.SnippetStore
	Clipboard clipboard.Clipboard

	// Notebook receives a Markdown copy of each saved snippet (optional)
	Notebook *export.Notebook

	// Render post-processes save and search output, e.g. cli.RenderMarkdown.
	// Nil prints plain text.
	Render func(string) string

	// Now supplies timestamps (default: time.Now)
	Now func() time.Time

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run dispatches action (case-insensitive) with its two arguments.
func (m *Manager) Run(action, input, extra string) error {
	if m.Logger == nil {
		m.Logger = cli.DiscardLogger()
	}
	if m.Now == nil {
		m.Now = time.Now
	}

	switch strings.ToLower(action) {
	case ActionSave:
		return m.Save(input, extra)
	case ActionInsert:
		return m.Insert(input, extra)
	default:
		return m.Search(input)
	}
}

// Save stores the clipboard contents as a new snippet described by input.
// Tags come from input, or from extra when input has none.
func (m *Manager) Save(input, extra string) error {
	if input == "" {
		fmt.Fprintln(m.Stderr, msgMissingMetadata)
		return cli.SilentExit(cli.ExitUsageError)
	}
	meta := ParseMetadata(input)

	content, err := m.Clipboard.Read()
	if err != nil {
		m.Logger.Debug("clipboard read failed", "error", err)
		fmt.Fprintln(m.Stderr, msgClipboardRead)
		return cli.SilentExit(cli.ExitGeneralError)
	}

	list := m.load()

	sn := storage.NewSnippet(m.Now())
	sn.Title = meta.Title
	if sn.Title == "" {
		sn.Title = fmt.Sprintf("Snippet %d", len(list)+1)
	}
	tagText := meta.Tags
	if tagText == "" {
		tagText = extra
	}
	sn.Tags = ParseTags(tagText)
	sn.Language = meta.Language
	sn.Notes = meta.Notes
	sn.Content = content
	sn.TemplateVariables = ExtractVariables(content)

	if _, err := m.Store.Prepend(list, sn); err != nil {
		return cli.NewCommandError(CommandName, ActionSave, "could not write the snippets file", err)
	}
	m.Logger.Debug("saved snippet", "id", sn.ID, "path", m.Store.Path)

	if err := m.Notebook.Append(&sn); err != nil {
		m.Logger.Debug("notebook append failed", "error", err)
		switch {
		case errors.Is(err, export.ErrNotebookDir):
			fmt.Fprintln(m.Stderr, msgNotebookDir)
		default:
			fmt.Fprintln(m.Stderr, msgNotebookWrite)
		}
	}

	m.print("Saved snippet:\n" + FormatSnippet(sn))
	return nil
}

// Search prints the best matches for query.
func (m *Manager) Search(query string) error {
	list := m.load()
	if len(list) == 0 {
		fmt.Fprintln(m.Stdout, msgEmptyLibrary)
		fmt.Fprintln(m.Stdout, Usage)
		return nil
	}

	matches := FindBestMatches(list, query)
	if len(matches) == 0 {
		fmt.Fprintln(m.Stdout, msgNoMatches)
		return nil
	}

	blocks := make([]string, len(matches))
	for i, sn := range matches {
		blocks[i] = FormatSnippet(sn)
	}
	m.print(strings.Join(blocks, "\n\n"))
	return nil
}

// Insert fills the best match for input (or extra) with the variables in
// extra, copies it to the clipboard and prints a preview.
func (m *Manager) Insert(input, extra string) error {
	list := m.load()
	if len(list) == 0 {
		fmt.Fprintln(m.Stdout, msgNothingToInsert)
		return nil
	}

	query := input
	if query == "" {
		query = extra
	}
	matches := FindBestMatches(list, query)
	if len(matches) == 0 {
		fmt.Fprintln(m.Stdout, msgNoInsertMatch)
		return nil
	}

	selected := matches[0]
	content := Apply(selected.Content, ParseVariables(extra))

	if err := m.Clipboard.Write(content); err != nil {
		m.Logger.Debug("clipboard write failed", "error", err)
		fmt.Fprintln(m.Stderr, msgClipboardWrite)
	}

	fmt.Fprintln(m.Stdout, FormatInsert(selected, content))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// load reads the library, warning on stderr when the file is unreadable.
func (m *Manager) load() []storage.Snippet {
	list, err := m.Store.Load()
	if err != nil {
		m.Logger.Debug("snippets file unreadable", "path", m.Store.Path, "error", err)
		fmt.Fprintln(m.Stderr, msgUnreadableStore)
	}
	return list
}

func (m *Manager) print(text string) {
	if m.Render == nil {
		fmt.Fprintln(m.Stdout, text)
		return
	}
	fmt.Fprint(m.Stdout, m.Render(text))
}
