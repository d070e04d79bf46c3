// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package snippet implements the learning-snippets actions: save clipboard
// content with metadata, search the library, and insert the best match back
// onto the clipboard with template variables filled in.
//
// # Key Types
//
//   - Manager: dispatches save, search and insert
//   - Metadata: the parsed "Title | tags | language | notes" argument
//
// # Templates
//
// Snippet content may contain {{ name }} placeholders. Insert replaces the
// ones named in "key=value, key2=value2" and leaves the rest untouched.
//
// # Usage
//
//	m := &snippet.Manager{
//		Store:     storage.NewSnippetStore(dir),
//		Clipboard: clipboard.System{},
//		Notebook:  export.NewNotebook(export.NotebookPath("")),
//		Stdout:    os.Stdout,
//		Stderr:    os.Stderr,
//	}
//	err := m.Run("insert", "curl json", "url=https://example.com")
package snippet
