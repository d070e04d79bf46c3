// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export appends saved snippets to a Markdown learning notebook.
//
// The notebook location comes from --notebook, $LEARNING_SNIPPET_NOTEBOOK or
// $LEARNING_SNIPPET_NOTEBOOK_PATH. A path without a file extension names a
// folder, and entries go to learning-snippets.md inside it. Relative paths
// are taken from the home directory.
//
// # Usage
//
//	nb := export.NewNotebook(export.NotebookPath(flagValue))
//	if nb.Enabled() {
//		err := nb.Append(&snippet)
//	}
package export
