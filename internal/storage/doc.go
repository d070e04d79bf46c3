// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides snippet persistence for learning-snippets.
//
// The whole library lives in a single snippets.json file holding an ordered
// array, most recent first. Every save rewrites the file atomically.
//
// # Key Types
//
//   - Snippet: a saved piece of clipboard content with its metadata
//   - SnippetStore: loads and saves the snippets file
//
// # Usage
//
// Pick a storage directory and open the store:
//
//	dir, err := storage.Locate(storage.DefaultDirs(flagDir)...)
//	store := storage.NewSnippetStore(dir)
//
// Load, then save with a new snippet in front:
//
//	list, err := store.Load()
//	list, err = store.Prepend(list, snippet)
//
// # Storage Location
//
// The first creatable directory wins: --dir, $LEARNING_SNIPPETS_DIR,
// <user config dir>/LearningSnippets, then ~/.learning-snippets.
package storage
