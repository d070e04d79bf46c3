// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small file and path helpers shared by the scriptkit
// commands.
//
// # Key Functions
//
//   - AtomicWriteFile: Crash-safe whole-file writes (temp file, fsync, rename)
//   - AppendFile: Append-only writes used for Markdown notebooks
//   - HomePath: Resolve a path relative to the user's home directory
//   - EnsureDir: Create a directory tree and report whether it is usable
//
// # Usage
//
//	// Rewrite the snippet library without risking a torn file
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// "notes/learning.md" becomes "$HOME/notes/learning.md"
//	abs, err := util.HomePath("notes/learning.md")
package util
