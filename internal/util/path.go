// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return home, nil
}

// HomePath resolves p against the home directory unless it is already
// absolute. A leading "~/" is treated the same as a relative path.
func HomePath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	p = strings.TrimPrefix(p, "~"+string(filepath.Separator))
	p = strings.TrimPrefix(p, "~/")
	if p == "~" {
		p = ""
	}
	return filepath.Join(home, p), nil
}

// EnsureDir creates dir (and parents) with perm. It returns an error when the
// directory cannot be created or the path exists but is not a directory.
func EnsureDir(dir string, perm os.FileMode) error {
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
