// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/scriptkit/internal/util"
)

// =============================================================================
// SNIPPET TYPE
// =============================================================================

// TimestampLayout formats createdAt and updatedAt: UTC ISO 8601 with
// milliseconds, e.g. 2025-04-10T12:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Snippet is one saved entry. Field names match the on-disk JSON written by
// earlier versions, whose millisecond-string ids still load. Timestamps are
// kept as the stored text so hand-edited dates survive a load and save.
type Snippet struct {
	// Identity
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`

	// Metadata
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Language string   `json:"language"`
	Notes    string   `json:"notes"`

	// Body
	Content           string   `json:"content"`
	TemplateVariables []string `json:"templateVariables"`
}

// NewSnippet stamps a new snippet with a time-ordered id and now formatted
// with TimestampLayout.
func NewSnippet(now time.Time) Snippet {
	stamp := now.UTC().Format(TimestampLayout)
	return Snippet{
		ID:                newID(),
		CreatedAt:         stamp,
		UpdatedAt:         stamp,
		Tags:              []string{},
		TemplateVariables: []string{},
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// normalize replaces nil slices so they serialize as [] rather than null.
func (s *Snippet) normalize() {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.TemplateVariables == nil {
		s.TemplateVariables = []string{}
	}
}

// =============================================================================
// STORAGE LOCATION
// =============================================================================

const (
	// FileName is the snippets file inside the storage directory.
	FileName = "snippets.json"

	// EnvDir overrides the primary storage directory.
	EnvDir = "LEARNING_SNIPPETS_DIR"

	primaryDirName  = "LearningSnippets"
	fallbackDirName = ".learning-snippets"
)

// DefaultDirs lists storage directory candidates in priority order. flagDir
// (when set) or $LEARNING_SNIPPETS_DIR replaces the platform config location;
// the home fallback is always last.
func DefaultDirs(flagDir string) []string {
	var dirs []string

	primary := flagDir
	if primary == "" {
		primary = os.Getenv(EnvDir)
	}
	if primary == "" {
		if cfgDir, err := os.UserConfigDir(); err == nil {
			primary = filepath.Join(cfgDir, primaryDirName)
		}
	}
	if primary != "" {
		dirs = append(dirs, primary)
	}

	if home, err := util.HomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, fallbackDirName))
	}
	return dirs
}

// Locate returns the first candidate directory that exists or can be
// created, or ErrStorageUnavailable when none can.
func Locate(candidates ...string) (string, error) {
	var errs []error
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if err := util.EnsureDir(dir, util.DefaultDirPerm); err != nil {
			errs = append(errs, err)
			continue
		}
		return dir, nil
	}
	if len(errs) == 0 {
		return "", ErrStorageUnavailable
	}
	return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, errors.Join(errs...))
}

// =============================================================================
// SNIPPET STORE
// =============================================================================

// SnippetStore reads and writes the snippets file.
type SnippetStore struct {
	// Path is the snippets.json location
	Path string
}

// NewSnippetStore creates a store for the snippets file inside dir.
func NewSnippetStore(dir string) *SnippetStore {
	return &SnippetStore{Path: filepath.Join(dir, FileName)}
}

// Load returns the stored snippets in file order. A missing file is an empty
// library. An unreadable or malformed file also yields an empty library,
// together with an error wrapping ErrUnreadableStore so the caller can warn.
func (s *SnippetStore) Load() ([]Snippet, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snippet{}, nil
		}
		return []Snippet{}, fmt.Errorf("%w: %w", ErrUnreadableStore, err)
	}

	var list []Snippet
	if err := json.Unmarshal(data, &list); err != nil {
		return []Snippet{}, fmt.Errorf("%w: %s: %w", ErrUnreadableStore, s.Path, err)
	}
	for i := range list {
		list[i].normalize()
	}
	if list == nil {
		list = []Snippet{}
	}
	return list, nil
}

// Save overwrites the snippets file with list as 2-space indented JSON.
func (s *SnippetStore) Save(list []Snippet) error {
	if list == nil {
		list = []Snippet{}
	}
	for i := range list {
		list[i].normalize()
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snippets: %w", err)
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to save snippets: %w", err)
	}
	return nil
}

// Prepend saves snippet in front of list and returns the new list.
func (s *SnippetStore) Prepend(list []Snippet, snippet Snippet) ([]Snippet, error) {
	updated := make([]Snippet, 0, len(list)+1)
	updated = append(updated, snippet)
	updated = append(updated, list...)
	if err := s.Save(updated); err != nil {
		return list, err
	}
	return updated, nil
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrStorageUnavailable is returned when no storage directory can be created.
	ErrStorageUnavailable = errors.New("unable to create a storage directory for snippets")

	// ErrUnreadableStore is returned when the snippets file exists but cannot be
	// read or parsed.
	ErrUnreadableStore = errors.New("could not read snippets file")
)
