// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"strings"
)

// Metadata is the parsed save argument.
type Metadata struct {
	Title    string
	Tags     string
	Language string
	Notes    string
}

// ParseMetadata splits "Title | tags | language | notes". Parts are trimmed,
// missing parts are empty and anything after the fourth is ignored.
func ParseMetadata(input string) Metadata {
	parts := strings.Split(input, "|")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return Metadata{
		Title:    get(0),
		Tags:     get(1),
		Language: get(2),
		Notes:    get(3),
	}
}

// ParseTags splits on commas and hashes, trims, drops empties and keeps the
// first occurrence of each tag.
func ParseTags(text string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '#' })
	for _, f := range fields {
		tag := strings.TrimSpace(f)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
