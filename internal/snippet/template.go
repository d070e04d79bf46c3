// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"regexp"
	"strings"
)

var (
	placeholderPattern = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)
	variableSeparator  = regexp.MustCompile(`[,;]\s*`)
)

// ExtractVariables returns the distinct placeholder names in content in the
// order they first appear.
func ExtractVariables(content string) []string {
	names := []string{}
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Apply substitutes placeholders whose name is in vars. Placeholders without
// a value are kept exactly as written.
func Apply(content string, vars map[string]string) string {
	matches := placeholderPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		name := content[m[2]:m[3]]
		value, ok := vars[name]
		if !ok {
			continue
		}
		sb.WriteString(content[last:m[0]])
		sb.WriteString(value)
		last = m[1]
	}
	sb.WriteString(content[last:])
	return sb.String()
}

// ParseVariables reads "key=value" pairs separated by commas or semicolons.
// Only the first "=" splits, so values may contain "=". Later keys win.
func ParseVariables(text string) map[string]string {
	vars := make(map[string]string)
	if text == "" {
		return vars
	}
	for _, chunk := range variableSeparator.Split(text, -1) {
		key, value, ok := strings.Cut(chunk, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = strings.TrimSpace(value)
	}
	return vars
}
