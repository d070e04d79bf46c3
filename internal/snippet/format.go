// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"strings"
	"unicode"

	"github.com/jeranaias/scriptkit/internal/storage"
)

// Usage describes the actions and notebook environment variable.
const Usage = `Learning Snippet Manager
- save: Save clipboard content as a snippet. Format argument2 as 'Title | tags | language | notes'.
- search: Find snippets by natural language query (titles, notes, tags, content).
- insert: Insert best match and copy to clipboard. argument2 is the title/query, argument3 is 'var=value' pairs for templates.
Environment: set LEARNING_SNIPPET_NOTEBOOK to sync entries into a Markdown notebook (file or folder path).`

// FormatSnippet renders a snippet as a Markdown block.
func FormatSnippet(sn storage.Snippet) string {
	language := sn.Language
	if language == "" {
		language = "plain text"
	}
	notes := sn.Notes
	if notes == "" {
		notes = "(none)"
	}
	return strings.Join([]string{
		"# " + sn.Title,
		"- Tags: " + joinOr(sn.Tags, "none"),
		"- Language: " + language,
		"- Notes: " + notes,
		"- Template variables: " + joinOr(sn.TemplateVariables, "(none)"),
		"",
		codeBlock(sn.Language, sn.Content),
	}, "\n")
}

// FormatInsert renders the confirmation printed after an insert.
func FormatInsert(sn storage.Snippet, content string) string {
	return strings.Join([]string{
		"Inserted snippet: " + sn.Title,
		"Tags: " + joinOr(sn.Tags, "none"),
		"Template variables: " + joinOr(sn.TemplateVariables, "(none)"),
		"",
		"Preview:",
		codeBlock(sn.Language, content),
	}, "\n")
}

func codeBlock(language, content string) string {
	return "```" + language + "\n" + strings.TrimRightFunc(content, unicode.IsSpace) + "\n```"
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
