// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/scriptkit/internal/storage"
)

// MaxResults caps the number of matches returned by FindBestMatches.
const MaxResults = 5

const (
	scorePhrase = 3
	scoreToken  = 1
	scoreTitle  = 1
	scoreTag    = 2
)

// normalize folds text to NFC lower case so composed and decomposed accents
// compare equal.
func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// FindBestMatches ranks snippets against query and returns at most
// MaxResults. An empty query returns the first MaxResults in store order.
// Ties are broken by title.
func FindBestMatches(snippets []storage.Snippet, query string) []storage.Snippet {
	if query == "" {
		return head(snippets, MaxResults)
	}

	q := normalize(query)
	tokens := strings.Fields(q)

	type scored struct {
		snippet storage.Snippet
		score   int
	}
	var results []scored
	for _, sn := range snippets {
		s := score(sn, q, tokens)
		if s > 0 || len(tokens) == 0 {
			results = append(results, scored{snippet: sn, score: s})
		}
	}

	col := collate.New(language.Und)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return col.CompareString(results[i].snippet.Title, results[j].snippet.Title) < 0
	})

	out := make([]storage.Snippet, 0, min(len(results), MaxResults))
	for _, r := range head(results, MaxResults) {
		out = append(out, r.snippet)
	}
	return out
}

func score(sn storage.Snippet, query string, tokens []string) int {
	haystack := normalize(strings.Join([]string{
		sn.Title,
		sn.Notes,
		sn.Language,
		strings.Join(sn.Tags, " "),
		sn.Content,
	}, " "))
	title := normalize(sn.Title)

	total := 0
	if strings.Contains(haystack, query) {
		total += scorePhrase
	}
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			total += scoreToken
		}
		if strings.Contains(title, tok) {
			total += scoreTitle
		}
		for _, tag := range sn.Tags {
			if normalize(tag) == tok {
				total += scoreTag
				break
			}
		}
	}
	return total
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
