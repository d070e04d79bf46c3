// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout stops a pathological pattern from hanging the report.
const matchTimeout = 2 * time.Second

// CompilePattern compiles a price pattern case-insensitively with
// ECMAScript semantics, matching how pricing regexes are usually written.
func CompilePattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("invalid price pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

// ExtractGroup returns the first capture group of the first match of pattern
// in body. An empty group counts as no match.
func ExtractGroup(body, pattern string) (string, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return "", err
	}

	m, err := re.FindStringMatch(body)
	if err != nil {
		return "", fmt.Errorf("price pattern failed: %w", err)
	}
	if m == nil {
		return "", ErrNoMatch
	}
	g := m.GroupByNumber(1)
	if g == nil || g.String() == "" {
		return "", ErrNoMatch
	}
	return g.String(), nil
}

// parseNumber converts a captured group to a number. Surrounding whitespace
// is ignored; anything else that is not a plain decimal fails.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
