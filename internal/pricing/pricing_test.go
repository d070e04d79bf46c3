// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/scriptkit/internal/config"
)

// stubFetcher serves canned bodies keyed by URL.
type stubFetcher struct {
	bodies map[string]string
	err    error
	calls  []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	s.calls = append(s.calls, url)
	if s.err != nil {
		return "", s.err
	}
	body, ok := s.bodies[url]
	if !ok {
		return "", &StatusError{URL: url, Code: 404}
	}
	return body, nil
}

const pricingURL = "https://example.com/pricing"

func webRule() WebRule {
	return WebRule{
		URL:           pricingURL,
		Regex:         `\$([0-9.]+) per document`,
		FallbackPrice: config.Float(0.012),
		Unit:          "call",
		Note:          "scrape fallback",
	}
}

// =============================================================================
// RULE CONVERSION
// =============================================================================

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		pricing *config.Pricing
		want    Rule
	}{
		{"nil", nil, nil},
		{"manual", &config.Pricing{Type: "manual", Price: config.Float(1)}, ManualRule{Price: config.Float(1)}},
		{"web", &config.Pricing{Type: "web", URL: "u", Regex: "r", Unit: "call"}, WebRule{URL: "u", Regex: "r", Unit: "call"}},
		{"web without regex", &config.Pricing{Type: "web", URL: "u"}, FallbackRule{}},
		{"web without url", &config.Pricing{Type: "web", Regex: "r"}, FallbackRule{}},
		{"unknown type", &config.Pricing{Type: "tiered", Note: "n"}, FallbackRule{Note: "n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromConfig(tt.pricing))
		})
	}
}

// =============================================================================
// RESOLUTION
// =============================================================================

func TestResolve_NilRule(t *testing.T) {
	r := NewResolver(&stubFetcher{})
	assert.Equal(t, Resolved{Price: 0, Unit: "call", Source: "unknown"}, r.Resolve(context.Background(), nil))
}

func TestResolve_Manual(t *testing.T) {
	r := NewResolver(&stubFetcher{})
	ctx := context.Background()

	got := r.Resolve(ctx, ManualRule{Price: config.Float(0.008), Unit: "call", Note: "Manual pricing per API call"})
	assert.Equal(t, Resolved{Price: 0.008, Unit: "call", Source: "Manual pricing per API call"}, got)

	got = r.Resolve(ctx, ManualRule{Unit: "1k_tokens"})
	assert.Equal(t, Resolved{Price: 0, Unit: "1k_tokens", Source: "manual"}, got)

	got = r.Resolve(ctx, ManualRule{Price: config.Float(2)})
	assert.Equal(t, "call", got.Unit, "missing unit bills per call")
}

func TestResolve_WebScrape(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		pricingURL: "<p>Layout parser: $0.015 PER DOCUMENT processed</p>",
	}}
	r := NewResolver(fetcher)

	got := r.Resolve(context.Background(), webRule())
	assert.Equal(t, Resolved{Price: 0.015, Unit: "call", Source: pricingURL}, got)
	assert.Equal(t, []string{pricingURL}, fetcher.calls)
}

func TestResolve_WebFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
		mutate  func(*WebRule)
		want    Resolved
	}{
		{
			name:    "fetch error uses fallback price",
			fetcher: &stubFetcher{err: errors.New("connection refused")},
			want:    Resolved{Price: 0.012, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "http status error",
			fetcher: &stubFetcher{},
			want:    Resolved{Price: 0.012, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "regex miss",
			fetcher: &stubFetcher{bodies: map[string]string{pricingURL: "pricing on request"}},
			want:    Resolved{Price: 0.012, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "invalid regex",
			fetcher: &stubFetcher{bodies: map[string]string{pricingURL: "$1 per document"}},
			mutate:  func(w *WebRule) { w.Regex = `([0-9` },
			want:    Resolved{Price: 0.012, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "no note",
			fetcher: &stubFetcher{err: errors.New("boom")},
			mutate:  func(w *WebRule) { w.Note = "" },
			want:    Resolved{Price: 0.012, Unit: "call", Source: "manual fallback"},
		},
		{
			name:    "price when no fallback price",
			fetcher: &stubFetcher{err: errors.New("boom")},
			mutate: func(w *WebRule) {
				w.FallbackPrice = nil
				w.Price = config.Float(0.5)
			},
			want: Resolved{Price: 0.5, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "explicit zero fallback is kept",
			fetcher: &stubFetcher{err: errors.New("boom")},
			mutate: func(w *WebRule) {
				w.FallbackPrice = config.Float(0)
				w.Price = config.Float(0.5)
			},
			want: Resolved{Price: 0, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "nothing configured",
			fetcher: &stubFetcher{err: errors.New("boom")},
			mutate:  func(w *WebRule) { w.FallbackPrice = nil },
			want:    Resolved{Price: 0, Unit: "call", Source: "scrape fallback"},
		},
		{
			name:    "zero capture keeps url source",
			fetcher: &stubFetcher{bodies: map[string]string{pricingURL: "$0 per document"}},
			want:    Resolved{Price: 0.012, Unit: "call", Source: pricingURL},
		},
		{
			name:    "unreadable capture keeps url source",
			fetcher: &stubFetcher{bodies: map[string]string{pricingURL: "$1.2.3 per document"}},
			want:    Resolved{Price: 0.012, Unit: "call", Source: pricingURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := webRule()
			if tt.mutate != nil {
				tt.mutate(&rule)
			}
			got := NewResolver(tt.fetcher).Resolve(context.Background(), rule)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_FallbackRule(t *testing.T) {
	r := NewResolver(&stubFetcher{})
	got := r.Resolve(context.Background(), FallbackRule{FallbackPrice: config.Float(0.3), Unit: "1k_tokens"})
	assert.Equal(t, Resolved{Price: 0.3, Unit: "1k_tokens", Source: "manual fallback"}, got)
}

func TestResolve_Selector(t *testing.T) {
	page := `<html><body>
<div class="legacy">$9.00 per document</div>
<div class="price">Now $0.02 per document</div>
</body></html>`
	fetcher := &stubFetcher{bodies: map[string]string{pricingURL: page}}

	rule := webRule()
	rule.Selector = ".price"
	got := NewResolver(fetcher).Resolve(context.Background(), rule)
	assert.Equal(t, 0.02, got.Price)
	assert.Equal(t, pricingURL, got.Source)

	rule.Selector = "#missing"
	got = NewResolver(fetcher).Resolve(context.Background(), rule)
	assert.Equal(t, Resolved{Price: 0.012, Unit: "call", Source: "scrape fallback"}, got)
}

func TestResolve_CancelledContextSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{pricingURL: "$1 per document"}}
	r := NewResolver(fetcher).WithMinInterval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.Resolve(ctx, webRule())
	assert.Equal(t, "scrape fallback", got.Source)
	assert.Empty(t, fetcher.calls)
}

func TestResolveAll(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{pricingURL: "$0.02 per document"}}
	providers := map[string]config.Provider{
		"web": {Pricing: &config.Pricing{
			Type: "web", URL: pricingURL, Regex: `\$([0-9.]+) per document`, Unit: "call",
		}},
		"manual": {Pricing: &config.Pricing{Type: "manual", Price: config.Float(0.5), Unit: "1k_tokens"}},
		"none":   {},
	}

	got := NewResolver(fetcher).ResolveAll(context.Background(), providers)
	require.Len(t, got, 3)
	assert.Equal(t, Resolved{Price: 0.02, Unit: "call", Source: pricingURL}, got["web"])
	assert.Equal(t, Resolved{Price: 0.5, Unit: "1k_tokens", Source: "manual"}, got["manual"])
	assert.Equal(t, Unknown, got["none"])
}

// =============================================================================
// EXTRACTION
// =============================================================================

func TestExtractGroup(t *testing.T) {
	group, err := ExtractGroup("Price: USD 1.25 / call", `usd\s+([0-9.]+)`)
	require.NoError(t, err)
	assert.Equal(t, "1.25", group)

	_, err = ExtractGroup("nothing here", `usd\s+([0-9.]+)`)
	assert.True(t, errors.Is(err, ErrNoMatch))

	_, err = ExtractGroup("usd ", `usd\s*([0-9.]*)`)
	assert.True(t, errors.Is(err, ErrNoMatch), "empty capture is a miss")
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"0.015", 0.015, true},
		{" 2 ", 2, true},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
