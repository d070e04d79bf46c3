// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/scriptkit/internal/config"
)

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver resolves pricing rules one at a time.
type Resolver struct {
	fetcher Fetcher
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewResolver creates a resolver that scrapes through fetcher with no pacing
// between requests.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithMinInterval spaces consecutive page fetches at least d apart.
// Zero or negative disables pacing.
func (r *Resolver) WithMinInterval(d time.Duration) *Resolver {
	if d <= 0 {
		r.limiter = rate.NewLimiter(rate.Inf, 1)
	} else {
		r.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
	return r
}

// Resolve returns the effective price for rule. It never fails.
func (r *Resolver) Resolve(ctx context.Context, rule Rule) Resolved {
	switch p := rule.(type) {
	case nil:
		return Unknown
	case ManualRule:
		return Resolved{
			Price:  firstSet(p.Price),
			Unit:   unitOrDefault(p.Unit),
			Source: noteOr(p.Note, "manual"),
		}
	case WebRule:
		if res, ok := r.scrape(ctx, p); ok {
			return res
		}
		return fallback(p.FallbackPrice, p.Price, p.Unit, p.Note)
	case FallbackRule:
		return fallback(p.FallbackPrice, p.Price, p.Unit, p.Note)
	default:
		r.logger.Warn("unsupported pricing rule", "type", fmt.Sprintf("%T", rule))
		return Unknown
	}
}

// ResolveAll resolves every provider in sorted key order.
func (r *Resolver) ResolveAll(ctx context.Context, providers map[string]config.Provider) map[string]Resolved {
	cfg := config.Config{Providers: providers}
	out := make(map[string]Resolved, len(providers))
	for _, key := range cfg.ProviderKeys() {
		res := r.Resolve(ctx, FromConfig(providers[key].Pricing))
		r.logger.Debug("resolved pricing", "provider", key, "price", res.Price, "unit", res.Unit, "source", res.Source)
		out[key] = res
	}
	return out
}

func (r *Resolver) scrape(ctx context.Context, p WebRule) (Resolved, bool) {
	log := r.logger.With("url", p.URL)

	if err := r.limiter.Wait(ctx); err != nil {
		log.Debug("pricing fetch skipped", "error", err)
		return Resolved{}, false
	}

	body, err := r.fetcher.Fetch(ctx, p.URL)
	if err != nil {
		log.Debug("pricing fetch failed", "error", err)
		return Resolved{}, false
	}

	if p.Selector != "" {
		body, err = SelectText(body, p.Selector)
		if err != nil {
			log.Debug("pricing selector failed", "error", err)
			return Resolved{}, false
		}
	}

	group, err := ExtractGroup(body, p.Regex)
	if err != nil {
		log.Debug("pricing extraction failed", "error", err)
		return Resolved{}, false
	}

	price, ok := parseNumber(group)
	if !ok || price == 0 {
		// A zero or unreadable capture still counts as a scrape; only the
		// number falls back.
		price = firstNonZero(p.FallbackPrice, p.Price)
	}
	return Resolved{Price: price, Unit: unitOrDefault(p.Unit), Source: p.URL}, true
}

func fallback(fallbackPrice, price *float64, unit, note string) Resolved {
	return Resolved{
		Price:  firstSet(fallbackPrice, price),
		Unit:   unitOrDefault(unit),
		Source: noteOr(note, "manual fallback"),
	}
}
