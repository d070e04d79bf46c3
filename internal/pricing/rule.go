// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"github.com/jeranaias/scriptkit/internal/config"
)

// =============================================================================
// RULES
// =============================================================================

// Rule is a pricing rule. The concrete types are ManualRule, WebRule and
// FallbackRule; Resolve switches over them exhaustively.
type Rule interface {
	rule()
}

// ManualRule is a fixed price.
type ManualRule struct {
	Price *float64
	Unit  string
	Note  string
}

// WebRule scrapes the price from URL.
type WebRule struct {
	URL           string
	Regex         string
	Selector      string
	Price         *float64
	FallbackPrice *float64
	Unit          string
	Note          string
}

// FallbackRule covers pricing entries that are neither a complete manual nor
// a complete web rule. They always resolve to the fallback price.
type FallbackRule struct {
	Price         *float64
	FallbackPrice *float64
	Unit          string
	Note          string
}

func (ManualRule) rule()   {}
func (WebRule) rule()      {}
func (FallbackRule) rule() {}

// FromConfig converts the wire form into a Rule. A nil pricing yields a nil
// Rule, which resolves to the "unknown" zero price.
func FromConfig(p *config.Pricing) Rule {
	if p == nil {
		return nil
	}
	switch {
	case p.Type == config.PricingManual:
		return ManualRule{Price: p.Price, Unit: p.Unit, Note: p.Note}
	case p.Type == config.PricingWeb && p.URL != "" && p.Regex != "":
		return WebRule{
			URL:           p.URL,
			Regex:         p.Regex,
			Selector:      p.Selector,
			Price:         p.Price,
			FallbackPrice: p.FallbackPrice,
			Unit:          p.Unit,
			Note:          p.Note,
		}
	default:
		return FallbackRule{Price: p.Price, FallbackPrice: p.FallbackPrice, Unit: p.Unit, Note: p.Note}
	}
}

// =============================================================================
// RESOLVED PRICE
// =============================================================================

// Resolved is the effective price of a provider for this run.
type Resolved struct {
	Price  float64 `json:"price"`
	Unit   string  `json:"unit"`
	Source string  `json:"source"`
}

// Unknown is the price of a provider without any pricing rule.
var Unknown = Resolved{Price: 0, Unit: config.UnitCall, Source: "unknown"}

func unitOrDefault(unit string) string {
	if unit == "" {
		return config.UnitCall
	}
	return unit
}

func noteOr(note, def string) string {
	if note == "" {
		return def
	}
	return note
}

// firstSet returns the first non-nil value, or 0.
func firstSet(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// firstNonZero returns the first value that is set and non-zero, or 0.
func firstNonZero(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil && *v != 0 {
			return *v
		}
	}
	return 0
}
