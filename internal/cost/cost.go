// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cost

import (
	"time"

	"github.com/jeranaias/scriptkit/internal/config"
	"github.com/jeranaias/scriptkit/internal/pricing"
)

// =============================================================================
// USAGE AND COST
// =============================================================================

// Usage is a call/token count pair.
type Usage struct {
	Calls  float64 `json:"calls"`
	Tokens float64 `json:"tokens"`
}

// UsageFrom reads a config usage block, treating absent fields as zero.
func UsageFrom(u config.Usage) Usage {
	return Usage{Calls: config.Value(u.Calls), Tokens: config.Value(u.Tokens)}
}

// UsageForUnit places amount in the field billed by unit. Anything that is
// not per call is recorded as tokens.
func UsageForUnit(unit string, amount float64) Usage {
	if unit == config.UnitCall {
		return Usage{Calls: amount}
	}
	return Usage{Tokens: amount}
}

// ComputeCost prices usage. Per-1k-token units bill tokens/1000, per-call
// units bill calls, and any other unit costs nothing.
func ComputeCost(u Usage, p pricing.Resolved) float64 {
	switch p.Unit {
	case config.UnitKTokens:
		return (u.Tokens / 1000) * p.Price
	case config.UnitCall:
		return u.Calls * p.Price
	default:
		return 0
	}
}

// =============================================================================
// RECENT WINDOW
// =============================================================================

// RecentWindowDays is the length of the recent usage sample.
const RecentWindowDays = 7

// Window is a usage sample spanning Days days.
type Window struct {
	Value float64 `json:"value"`
	Days  int     `json:"days"`
}

// BuildRecentWindow picks the recent-usage field matching unit (tokens for
// 1k_tokens, calls otherwise). When that field is absent the other one is
// used, even though it counts a different thing.
func BuildRecentWindow(entry *config.Usage, unit string) *Window {
	if entry == nil {
		return nil
	}

	primary, secondary := entry.Calls, entry.Tokens
	if unit == config.UnitKTokens {
		primary, secondary = entry.Tokens, entry.Calls
	}

	switch {
	case primary != nil:
		return &Window{Value: *primary, Days: RecentWindowDays}
	case secondary != nil:
		return &Window{Value: *secondary, Days: RecentWindowDays}
	default:
		return nil
	}
}

// =============================================================================
// CALENDAR AND RUN-RATE
// =============================================================================

// Calendar is the slice of the current date the projection needs.
type Calendar struct {
	Month       time.Month
	DayOfMonth  int
	DaysInMonth int
}

// CalendarFor returns the calendar for t in t's location.
func CalendarFor(t time.Time) Calendar {
	// Day 0 of next month is the last day of this one
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
	return Calendar{
		Month:       t.Month(),
		DayOfMonth:  t.Day(),
		DaysInMonth: last.Day(),
	}
}

// DailyProjection returns the daily run-rate. A window with positive days and
// value wins; otherwise the month-to-date amount is averaged over the days
// elapsed.
func (c Calendar) DailyProjection(amountToDate float64, w *Window) float64 {
	if w != nil && w.Days > 0 && w.Value > 0 {
		return w.Value / float64(w.Days)
	}
	if amountToDate > 0 && c.DayOfMonth > 0 {
		return amountToDate / float64(c.DayOfMonth)
	}
	return 0
}

// =============================================================================
// PROJECTION
// =============================================================================

// Projection is the month-end outlook for one project.
type Projection struct {
	UsageToDate    float64 `json:"usageToDate"`
	DailyRate      float64 `json:"dailyRate"`
	ProjectedUsage float64 `json:"projectedUsage"`
	Spend          float64 `json:"spend"`
	ProjectedCost  float64 `json:"projectedCost"`
	Window         *Window `json:"recentWindow,omitempty"`
}

// Project computes the projection for p priced at price.
func Project(p config.Project, price pricing.Resolved, cal Calendar) Projection {
	usage := UsageFrom(p.MonthToDate)
	window := BuildRecentWindow(p.Recent7Days, price.Unit)

	toDate := usage.Calls
	if price.Unit == config.UnitKTokens {
		toDate = usage.Tokens
	}

	rate := cal.DailyProjection(toDate, window)
	projectedUsage := rate * float64(cal.DaysInMonth)

	return Projection{
		UsageToDate:    toDate,
		DailyRate:      rate,
		ProjectedUsage: projectedUsage,
		Spend:          ComputeCost(usage, price),
		ProjectedCost:  ComputeCost(UsageForUnit(price.Unit, projectedUsage), price),
		Window:         window,
	}
}
