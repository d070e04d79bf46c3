// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cost

import (
	"math"
	"testing"
	"time"

	"github.com/jeranaias/scriptkit/internal/config"
	"github.com/jeranaias/scriptkit/internal/pricing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================
// COMPUTE COST TESTS
// =============================================================================

func TestComputeCost_ZeroUsage(t *testing.T) {
	prices := []pricing.Resolved{
		{Price: 0.01, Unit: "call"},
		{Price: 3, Unit: "1k_tokens"},
		{Price: 99, Unit: "per_minute"},
		pricing.Unknown,
	}
	for _, p := range prices {
		if got := ComputeCost(Usage{}, p); got != 0 {
			t.Errorf("ComputeCost(zero, %+v) = %v, want 0", p, got)
		}
	}
}

func TestComputeCost_UnitDispatch(t *testing.T) {
	tests := []struct {
		name  string
		usage Usage
		price pricing.Resolved
		want  float64
	}{
		{"per call", Usage{Calls: 100, Tokens: 5000}, pricing.Resolved{Price: 0.01, Unit: "call"}, 1.0},
		{"per call doubles", Usage{Calls: 200, Tokens: 1}, pricing.Resolved{Price: 0.01, Unit: "call"}, 2.0},
		{"per 1k tokens", Usage{Calls: 7, Tokens: 2500}, pricing.Resolved{Price: 0.4, Unit: "1k_tokens"}, 1.0},
		{"per 1k tokens ignores calls", Usage{Calls: 1e6, Tokens: 1000}, pricing.Resolved{Price: 0.4, Unit: "1k_tokens"}, 0.4},
		{"unknown unit", Usage{Calls: 100, Tokens: 100}, pricing.Resolved{Price: 1, Unit: "seat"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeCost(tt.usage, tt.price); !almostEqual(got, tt.want) {
				t.Errorf("ComputeCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// RECENT WINDOW TESTS
// =============================================================================

func TestBuildRecentWindow(t *testing.T) {
	tests := []struct {
		name      string
		entry     *config.Usage
		unit      string
		wantValue float64
		wantNil   bool
	}{
		{"nil entry", nil, "call", 0, true},
		{"empty entry", &config.Usage{}, "call", 0, true},
		{"calls for call unit", &config.Usage{Calls: config.Float(140), Tokens: config.Float(9)}, "call", 140, false},
		{"tokens for token unit", &config.Usage{Calls: config.Float(140), Tokens: config.Float(9000)}, "1k_tokens", 9000, false},
		{"falls back to tokens", &config.Usage{Tokens: config.Float(50)}, "call", 50, false},
		{"falls back to calls", &config.Usage{Calls: config.Float(12)}, "1k_tokens", 12, false},
		{"explicit zero is present", &config.Usage{Calls: config.Float(0), Tokens: config.Float(5)}, "call", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRecentWindow(tt.entry, tt.unit)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("BuildRecentWindow() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("BuildRecentWindow() = nil, want a window")
			}
			if got.Value != tt.wantValue || got.Days != 7 {
				t.Errorf("BuildRecentWindow() = %+v, want {%v 7}", got, tt.wantValue)
			}
		})
	}
}

// =============================================================================
// CALENDAR TESTS
// =============================================================================

func TestCalendarFor(t *testing.T) {
	tests := []struct {
		date     time.Time
		wantDays int
	}{
		{time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC), 31},
		{time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC), 28},
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), 31},
	}

	for _, tt := range tests {
		cal := CalendarFor(tt.date)
		if cal.DaysInMonth != tt.wantDays {
			t.Errorf("%s: DaysInMonth = %d, want %d", tt.date.Format("2006-01-02"), cal.DaysInMonth, tt.wantDays)
		}
		if cal.DayOfMonth != tt.date.Day() || cal.Month != tt.date.Month() {
			t.Errorf("%s: got %+v", tt.date.Format("2006-01-02"), cal)
		}
	}
}

func TestDailyProjection(t *testing.T) {
	cal := Calendar{Month: time.April, DayOfMonth: 10, DaysInMonth: 30}

	tests := []struct {
		name   string
		amount float64
		window *Window
		want   float64
	}{
		{"window wins", 100, &Window{Value: 140, Days: 7}, 20},
		{"zero window value falls back", 100, &Window{Value: 0, Days: 7}, 10},
		{"zero window days falls back", 100, &Window{Value: 70, Days: 0}, 10},
		{"no window", 100, nil, 10},
		{"nothing used", 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.DailyProjection(tt.amount, tt.window); !almostEqual(got, tt.want) {
				t.Errorf("DailyProjection() = %v, want %v", got, tt.want)
			}
		})
	}

	day0 := Calendar{DayOfMonth: 0, DaysInMonth: 30}
	if got := day0.DailyProjection(100, nil); got != 0 {
		t.Errorf("day 0 DailyProjection() = %v, want 0", got)
	}
}

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestProject_ManualPerCall(t *testing.T) {
	project := config.Project{
		Name:        "Docs",
		Provider:    "manual",
		MonthToDate: config.Usage{Calls: config.Float(100)},
	}
	price := pricing.Resolved{Price: 0.01, Unit: "call", Source: "manual"}
	cal := CalendarFor(time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC))

	got := Project(project, price, cal)

	if !almostEqual(got.DailyRate, 10) {
		t.Errorf("DailyRate = %v, want 10", got.DailyRate)
	}
	if !almostEqual(got.ProjectedUsage, 300) {
		t.Errorf("ProjectedUsage = %v, want 300", got.ProjectedUsage)
	}
	if !almostEqual(got.Spend, 1.00) {
		t.Errorf("Spend = %v, want 1.00", got.Spend)
	}
	if !almostEqual(got.ProjectedCost, 3.00) {
		t.Errorf("ProjectedCost = %v, want 3.00", got.ProjectedCost)
	}
	if got.Window != nil {
		t.Errorf("Window = %+v, want nil", got.Window)
	}
}

func TestProject_TokensWithWindow(t *testing.T) {
	project := config.Project{
		MonthToDate: config.Usage{Tokens: config.Float(200000), Calls: config.Float(50)},
		Recent7Days: &config.Usage{Tokens: config.Float(70000)},
	}
	price := pricing.Resolved{Price: 0.5, Unit: "1k_tokens"}
	cal := Calendar{DayOfMonth: 15, DaysInMonth: 30}

	got := Project(project, price, cal)

	if !almostEqual(got.DailyRate, 10000) {
		t.Errorf("DailyRate = %v, want 10000", got.DailyRate)
	}
	if !almostEqual(got.Spend, 100) {
		t.Errorf("Spend = %v, want 100", got.Spend)
	}
	if !almostEqual(got.ProjectedCost, 150) {
		t.Errorf("ProjectedCost = %v, want 150", got.ProjectedCost)
	}
}

func TestProject_UnknownUnitProjectsZero(t *testing.T) {
	project := config.Project{MonthToDate: config.Usage{Calls: config.Float(100)}}
	got := Project(project, pricing.Resolved{Price: 1, Unit: "seat"}, Calendar{DayOfMonth: 10, DaysInMonth: 30})

	if got.Spend != 0 || got.ProjectedCost != 0 {
		t.Errorf("unknown unit should cost nothing, got %+v", got)
	}
	if !almostEqual(got.ProjectedUsage, 300) {
		t.Errorf("ProjectedUsage = %v, want 300 (calls are still counted)", got.ProjectedUsage)
	}
}
