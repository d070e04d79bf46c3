// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/scriptkit/internal/config"
)

// =============================================================================
// TEXT RENDERING
// =============================================================================

// LineKind tags a report line for styling.
type LineKind int

const (
	KindBlank LineKind = iota
	KindTitle
	KindHeader
	KindPace
	KindAlert
	KindSuggestion
	KindMissing
	KindSection
	KindProvider
	KindTotal
)

// Line is one line of the text report.
type Line struct {
	Kind LineKind
	Text string
}

const alertMarker = " ⚠️"

// Lines renders the report as tagged lines.
func (r *Report) Lines() []Line {
	money := func(v float64) string { return FormatCurrency(r.Currency, v) }

	var lines []Line
	add := func(kind LineKind, format string, args ...interface{}) {
		lines = append(lines, Line{Kind: kind, Text: fmt.Sprintf(format, args...)})
	}
	blank := func() { lines = append(lines, Line{Kind: KindBlank}) }

	add(KindTitle, "API Cost Tracker — %s", r.MonthName)
	blank()

	for _, p := range r.Projects {
		if p.Missing {
			add(KindMissing, "%s — Provider \"%s\" is missing from config.", p.Name, p.ProviderKey)
			blank()
			continue
		}

		budgetLine := ""
		if p.Budget != 0 {
			budgetLine = " | Budget: " + money(p.Budget)
		}
		add(KindHeader, "%s (%s) — %s spent, projected %s%s",
			p.Name, p.ProviderName, money(p.Projection.Spend), money(p.Projection.ProjectedCost), budgetLine)

		if p.Projection.Window != nil {
			unit := "tokens"
			if p.Pricing.Unit == config.UnitCall {
				unit = "calls"
			}
			add(KindPace, "  Recent pace: %s %s/day · Pricing via %s", fixed(p.Projection.DailyRate, 1), unit, p.Pricing.Source)
		}

		if p.Alert {
			add(KindAlert, "  ⚠️ Project budget alert: %s%% of monthly allocation used", fixed(p.Utilization, 1))
		}

		if s := p.Suggestion; s != nil {
			add(KindSuggestion, "  💡 %s%% of this workload could move to %s to save ~%s this month (%s).",
				fixed(s.Percent, 0), s.AlternativeName, money(s.Savings), s.Note)
		}

		blank()
	}

	add(KindSection, "Provider overview:")
	for _, pt := range r.Providers {
		budgetNote, alert := "", ""
		if pt.MonthlyBudget != 0 {
			budgetNote = fmt.Sprintf(" of %s budget", money(pt.MonthlyBudget))
		}
		if pt.Alert {
			alert = alertMarker
		}
		add(KindProvider, "- %s: %s spent%s, projected %s%s", pt.Name, money(pt.Cost), budgetNote, money(pt.Projected), alert)
	}

	blank()
	if r.OverallBudget != 0 {
		alert := ""
		if r.OverallAlert {
			alert = alertMarker
		}
		add(KindTotal, "Total month-to-date: %s of %s budget%s", money(r.TotalCost), money(r.OverallBudget), alert)
	} else {
		add(KindTotal, "Total month-to-date: %s", money(r.TotalCost))
	}
	add(KindTotal, "Projected month-end spend: %s", money(r.ProjectedTotal))

	return lines
}

// Text returns the plain report without a trailing newline.
func (r *Report) Text() string {
	lines := r.Lines()
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// WriteText writes the report followed by a newline. style, when non-nil,
// decorates each line by kind.
func (r *Report) WriteText(w io.Writer, style func(LineKind, string) string) error {
	for _, l := range r.Lines() {
		text := l.Text
		if style != nil && text != "" {
			text = style(l.Kind, text)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}
