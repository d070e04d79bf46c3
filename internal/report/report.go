// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"time"

	"github.com/jeranaias/scriptkit/internal/config"
	"github.com/jeranaias/scriptkit/internal/cost"
	"github.com/jeranaias/scriptkit/internal/pricing"
)

// AlertThreshold is the budget utilization (percent) that raises an alert.
const AlertThreshold = 90.0

// =============================================================================
// REPORT TYPES
// =============================================================================

// Report is the full monthly cost report.
type Report struct {
	Month          time.Month       `json:"-"`
	MonthName      string           `json:"month"`
	Currency       string           `json:"currency"`
	Projects       []ProjectReport  `json:"projects"`
	Providers      []ProviderTotals `json:"providers"`
	TotalCost      float64          `json:"totalCost"`
	ProjectedTotal float64          `json:"projectedTotal"`
	OverallBudget  float64          `json:"overallBudget,omitempty"`
	OverallAlert   bool             `json:"overallAlert"`
}

// ProjectReport is one project's section of the report.
type ProjectReport struct {
	Name         string           `json:"name"`
	ProviderKey  string           `json:"provider"`
	ProviderName string           `json:"providerName,omitempty"`
	Missing      bool             `json:"missingProvider,omitempty"`
	Pricing      pricing.Resolved `json:"pricing"`
	Projection   cost.Projection  `json:"projection"`

	// Budget is the project threshold; zero means none
	Budget      float64     `json:"budget,omitempty"`
	Utilization float64     `json:"utilization,omitempty"`
	Alert       bool        `json:"alert"`
	Suggestion  *Suggestion `json:"suggestion,omitempty"`
}

// Suggestion proposes moving part of the workload to a cheaper provider.
type Suggestion struct {
	Alternative     string  `json:"alternative"`
	AlternativeName string  `json:"alternativeName"`
	Percent         float64 `json:"percent"`
	Savings         float64 `json:"savings"`
	Note            string  `json:"note"`
}

// ProviderTotals accumulates spend for one provider across projects.
type ProviderTotals struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	Projected     float64 `json:"projected"`
	MonthlyBudget float64 `json:"monthlyBudget,omitempty"`
	Alert         bool    `json:"alert"`
}

// =============================================================================
// BUILD
// =============================================================================

// totals keeps provider totals in first-touched order.
type totals struct {
	order []string
	byKey map[string]*ProviderTotals
}

func (t *totals) get(key string, p config.Provider) *ProviderTotals {
	if pt, ok := t.byKey[key]; ok {
		return pt
	}
	name := p.DisplayName
	if name == "" {
		name = key
	}
	pt := &ProviderTotals{Key: key, Name: name, MonthlyBudget: config.Value(p.MonthlyBudget)}
	t.byKey[key] = pt
	t.order = append(t.order, key)
	return pt
}

// Build assembles the report. Projects that reference an unknown provider are
// flagged and left out of every total.
func Build(cfg *config.Config, prices map[string]pricing.Resolved, cal cost.Calendar) *Report {
	rep := &Report{
		Month:         cal.Month,
		MonthName:     cal.Month.String(),
		Currency:      cfg.Currency,
		OverallBudget: config.Value(cfg.OverallMonthlyBudget),
	}
	if rep.Currency == "" {
		rep.Currency = config.DefaultCurrency
	}

	acc := &totals{byKey: map[string]*ProviderTotals{}}

	for _, p := range cfg.Projects {
		provider, ok := cfg.Providers[p.Provider]
		if !ok {
			rep.Projects = append(rep.Projects, ProjectReport{Name: p.Name, ProviderKey: p.Provider, Missing: true})
			continue
		}

		price, ok := prices[p.Provider]
		if !ok {
			price = pricing.Unknown
		}

		pr := ProjectReport{
			Name:         p.Name,
			ProviderKey:  p.Provider,
			ProviderName: provider.DisplayName,
			Pricing:      price,
			Projection:   cost.Project(p, price, cal),
		}
		if pr.ProviderName == "" {
			pr.ProviderName = p.Provider
		}

		if p.Threshold != nil {
			pr.Budget = config.Value(p.Threshold.MonthlyBudget)
		}
		if pr.Budget != 0 {
			pr.Utilization = (pr.Projection.Spend / pr.Budget) * 100
			pr.Alert = pr.Utilization >= AlertThreshold
		}

		pr.Suggestion = suggest(cfg, provider, price, prices, pr.Projection.ProjectedUsage)

		rep.TotalCost += pr.Projection.Spend
		rep.ProjectedTotal += pr.Projection.ProjectedCost

		pt := acc.get(p.Provider, provider)
		pt.Cost += pr.Projection.Spend
		pt.Projected += pr.Projection.ProjectedCost

		rep.Projects = append(rep.Projects, pr)
	}

	for _, key := range acc.order {
		pt := acc.byKey[key]
		pt.Alert = pt.MonthlyBudget != 0 && pt.Cost/pt.MonthlyBudget >= AlertThreshold/100
		rep.Providers = append(rep.Providers, *pt)
	}

	if rep.OverallBudget != 0 {
		rep.OverallAlert = (rep.TotalCost/rep.OverallBudget)*100 >= AlertThreshold
	}

	return rep
}

// suggest prices the eligible share of projected usage on both providers and
// returns a suggestion when the alternative is cheaper.
func suggest(cfg *config.Config, provider config.Provider, price pricing.Resolved, prices map[string]pricing.Resolved, projectedUsage float64) *Suggestion {
	opt := provider.Optimization
	if opt == nil || opt.Alternative == "" {
		return nil
	}
	alt, ok := cfg.Providers[opt.Alternative]
	if !ok {
		return nil
	}
	altPrice, ok := prices[opt.Alternative]
	if !ok || altPrice.Price == 0 {
		return nil
	}

	eligible := projectedUsage * opt.EligibleUsageRatio
	current := cost.ComputeCost(cost.UsageForUnit(price.Unit, eligible), price)
	moved := cost.ComputeCost(cost.UsageForUnit(altPrice.Unit, eligible), altPrice)

	savings := current - moved
	if savings <= 0 {
		return nil
	}
	return &Suggestion{
		Alternative:     opt.Alternative,
		AlternativeName: alt.DisplayName,
		Percent:         opt.EligibleUsageRatio * 100,
		Savings:         savings,
		Note:            opt.Note,
	}
}
