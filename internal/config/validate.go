// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// =============================================================================
// VALIDATION
// =============================================================================

// Recognized pricing types and units.
const (
	PricingManual = "manual"
	PricingWeb    = "web"

	UnitCall    = "call"
	UnitKTokens = "1k_tokens"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate reports problems that make a provider or project price as zero or
// fall back. The tracker treats the result as warnings, so a config that
// fails validation still produces a report.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.OverallMonthlyBudget != nil && *c.OverallMonthlyBudget < 0 {
		errs = append(errs, ValidationError{
			Field:   "overallMonthlyBudget",
			Message: "must not be negative",
		})
	}

	for _, key := range c.ProviderKeys() {
		errs = append(errs, c.validateProvider(key)...)
	}

	for i, p := range c.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		if p.Provider == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".provider",
				Message: "is required",
			})
		}
		if p.Threshold != nil && p.Threshold.MonthlyBudget != nil && *p.Threshold.MonthlyBudget < 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".threshold.monthlyBudget",
				Message: "must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateProvider(key string) ValidateErrors {
	var errs ValidateErrors
	p := c.Providers[key]
	field := "providers." + key

	if p.MonthlyBudget != nil && *p.MonthlyBudget < 0 {
		errs = append(errs, ValidationError{Field: field + ".monthlyBudget", Message: "must not be negative"})
	}

	if opt := p.Optimization; opt != nil {
		if opt.EligibleUsageRatio < 0 || opt.EligibleUsageRatio > 1 {
			errs = append(errs, ValidationError{
				Field:   field + ".optimization.eligibleUsageRatio",
				Message: fmt.Sprintf("%g is outside [0, 1]", opt.EligibleUsageRatio),
			})
		}
		if _, ok := c.Providers[opt.Alternative]; opt.Alternative != "" && !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".optimization.alternative",
				Message: fmt.Sprintf("unknown provider %q", opt.Alternative),
			})
		}
	}

	pr := p.Pricing
	if pr == nil {
		errs = append(errs, ValidationError{Field: field + ".pricing", Message: "is missing; cost will be zero"})
		return errs
	}

	pf := field + ".pricing"
	switch pr.Type {
	case PricingManual:
	case PricingWeb:
		if pr.URL == "" || pr.Regex == "" {
			errs = append(errs, ValidationError{Field: pf, Message: "web pricing needs both url and regex"})
		}
		if pr.Regex != "" {
			if _, err := regexp2.Compile(pr.Regex, regexp2.IgnoreCase|regexp2.ECMAScript); err != nil {
				errs = append(errs, ValidationError{Field: pf + ".regex", Message: err.Error()})
			}
		}
	default:
		errs = append(errs, ValidationError{
			Field:   pf + ".type",
			Message: fmt.Sprintf("invalid type '%s', must be one of: manual, web", pr.Type),
		})
	}

	if pr.Unit != "" && pr.Unit != UnitCall && pr.Unit != UnitKTokens {
		errs = append(errs, ValidationError{
			Field:   pf + ".unit",
			Message: fmt.Sprintf("invalid unit '%s', must be one of: call, 1k_tokens", pr.Unit),
		})
	}
	if (pr.Price != nil && *pr.Price < 0) || (pr.FallbackPrice != nil && *pr.FallbackPrice < 0) {
		errs = append(errs, ValidationError{Field: pf, Message: "prices must not be negative"})
	}

	return errs
}
