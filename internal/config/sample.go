// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// Sample returns the starter configuration written on first run: one
// scraped provider with an optimization hint, one manually priced provider,
// and a project for each.
func Sample() *Config {
	return &Config{
		Currency:             "£",
		OverallMonthlyBudget: Float(500),
		Providers: map[string]Provider{
			"vertex_ai": {
				DisplayName: "Vertex AI",
				Pricing: &Pricing{
					Type:          "web",
					Unit:          "call",
					URL:           "https://cloud.google.com/vertex-ai/pricing",
					Regex:         `\$([0-9.]+) per document`,
					FallbackPrice: Float(0.012),
					Note:          "Fallback uses a manual per-call price if scraping fails",
				},
				MonthlyBudget: Float(120),
				Optimization: &Optimization{
					Alternative:        "claude_haiku",
					EligibleUsageRatio: 0.73,
					Note:               "Chronology extraction paths can use Claude Haiku at similar quality",
				},
			},
			"claude_haiku": {
				DisplayName: "Claude Haiku",
				Pricing: &Pricing{
					Type:  "manual",
					Unit:  "call",
					Price: Float(0.008),
					Note:  "Manual pricing per API call",
				},
				MonthlyBudget: Float(80),
			},
		},
		Projects: []Project{
			{
				Name:        "Chronology Extractor",
				Provider:    "vertex_ai",
				MonthToDate: Usage{Calls: Float(620), Tokens: Float(0)},
				Recent7Days: &Usage{Calls: Float(140), Tokens: Float(0)},
				Threshold:   &Threshold{MonthlyBudget: Float(50)},
			},
			{
				Name:        "Timeline QA",
				Provider:    "claude_haiku",
				MonthToDate: Usage{Calls: Float(320)},
				Recent7Days: &Usage{Calls: Float(75)},
			},
		},
	}
}
