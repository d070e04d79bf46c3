// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report builds the monthly API cost report.
//
// Build is pure: it takes the config, the resolved prices and the calendar
// and returns a Report holding every per-project figure plus the provider and
// overall totals. Lines turns the Report into text lines tagged with a kind
// so callers can style alerts and suggestions without changing the text.
//
// # Usage
//
//	rep := report.Build(cfg, prices, cost.CalendarFor(time.Now()))
//	fmt.Println(rep.Text())
package report
