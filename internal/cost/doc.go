// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cost projects month-to-date API usage to a month-end cost.
//
// # Key Types
//
//   - Usage: Call and token counts with absent fields read as zero
//   - Window: A recent usage sample (value over days)
//   - Calendar: The current day of month and month length
//   - Projection: Spend, run-rate and month-end figures for one project
//
// # Usage
//
//	cal := cost.CalendarFor(time.Now())
//	proj := cost.Project(project, resolvedPrice, cal)
//	fmt.Printf("spent %.2f, projected %.2f\n", proj.Spend, proj.ProjectedCost)
//
// The daily rate prefers the recent 7-day window and falls back to the
// month-to-date average.
package cost
