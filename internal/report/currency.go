// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders value as symbol followed by two decimals, rounded
// half away from zero. No grouping separators are added.
func FormatCurrency(symbol string, value float64) string {
	return symbol + fixed(value, 2)
}

// fixed formats v with places decimals.
func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
