// Package core implements the reconciliation engine: the fiscal calendar,
// normalized per-customer monthly rows, feed aggregation, and goal
// reconciliation against territory targets.
//
// This file holds amount parsing and display formatting. Feed amounts
// arrive in thousands of dollars (k$); everything downstream works in base
// dollars, so parsing applies a fixed linear unit scale.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// UnitScale converts feed amounts (k$) into base dollars.
const UnitScale = 1000

// ParseAmount parses a feed amount string, stripping currency formatting
// ($, commas, whitespace) and scaling k$ to dollars.
//
// Examples:
//
//	ParseAmount("10")      -> 10000, nil
//	ParseAmount("$1,234.5") -> 1234500, nil
//	ParseAmount("")        -> 0, error
func ParseAmount(s string) (float64, error) {
	cleaned := stripFormatting(s)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric content in %q", s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v * UnitScale, nil
}

// ParseProbability parses a deal probability as an integer percentage.
// Unparsable input yields zero, matching the recover-with-zero policy for
// numeric fields in operational data.
func ParseProbability(s string) int {
	p, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")))
	if err != nil {
		return 0
	}
	return p
}

// stripFormatting keeps only the characters meaningful to a decimal number.
func stripFormatting(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatMoney renders a compact currency string for display: $1.2M, $10K,
// or plain dollars below a thousand.
func FormatMoney(amount float64) string {
	neg := amount < 0
	abs := amount
	if neg {
		abs = -abs
	}
	var s string
	switch {
	case abs >= 1_000_000:
		s = fmt.Sprintf("$%.1fM", abs/1_000_000)
	case abs >= 1_000:
		s = fmt.Sprintf("$%.0fK", abs/1_000)
	default:
		s = fmt.Sprintf("$%.0f", abs)
	}
	if neg {
		return "-" + s
	}
	return s
}
