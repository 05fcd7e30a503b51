// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatINR formats a rupee amount with Indian digit grouping.
// e.g., 1234567 -> "₹12,34,567", 75000 -> "₹75,000"
func FormatINR(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return "-" + FormatINR(float64(-n))
	}
	return "₹" + groupIndian(strconv.FormatInt(n, 10))
}

// FormatINRCompact abbreviates large rupee amounts with lakh/crore
// suffixes. e.g., 7500000 -> "₹75L", 25000000 -> "₹2.5Cr"
func FormatINRCompact(amount float64) string {
	if amount < 0 {
		return "-" + FormatINRCompact(-amount)
	}
	switch {
	case amount >= 1_00_00_000:
		return "₹" + trimZero(amount/1_00_00_000) + "Cr"
	case amount >= 1_00_000:
		return "₹" + trimZero(amount/1_00_000) + "L"
	case amount >= 1_000:
		return "₹" + trimZero(amount/1_000) + "k"
	default:
		return fmt.Sprintf("₹%.0f", amount)
	}
}

// groupIndian inserts commas Indian-style: the last three digits form
// one group, every two digits before that form another.
func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	var result strings.Builder
	remainder := len(head) % 2
	if remainder > 0 {
		result.WriteString(head[:remainder])
	}
	for i := remainder; i < len(head); i += 2 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(head[i : i+2])
	}
	return result.String() + "," + tail
}

func trimZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

// FormatRate formats an inflation rate in percent, one decimal.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// FormatPercent formats a 0-1 fraction as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMonths formats a month count as years and months.
// e.g., 30 -> "2y 6m", 9 -> "9m"
func FormatMonths(months float64) string {
	m := int64(math.Ceil(months))
	if m <= 0 {
		return "done"
	}
	years := m / 12
	rem := m % 12
	if years > 0 && rem > 0 {
		return fmt.Sprintf("%dy %dm", years, rem)
	}
	if years > 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dm", rem)
}

// FormatDelta formats a rate delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return fmt.Sprintf("+%.1f", delta)
	}
	return fmt.Sprintf("%.1f", delta)
}
