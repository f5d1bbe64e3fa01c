// Package parse implements the pt-BR cell parsing heuristics used by the
// sheet extraction pipeline: currency strings, DD/MM dates and row
// classification.
package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency converts a Brazilian-formatted monetary cell into a
// non-negative float. Empty cells, the "R$  -" placeholder and
// unparseable values all yield 0; this function never fails.
//
// Separator disambiguation: when both "." and "," are present the
// rightmost acts as the decimal mark. When only dots remain and the
// trailing group has exactly 3 digits, the dots are thousands
// separators. "1.234" therefore always reads as 1234, even though a
// 3-decimal fraction would be written the same way; Brazilian currency
// has no 3-decimal amounts in practice.
func Currency(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return 0
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case hasDot:
		if last := strings.LastIndex(s, "."); len(s)-last-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	s = stripNonNumeric(s)
	if s == "" || s == "-" || s == "." {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}

	f, _ := d.Float64()
	if f < 0 {
		return 0
	}
	return f
}

// stripNonNumeric removes anything that is not a digit, minus or dot.
func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
