package parse

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the date spellings seen across the month sheets.
var dateLayouts = []string{"02/01/2006", "2/1/2006", "02/01/06", "2/1/06"}

// Date parses a DD/MM/YYYY (or two-digit year) cell. The zero time and
// false are returned for anything else; extraction treats that as a
// missing date, not an error.
func Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Two-digit years land in the 2000s.
			if t.Year() < 100 {
				t = t.AddDate(2000, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// LooksLikeDate reports whether a cell plausibly holds a DD/MM date:
// it must contain a slash and at least one digit. With strict set, the
// day and month components must also fall in calendar range.
func LooksLikeDate(raw string, strict bool) bool {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "/") {
		return false
	}
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}

	if !strict {
		return true
	}

	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return false
	}
	return true
}
