package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month sheet names follow the convention "SETEMBRO25": the Portuguese
// month name followed by a two-digit year.
var monthNames = map[string]time.Month{
	"JANEIRO":   time.January,
	"FEVEREIRO": time.February,
	"MARCO":     time.March,
	"MARÇO":     time.March,
	"ABRIL":     time.April,
	"MAIO":      time.May,
	"JUNHO":     time.June,
	"JULHO":     time.July,
	"AGOSTO":    time.August,
	"SETEMBRO":  time.September,
	"OUTUBRO":   time.October,
	"NOVEMBRO":  time.November,
	"DEZEMBRO":  time.December,
}

// ParseMonthTag resolves a sheet name like "SETEMBRO25" into the first
// day of that calendar month.
func ParseMonthTag(tag string) (time.Time, error) {
	s := strings.ToUpper(strings.TrimSpace(tag))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty month tag")
	}

	// Split the trailing digits off the month name.
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	name, digits := s[:i], s[i:]

	month, ok := monthNames[name]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month name in tag %q", tag)
	}

	year := time.Now().Year()
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year in tag %q", tag)
		}
		if n < 100 {
			n += 2000
		}
		year = n
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// MonthsBetween returns how many whole calendar months separate the
// month of a from the month of b, ignoring days.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
