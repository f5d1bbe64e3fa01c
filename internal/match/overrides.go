package match

import "strings"

// AgingOverride forces a fixed days-since-last-payment for clients
// whose name contains a pattern. These are data patches for accounts
// whose history lives outside the spreadsheets; they belong in
// configuration, not in matcher logic.
type AgingOverride struct {
	Pattern string
	Days    int
}

// OverrideTable holds the configured aging overrides.
type OverrideTable struct {
	overrides []AgingOverride
}

// NewOverrideTable builds a table from configured pattern/day pairs.
func NewOverrideTable(overrides []AgingOverride) *OverrideTable {
	return &OverrideTable{overrides: overrides}
}

// Lookup returns the forced day count for a client name, if any
// pattern matches it case-insensitively.
func (t *OverrideTable) Lookup(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	n := normalize(name)
	for _, o := range t.overrides {
		p := normalize(o.Pattern)
		if p != "" && strings.Contains(n, p) {
			return o.Days, true
		}
	}
	return 0, false
}
