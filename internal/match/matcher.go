// Package match implements the tiered fuzzy matching used to associate
// free-text client names across unrelated spreadsheet tabs.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// TokenMode selects how tier 3 (token overlap) decides a match.
type TokenMode int

const (
	// TokenAny matches when the names share at least one token longer
	// than two characters. Loose; used for payment-history search.
	TokenAny TokenMode = iota
	// TokenFirstLast requires both the first and the last token to
	// match. Stricter; used for contract-vs-balance reconciliation.
	TokenFirstLast
)

// Options tune one matching pass. Thresholds are intentionally
// use-specific: reconciling a contract against the balance sheet can
// afford to be looser than picking payments out of a month sheet.
type Options struct {
	TokenMode TokenMode
	MinRatio  int
}

// Profiles for the three places client names are matched.
var (
	BalanceProfile  = Options{TokenMode: TokenFirstLast, MinRatio: 75}
	PurchaseProfile = Options{TokenMode: TokenAny, MinRatio: 80}
	PaymentProfile  = Options{TokenMode: TokenAny, MinRatio: 85}
)

// Best returns the candidate that matches query, trying tiers from
// strict to loose: exact equality, substring containment, token
// overlap, then similarity ratio. The first tier that yields any match
// wins; within the ratio tier the highest-scoring candidate wins.
// A miss is a normal outcome, not an error.
func Best(query string, candidates []string, opts Options) (string, bool) {
	q := normalize(query)
	if q == "" {
		return "", false
	}

	// Tier 1: exact, case-insensitive.
	for _, cand := range candidates {
		if normalize(cand) == q {
			return cand, true
		}
	}

	// Tier 2: substring containment, either direction.
	for _, cand := range candidates {
		c := normalize(cand)
		if c == "" {
			continue
		}
		if strings.Contains(c, q) || strings.Contains(q, c) {
			return cand, true
		}
	}

	// Tier 3: token overlap.
	qTokens := strings.Fields(q)
	for _, cand := range candidates {
		if tokensMatch(qTokens, strings.Fields(normalize(cand)), opts.TokenMode) {
			return cand, true
		}
	}

	// Tier 4: similarity ratio.
	bestScore := 0
	bestIdx := -1
	for i, cand := range candidates {
		if score := Ratio(q, normalize(cand)); score >= opts.MinRatio && score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return candidates[bestIdx], true
	}

	return "", false
}

// Ratio is an edit-distance similarity on a 0-100 scale.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	score := 100 * (longest - dist) / longest
	if score < 0 {
		return 0
	}
	return score
}

func tokensMatch(a, b []string, mode TokenMode) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	switch mode {
	case TokenFirstLast:
		return a[0] == b[0] && a[len(a)-1] == b[len(b)-1]
	default:
		shared := 0
		for _, ta := range a {
			if len(ta) <= 2 {
				continue
			}
			for _, tb := range b {
				if ta == tb {
					shared++
					break
				}
			}
		}
		return shared >= 1
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
