package parse

import "strings"

// DefaultExclusionTokens mark rows that hold aggregates the spreadsheet
// authors insert between transactions. Any row whose cells contain one
// of these is a summary, not data.
var DefaultExclusionTokens = []string{
	"total",
	"soma",
	"subtotal",
	"saldo devedor",
	"saldo inicial",
}

// Classifier decides whether a raw sheet row is usable transaction
// data. The month sheets mix per-transaction rows with hand-written
// summary rows in the same column layout; token scanning plus a
// date-shaped first cell is the only reliable discriminator available.
type Classifier struct {
	// Tokens are matched against the lowercased concatenation of all
	// non-empty cells. Defaults to DefaultExclusionTokens when empty.
	Tokens []string
	// StrictDates additionally requires day/month in calendar range.
	StrictDates bool
}

// NewClassifier returns a classifier with the default exclusion tokens.
func NewClassifier() *Classifier {
	return &Classifier{Tokens: DefaultExclusionTokens}
}

// Include reports whether the row at index should be extracted.
// Row 0 is always the header.
func (c *Classifier) Include(index int, row []string) bool {
	if index == 0 {
		return false
	}
	if isEmptyRow(row) {
		return false
	}
	if c.hasExclusionToken(row) {
		return false
	}
	return LooksLikeDate(row[0], c.StrictDates)
}

// IsSummaryRow reports whether a row carries one of the exclusion
// tokens, regardless of position. Used by the ledger reconciler, which
// walks column groups rather than whole rows.
func (c *Classifier) IsSummaryRow(row []string) bool {
	return c.hasExclusionToken(row)
}

func (c *Classifier) hasExclusionToken(row []string) bool {
	tokens := c.Tokens
	if len(tokens) == 0 {
		tokens = DefaultExclusionTokens
	}

	var b strings.Builder
	for _, cell := range row {
		if s := strings.TrimSpace(cell); s != "" {
			b.WriteString(strings.ToLower(s))
			b.WriteByte(' ')
		}
	}
	joined := b.String()

	for _, token := range tokens {
		if strings.Contains(joined, token) {
			return true
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
