package extract

import (
	"strings"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/rcfaria/fluxo/internal/parse"
)

// CanonicalMethods is the fixed set of payment methods the dashboard
// reports. Every breakdown carries all of them, zero-valued when a
// method had no movement.
var CanonicalMethods = []string{"Dinheiro", "Crediário", "Crédito", "PIX", "Débito"}

// methodKeywords locate a method column by header text. Headers are
// typed by hand, so matching is lowercase substring with and without
// accents.
var methodKeywords = map[string][]string{
	"Dinheiro":  {"dinheiro"},
	"Crediário": {"crediario", "crediário"},
	"Crédito":   {"credito", "crédito"},
	"PIX":       {"pix"},
	"Débito":    {"debito", "débito"},
}

// MethodBreakdown computes the per-method totals for one month sheet by
// scanning the header row for named method columns and summing the
// cells beneath each. When no method column exists at all, the caller's
// fallback table (see engine) decides what to show; this function then
// returns found=false alongside the zero-valued canonical set.
func MethodBreakdown(rows [][]string) (shares []model.MethodShare, found bool) {
	totals := make(map[string]float64, len(CanonicalMethods))

	if len(rows) > 0 {
		header := rows[0]
		for col, cell := range header {
			method, ok := methodForHeader(cell)
			if !ok {
				continue
			}
			found = true
			for _, row := range rows[1:] {
				totals[method] += parse.Currency(cellAt(row, col))
			}
		}
	}

	return buildShares(totals), found
}

// EntryBreakdown groups sale amounts by the payment method column of
// each record. Credit entries recorded as installment receipts show up
// under Crediário.
func EntryBreakdown(records []model.CashFlowRecord) []model.MethodShare {
	totals := make(map[string]float64, len(CanonicalMethods))

	for _, rec := range records {
		if rec.SaleAmount > 0 {
			if method, ok := methodForHeader(rec.PaymentMethod); ok {
				totals[method] += rec.SaleAmount
			}
		}
		if rec.InstallmentAmount > 0 {
			totals["Crediário"] += rec.InstallmentAmount
		}
	}

	return buildShares(totals)
}

// buildShares materializes the canonical method list with percentages.
func buildShares(totals map[string]float64) []model.MethodShare {
	var grand float64
	for _, v := range totals {
		grand += v
	}

	shares := make([]model.MethodShare, 0, len(CanonicalMethods))
	for _, method := range CanonicalMethods {
		share := model.MethodShare{Method: method, Amount: totals[method]}
		if grand > 0 {
			share.Percent = share.Amount / grand * 100
		}
		shares = append(shares, share)
	}
	return shares
}

func methodForHeader(cell string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(cell))
	if s == "" {
		return "", false
	}
	for _, method := range CanonicalMethods {
		for _, kw := range methodKeywords[method] {
			if strings.Contains(s, kw) {
				return method, true
			}
		}
	}
	return "", false
}
