// Package extract turns classified sheet rows into cash-flow records
// and aggregates them into per-month KPIs.
package extract

// Layout maps semantic fields to their column positions in a month
// sheet. The spreadsheet carries sales, expenses and installment
// receipts side by side in fixed columns; the sheet has no schema, so
// a structural change there silently breaks extraction. Keeping the
// positions as data means a layout change is a config change.
type Layout struct {
	SaleDate          int
	SaleValue         int
	PaymentMethod     int
	ExpenseDate       int
	ExpenseDesc       int
	ExpenseValue      int
	InstallmentDate   int
	InstallmentClient int
	InstallmentValue  int

	// TotalTolerance bounds the near-duplicate total suppression: a
	// value within this distance of the sum of all other values in the
	// same column is treated as an embedded total row. Zero disables
	// the heuristic.
	TotalTolerance float64
}

// DefaultLayout returns the column positions of the store's month
// sheets as they are laid out today.
func DefaultLayout() Layout {
	return Layout{
		SaleDate:          0,
		SaleValue:         1,
		PaymentMethod:     4,
		ExpenseDate:       9,
		ExpenseDesc:       10,
		ExpenseValue:      11,
		InstallmentDate:   14,
		InstallmentClient: 15,
		InstallmentValue:  16,
		TotalTolerance:    0.50,
	}
}

// cellAt safely reads a cell by index; rows are ragged in practice.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
