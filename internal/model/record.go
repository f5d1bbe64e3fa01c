// Package model defines the core domain types shared across the application.
package model

import "time"

// RecordSource identifies where a cash-flow record was ingested from.
type RecordSource string

// Record sources.
const (
	SourceUpload RecordSource = "upload"
	SourceSheet  RecordSource = "sheet"
)

// CashFlowRecord is one normalized row extracted from a month sheet or an
// uploaded spreadsheet. A single spreadsheet row can carry a sale, an
// expense and an installment receipt side by side, so all three groups
// live on the same record. Amounts are non-negative; a record only
// exists if at least one of them is positive.
type CashFlowRecord struct {
	SaleDate           time.Time
	ExpenseDate        time.Time
	InstallmentDate    time.Time
	PaymentMethod      string
	ExpenseDescription string
	InstallmentClient  string
	MonthTag           string
	Source             RecordSource
	SaleAmount         float64
	ExpenseAmount      float64
	InstallmentAmount  float64
}

// HasValue reports whether the record carries any positive amount.
// Zero-value rows are dropped at extraction time.
func (r *CashFlowRecord) HasValue() bool {
	return r.SaleAmount > 0 || r.ExpenseAmount > 0 || r.InstallmentAmount > 0
}
