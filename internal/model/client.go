package model

import "strings"

// Purchase is one crediário purchase taken from the contract sheet.
type Purchase struct {
	Date   string
	Amount float64
}

// Payment is one installment payment collected from a month sheet.
type Payment struct {
	Date   string
	Amount float64
}

// Client is one crediário account assembled by the ledger reconciler.
// Identity is the normalized uppercase name; duplicate spellings
// collapse to the first occurrence.
type Client struct {
	Name                 string
	Purchases            []Purchase
	Payments             []Payment
	TotalSales           float64
	OutstandingBalance   float64
	DaysSinceLastPayment int
	BalanceEstimated     bool
	Overdue60            bool
}

// NormalizeClientName produces the canonical key used for client identity.
func NormalizeClientName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}
