package model

// MonthKPIs holds the aggregate figures for one month sheet.
type MonthKPIs struct {
	MonthTag             string
	Revenue              float64
	Expenses             float64
	InstallmentsReceived float64
	SaleCount            int
}

// GrossProfit is revenue minus expenses.
func (k MonthKPIs) GrossProfit() float64 {
	return k.Revenue - k.Expenses
}

// AverageTicket is revenue per sale, 0 when there were no sales.
func (k MonthKPIs) AverageTicket() float64 {
	if k.SaleCount == 0 {
		return 0
	}
	return k.Revenue / float64(k.SaleCount)
}

// Add accumulates another month's figures into k. Used for year scope;
// no cross-month deduplication is attempted.
func (k *MonthKPIs) Add(other MonthKPIs) {
	k.Revenue += other.Revenue
	k.Expenses += other.Expenses
	k.InstallmentsReceived += other.InstallmentsReceived
	k.SaleCount += other.SaleCount
}

// MethodShare is one slice of the payment-method breakdown.
type MethodShare struct {
	Method  string
	Amount  float64
	Percent float64
}
