package extract

import (
	"log/slog"

	"github.com/rcfaria/fluxo/internal/model"
)

// Aggregator sums extracted records into per-month KPIs. Aggregation is
// pure: identical input records always produce identical figures and
// nothing is mutated.
type Aggregator struct {
	logger *slog.Logger

	// ExpenseCeiling suppresses expense values above this limit as
	// likely mis-classified totals. Zero disables the check.
	ExpenseCeiling float64
}

// NewAggregator creates an aggregator with the given expense ceiling.
func NewAggregator(expenseCeiling float64, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{ExpenseCeiling: expenseCeiling, logger: logger}
}

// Month sums one sheet's records into its KPI set.
func (a *Aggregator) Month(monthTag string, records []model.CashFlowRecord) model.MonthKPIs {
	kpis := model.MonthKPIs{MonthTag: monthTag}

	for _, rec := range records {
		if rec.SaleAmount > 0 {
			kpis.Revenue += rec.SaleAmount
			kpis.SaleCount++
		}

		if rec.ExpenseAmount > 0 {
			if a.ExpenseCeiling > 0 && rec.ExpenseAmount > a.ExpenseCeiling {
				a.logger.Warn("suppressing expense above ceiling",
					"sheet", monthTag,
					"value", rec.ExpenseAmount,
					"ceiling", a.ExpenseCeiling)
			} else {
				kpis.Expenses += rec.ExpenseAmount
			}
		}

		kpis.InstallmentsReceived += rec.InstallmentAmount
	}

	return kpis
}

// Year sums a set of per-month KPIs into a single year-scope figure.
// No cross-month deduplication is attempted.
func (a *Aggregator) Year(months []model.MonthKPIs) model.MonthKPIs {
	var total model.MonthKPIs
	for _, m := range months {
		total.Add(m)
	}
	return total
}
