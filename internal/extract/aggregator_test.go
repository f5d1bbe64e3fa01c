package extract

import (
	"testing"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregatorMonth(t *testing.T) {
	a := NewAggregator(0, nil)

	records := []model.CashFlowRecord{
		{SaleAmount: 150.00, PaymentMethod: "PIX"},
		{SaleAmount: 1200.00, ExpenseAmount: 800.00},
		{InstallmentAmount: 50.00},
		{ExpenseAmount: 45.90},
	}

	kpis := a.Month("SETEMBRO25", records)

	assert.Equal(t, "SETEMBRO25", kpis.MonthTag)
	assert.InDelta(t, 1350.00, kpis.Revenue, 0.001)
	assert.InDelta(t, 845.90, kpis.Expenses, 0.001)
	assert.InDelta(t, 50.00, kpis.InstallmentsReceived, 0.001)
	assert.Equal(t, 2, kpis.SaleCount)
	assert.InDelta(t, 504.10, kpis.GrossProfit(), 0.001)
	assert.InDelta(t, 675.00, kpis.AverageTicket(), 0.001)
}

func TestAggregatorMonthIsIdempotent(t *testing.T) {
	a := NewAggregator(0, nil)

	records := []model.CashFlowRecord{
		{SaleAmount: 150.00},
		{ExpenseAmount: 99.90},
	}

	first := a.Month("SETEMBRO25", records)
	second := a.Month("SETEMBRO25", records)
	assert.Equal(t, first, second)
}

func TestAggregatorExpenseCeiling(t *testing.T) {
	a := NewAggregator(10000, nil)

	records := []model.CashFlowRecord{
		{ExpenseAmount: 500.00},
		{ExpenseAmount: 25000.00}, // mis-classified total, above ceiling
	}

	kpis := a.Month("SETEMBRO25", records)
	assert.InDelta(t, 500.00, kpis.Expenses, 0.001)
}

func TestAggregatorEmptyMonth(t *testing.T) {
	a := NewAggregator(0, nil)

	kpis := a.Month("SETEMBRO25", nil)
	assert.Zero(t, kpis.Revenue)
	assert.Zero(t, kpis.SaleCount)
	assert.Zero(t, kpis.AverageTicket())
}

func TestAggregatorYear(t *testing.T) {
	a := NewAggregator(0, nil)

	months := []model.MonthKPIs{
		{MonthTag: "JANEIRO25", Revenue: 1000, Expenses: 400, InstallmentsReceived: 100, SaleCount: 10},
		{MonthTag: "FEVEREIRO25", Revenue: 2000, Expenses: 600, InstallmentsReceived: 200, SaleCount: 15},
	}

	total := a.Year(months)
	assert.InDelta(t, 3000.00, total.Revenue, 0.001)
	assert.InDelta(t, 1000.00, total.Expenses, 0.001)
	assert.InDelta(t, 300.00, total.InstallmentsReceived, 0.001)
	assert.Equal(t, 25, total.SaleCount)
	assert.InDelta(t, 120.00, total.AverageTicket(), 0.001)
}

func TestAggregatorYearEmpty(t *testing.T) {
	a := NewAggregator(0, nil)
	assert.Equal(t, model.MonthKPIs{}, a.Year(nil))
}
