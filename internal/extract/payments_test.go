package extract

import (
	"testing"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shareByMethod(t *testing.T, shares []model.MethodShare, method string) model.MethodShare {
	t.Helper()
	for _, s := range shares {
		if s.Method == method {
			return s
		}
	}
	t.Fatalf("method %s missing from breakdown", method)
	return model.MethodShare{}
}

func TestMethodBreakdown(t *testing.T) {
	rows := [][]string{
		{"DATA", "VALOR", "DINHEIRO", "PIX", "CARTÃO DE CRÉDITO"},
		{"01/09/2025", "250,00", "100,00", "150,00", ""},
		{"02/09/2025", "300,00", "", "200,00", "100,00"},
	}

	shares, found := MethodBreakdown(rows)
	require.True(t, found)
	require.Len(t, shares, len(CanonicalMethods))

	assert.InDelta(t, 100.00, shareByMethod(t, shares, "Dinheiro").Amount, 0.001)
	assert.InDelta(t, 350.00, shareByMethod(t, shares, "PIX").Amount, 0.001)
	assert.InDelta(t, 100.00, shareByMethod(t, shares, "Crédito").Amount, 0.001)
	assert.Zero(t, shareByMethod(t, shares, "Débito").Amount)

	pix := shareByMethod(t, shares, "PIX")
	assert.InDelta(t, 63.6, pix.Percent, 0.1)
}

func TestMethodBreakdownAccentInsensitive(t *testing.T) {
	rows := [][]string{
		{"DATA", "CREDIARIO", "DEBITO"},
		{"01/09/2025", "100,00", "50,00"},
	}

	shares, found := MethodBreakdown(rows)
	require.True(t, found)
	assert.InDelta(t, 100.00, shareByMethod(t, shares, "Crediário").Amount, 0.001)
	assert.InDelta(t, 50.00, shareByMethod(t, shares, "Débito").Amount, 0.001)
}

func TestMethodBreakdownNoMethodColumns(t *testing.T) {
	rows := [][]string{
		{"DATA", "VALOR"},
		{"01/09/2025", "250,00"},
	}

	shares, found := MethodBreakdown(rows)
	assert.False(t, found)
	require.Len(t, shares, len(CanonicalMethods))
	for _, s := range shares {
		assert.Zero(t, s.Amount)
		assert.Zero(t, s.Percent)
	}
}

func TestMethodBreakdownEmptySheet(t *testing.T) {
	shares, found := MethodBreakdown(nil)
	assert.False(t, found)
	assert.Len(t, shares, len(CanonicalMethods))
}

func TestEntryBreakdown(t *testing.T) {
	records := []model.CashFlowRecord{
		{SaleAmount: 100.00, PaymentMethod: "pix"},
		{SaleAmount: 200.00, PaymentMethod: "Dinheiro"},
		{SaleAmount: 50.00, PaymentMethod: "cheque"}, // unknown method drops
		{InstallmentAmount: 80.00},
	}

	shares := EntryBreakdown(records)
	require.Len(t, shares, len(CanonicalMethods))

	assert.InDelta(t, 100.00, shareByMethod(t, shares, "PIX").Amount, 0.001)
	assert.InDelta(t, 200.00, shareByMethod(t, shares, "Dinheiro").Amount, 0.001)
	assert.InDelta(t, 80.00, shareByMethod(t, shares, "Crediário").Amount, 0.001)

	var totalPercent float64
	for _, s := range shares {
		totalPercent += s.Percent
	}
	assert.InDelta(t, 100.0, totalPercent, 0.1)
}
