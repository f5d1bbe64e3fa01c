package extract

import (
	"testing"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheetRow builds a 17-column row and fills the named positions.
func sheetRow(cells map[int]string) []string {
	row := make([]string, 17)
	for idx, v := range cells {
		row[idx] = v
	}
	return row
}

func TestExtractorRecords(t *testing.T) {
	e := NewExtractor(DefaultLayout(), nil, nil)

	rows := [][]string{
		sheetRow(map[int]string{0: "DATA", 1: "VALOR", 4: "FORMA"}),
		sheetRow(map[int]string{0: "01/09/2025", 1: "R$ 150,00", 4: "PIX"}),
		sheetRow(map[int]string{0: "02/09/2025", 1: "1.200,00", 4: "Dinheiro",
			9: "02/09/2025", 10: "ALUGUEL", 11: "800,00"}),
		sheetRow(map[int]string{0: "03/09/2025",
			14: "03/09/2025", 15: "MARIA DA SILVA", 16: "50,00"}),
		// Summary and junk rows must vanish.
		sheetRow(map[int]string{0: "03/09/2025", 1: "TOTAL 9.999,99"}),
		sheetRow(map[int]string{}),
		sheetRow(map[int]string{0: "observação livre", 1: "100,00"}),
		// A classified row with no positive amount is dropped.
		sheetRow(map[int]string{0: "04/09/2025", 1: "R$  -"}),
	}

	records := e.Records("SETEMBRO25", rows)
	require.Len(t, records, 3)

	assert.InDelta(t, 150.00, records[0].SaleAmount, 0.001)
	assert.Equal(t, "PIX", records[0].PaymentMethod)
	assert.Equal(t, "SETEMBRO25", records[0].MonthTag)
	assert.Equal(t, model.SourceSheet, records[0].Source)
	assert.Equal(t, 1, records[0].SaleDate.Day())

	assert.InDelta(t, 1200.00, records[1].SaleAmount, 0.001)
	assert.InDelta(t, 800.00, records[1].ExpenseAmount, 0.001)
	assert.Equal(t, "ALUGUEL", records[1].ExpenseDescription)

	assert.InDelta(t, 50.00, records[2].InstallmentAmount, 0.001)
	assert.Equal(t, "MARIA DA SILVA", records[2].InstallmentClient)
	assert.Zero(t, records[2].SaleAmount)
}

func TestExtractorEmptySheet(t *testing.T) {
	e := NewExtractor(DefaultLayout(), nil, nil)

	assert.Empty(t, e.Records("SETEMBRO25", nil))
	assert.Empty(t, e.Records("SETEMBRO25", [][]string{
		sheetRow(map[int]string{0: "DATA"}),
	}))
}

func TestExtractorEveryRecordHasValue(t *testing.T) {
	e := NewExtractor(DefaultLayout(), nil, nil)

	rows := [][]string{
		sheetRow(map[int]string{0: "DATA"}),
		sheetRow(map[int]string{0: "01/09/2025", 1: "100,00"}),
		sheetRow(map[int]string{0: "02/09/2025", 1: "-50,00"}),
		sheetRow(map[int]string{0: "03/09/2025", 1: "abc"}),
	}

	records := e.Records("SETEMBRO25", rows)
	for _, rec := range records {
		assert.True(t, rec.HasValue())
	}
	assert.Len(t, records, 1)
}

func TestExtractorSuppressesEmbeddedTotal(t *testing.T) {
	e := NewExtractor(DefaultLayout(), nil, nil)

	// 100 + 200 + 300 = 600; the fourth value is a total row the
	// classifier missed, off by less than the tolerance.
	rows := [][]string{
		sheetRow(map[int]string{0: "DATA"}),
		sheetRow(map[int]string{0: "01/09/2025", 14: "01/09/2025", 15: "A", 16: "100,00"}),
		sheetRow(map[int]string{0: "02/09/2025", 14: "02/09/2025", 15: "B", 16: "200,00"}),
		sheetRow(map[int]string{0: "03/09/2025", 14: "03/09/2025", 15: "C", 16: "300,00"}),
		sheetRow(map[int]string{0: "04/09/2025", 14: "04/09/2025", 15: "D", 16: "600,30"}),
	}

	records := e.Records("SETEMBRO25", rows)
	require.Len(t, records, 3)

	var sum float64
	for _, rec := range records {
		sum += rec.InstallmentAmount
	}
	assert.InDelta(t, 600.00, sum, 0.001)
}

func TestExtractorTotalSuppressionNeedsThreePositives(t *testing.T) {
	e := NewExtractor(DefaultLayout(), nil, nil)

	// Two equal values would suppress each other; with fewer than three
	// positives the heuristic must stay out of the way.
	rows := [][]string{
		sheetRow(map[int]string{0: "DATA"}),
		sheetRow(map[int]string{0: "01/09/2025", 14: "01/09/2025", 15: "A", 16: "100,00"}),
		sheetRow(map[int]string{0: "02/09/2025", 14: "02/09/2025", 15: "B", 16: "100,00"}),
	}

	records := e.Records("SETEMBRO25", rows)
	require.Len(t, records, 2)
	assert.InDelta(t, 100.00, records[0].InstallmentAmount, 0.001)
	assert.InDelta(t, 100.00, records[1].InstallmentAmount, 0.001)
}

func TestExtractorToleranceDisabled(t *testing.T) {
	layout := DefaultLayout()
	layout.TotalTolerance = 0
	e := NewExtractor(layout, nil, nil)

	rows := [][]string{
		sheetRow(map[int]string{0: "DATA"}),
		sheetRow(map[int]string{0: "01/09/2025", 11: "100,00", 9: "01/09/2025"}),
		sheetRow(map[int]string{0: "02/09/2025", 11: "200,00", 9: "02/09/2025"}),
		sheetRow(map[int]string{0: "03/09/2025", 11: "300,00", 9: "03/09/2025"}),
		sheetRow(map[int]string{0: "04/09/2025", 11: "600,00", 9: "04/09/2025"}),
	}

	records := e.Records("SETEMBRO25", rows)
	assert.Len(t, records, 4)
}
