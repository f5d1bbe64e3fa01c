package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRows(t *testing.T) {
	imp := NewImporter(nil, nil)

	rows := [][]string{
		{"RELATÓRIO DE VENDAS POR DEPARTAMENTO"}, // report title above the header
		{"Departamento", "Custo Médio", "D. Estoque", "PMP", "Meta IA", "Venda R$", "Margem 24", "Margem 25", "% Variação"},
		{"2 - MAGAZINE", "10,50", "45", "30", "5000", "12.345,67", "22,5", "24,1", "1,6"},
		{"5 - ELETRO", "99,90", "60", "28", "8000", "45.000,00", "18,0", "19,5", "1,5"},
	}

	records, err := imp.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 2, first.Department)
	assert.Equal(t, "MAGAZINE", first.DepartmentName)
	assert.InDelta(t, 10.50, first.AverageCost, 0.001)
	assert.InDelta(t, 45, first.StockDays, 0.001)
	assert.InDelta(t, 30, first.PMP, 0.001)
	assert.InDelta(t, 5000, first.TargetIA, 0.001)
	assert.InDelta(t, 12345.67, first.Sales, 0.001)
	assert.InDelta(t, 22.5, first.Margin24, 0.001)
	assert.InDelta(t, 24.1, first.Margin25, 0.001)
	assert.InDelta(t, 1.6, first.VariationPct, 0.001)

	assert.Equal(t, 5, records[1].Department)
	assert.Equal(t, "ELETRO", records[1].DepartmentName)
}

func TestMapRowsColumnOrderDoesNotMatter(t *testing.T) {
	imp := NewImporter(nil, nil)

	rows := [][]string{
		{"Venda R$", "Departamento"},
		{"1.000,00", "3 - MODA"},
	}

	records, err := imp.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Department)
	assert.InDelta(t, 1000.00, records[0].Sales, 0.001)
}

func TestMapRowsAccentlessHeaders(t *testing.T) {
	imp := NewImporter(nil, nil)

	rows := [][]string{
		{"departamento", "custo medio", "venda r$", "% variacao"},
		{"7 - INFORMATICA", "55,00", "2.500,00", "0,9"},
	}

	records, err := imp.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 55.00, records[0].AverageCost, 0.001)
	assert.InDelta(t, 0.9, records[0].VariationPct, 0.001)
}

func TestMapRowsSkipsBadRows(t *testing.T) {
	imp := NewImporter(nil, nil)

	rows := [][]string{
		{"Departamento", "Venda R$"},
		{"2 - MAGAZINE", "1.000,00"},
		{"sem código", "500,00"}, // department cell unparseable
		{"", ""},
		{"4 - LAR", "750,00"},
	}

	records, err := imp.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Department)
	assert.Equal(t, 4, records[1].Department)
}

func TestMapRowsNoHeader(t *testing.T) {
	imp := NewImporter(nil, nil)

	_, err := imp.MapRows([][]string{
		{"coluna a", "coluna b"},
		{"1", "2"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognizable header")
}

func TestParseDepartment(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		wantCode int
		wantName string
		wantErr  bool
	}{
		{name: "code dash name", cell: "2 - MAGAZINE", wantCode: 2, wantName: "MAGAZINE"},
		{name: "bare code", cell: "15", wantCode: 15},
		{name: "no spaces around dash", cell: "7-INFORMATICA", wantCode: 7, wantName: "INFORMATICA"},
		{name: "empty", cell: "", wantErr: true},
		{name: "text only", cell: "MAGAZINE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, name, err := parseDepartment(tt.cell)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
