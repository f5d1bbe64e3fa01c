// Package importer ingests user-uploaded Excel sales reports. Unlike
// the month sheets, uploads carry clean named headers, so mapping is by
// header alias instead of column position.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/rcfaria/fluxo/internal/parse"
	"github.com/rcfaria/fluxo/internal/service"
	"github.com/xuri/excelize/v2"
)

// Accepted header aliases per field, matched case-insensitively as
// substrings. The report generator is not consistent about accents.
var fieldAliases = map[string][]string{
	"department":  {"departamento"},
	"averageCost": {"custo médio", "custo medio"},
	"stockDays":   {"d. estoque", "d estoque"},
	"pmp":         {"pmp"},
	"targetIA":    {"meta ia"},
	"sales":       {"venda r$", "venda"},
	"margin24":    {"margem 24"},
	"margin25":    {"margem 25"},
	"variation":   {"% variação", "% variacao", "variação", "variacao"},
}

// requiredFields must be present in a header row for it to count as
// the report header.
var requiredFields = []string{"department", "sales"}

// Importer parses uploaded reports and replaces the sales store.
type Importer struct {
	storage service.Storage
	logger  *slog.Logger
}

// NewImporter creates an importer writing to the given storage.
func NewImporter(storage service.Storage, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{storage: storage, logger: logger}
}

// Ingest reads an .xlsx report and replaces the stored sales data,
// returning the number of inserted records.
func (i *Importer) Ingest(ctx context.Context, r io.Reader) (int, error) {
	records, err := i.Parse(r)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("no valid rows found in upload")
	}

	return i.storage.ReplaceSales(ctx, records)
}

// Parse extracts sales records from an .xlsx report. Only the first
// sheet is read.
func (i *Importer) Parse(r io.Reader) ([]model.SalesRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	return i.MapRows(rows)
}

// MapRows maps raw rows with a named header into sales records. The
// header row is located by alias scan; rows failing to parse are
// skipped with a warning and never abort the upload.
func (i *Importer) MapRows(rows [][]string) ([]model.SalesRecord, error) {
	headerIdx, cols := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no recognizable header row found")
	}

	var records []model.SalesRecord
	for n, row := range rows[headerIdx+1:] {
		rec, err := mapRow(row, cols)
		if err != nil {
			i.logger.Warn("skipping upload row",
				"row", headerIdx+n+2,
				"error", err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// detectHeader scans for the first row whose cells cover the required
// fields, returning its index and the field→column map.
func detectHeader(rows [][]string) (int, map[string]int) {
	for idx, row := range rows {
		cols := make(map[string]int)
		for col, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name == "" {
				continue
			}
			for field, aliases := range fieldAliases {
				if _, taken := cols[field]; taken {
					continue
				}
				for _, alias := range aliases {
					if strings.Contains(name, alias) {
						cols[field] = col
						break
					}
				}
			}
		}

		ok := true
		for _, field := range requiredFields {
			if _, found := cols[field]; !found {
				ok = false
				break
			}
		}
		if ok {
			return idx, cols
		}
	}

	return 0, nil
}

func mapRow(row []string, cols map[string]int) (model.SalesRecord, error) {
	department, name, err := parseDepartment(cellValue(row, cols, "department"))
	if err != nil {
		return model.SalesRecord{}, err
	}

	return model.SalesRecord{
		Department:     department,
		DepartmentName: name,
		AverageCost:    numericCell(row, cols, "averageCost"),
		StockDays:      numericCell(row, cols, "stockDays"),
		PMP:            numericCell(row, cols, "pmp"),
		TargetIA:       numericCell(row, cols, "targetIA"),
		Sales:          numericCell(row, cols, "sales"),
		Margin24:       numericCell(row, cols, "margin24"),
		Margin25:       numericCell(row, cols, "margin25"),
		VariationPct:   numericCell(row, cols, "variation"),
	}, nil
}

// parseDepartment splits values like "2 - MAGAZINE" into the numeric
// code and the trailing name. A bare number is also accepted.
func parseDepartment(cell string) (int, string, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, "", fmt.Errorf("empty department cell")
	}

	name := ""
	if idx := strings.Index(s, "-"); idx >= 0 {
		name = strings.TrimSpace(s[idx+1:])
		s = strings.TrimSpace(s[:idx])
	}

	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, "", fmt.Errorf("invalid department code %q", cell)
	}

	return code, name, nil
}

// numericCell parses an upload cell, which is usually already
// dot-decimal; currency-formatted strings are handled as a fallback.
func numericCell(row []string, cols map[string]int, field string) float64 {
	s := cellValue(row, cols, field)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return f
	}
	return parse.Currency(s)
}

func cellValue(row []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
