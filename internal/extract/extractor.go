package extract

import (
	"log/slog"
	"math"
	"strings"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/rcfaria/fluxo/internal/parse"
)

// Extractor maps classified month-sheet rows into cash-flow records by
// fixed column position.
type Extractor struct {
	classifier *parse.Classifier
	logger     *slog.Logger
	layout     Layout
}

// NewExtractor creates an extractor for the given column layout.
func NewExtractor(layout Layout, classifier *parse.Classifier, logger *slog.Logger) *Extractor {
	if classifier == nil {
		classifier = parse.NewClassifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		layout:     layout,
		classifier: classifier,
		logger:     logger,
	}
}

// Records extracts every usable row of a month sheet. Summary rows and
// rows with no positive amount are dropped; a malformed row is skipped
// with a warning and never aborts the sheet pass.
func (e *Extractor) Records(monthTag string, rows [][]string) []model.CashFlowRecord {
	records := make([]model.CashFlowRecord, 0, len(rows))

	for i, row := range rows {
		if !e.classifier.Include(i, row) {
			continue
		}

		rec, ok := e.extractRow(monthTag, row)
		if !ok {
			e.logger.Warn("skipping row with no extractable values",
				"sheet", monthTag,
				"row", i)
			continue
		}
		records = append(records, rec)
	}

	if e.layout.TotalTolerance > 0 {
		records = e.suppressEmbeddedTotals(monthTag, records)
	}

	return records
}

// extractRow builds one record from a classified row. The second
// return is false when no monetary field parses to a positive value.
func (e *Extractor) extractRow(monthTag string, row []string) (model.CashFlowRecord, bool) {
	rec := model.CashFlowRecord{
		MonthTag: monthTag,
		Source:   model.SourceSheet,

		SaleAmount:        parse.Currency(cellAt(row, e.layout.SaleValue)),
		ExpenseAmount:     parse.Currency(cellAt(row, e.layout.ExpenseValue)),
		InstallmentAmount: parse.Currency(cellAt(row, e.layout.InstallmentValue)),

		PaymentMethod:      strings.TrimSpace(cellAt(row, e.layout.PaymentMethod)),
		ExpenseDescription: strings.TrimSpace(cellAt(row, e.layout.ExpenseDesc)),
		InstallmentClient:  strings.TrimSpace(cellAt(row, e.layout.InstallmentClient)),
	}

	if !rec.HasValue() {
		return model.CashFlowRecord{}, false
	}

	if t, ok := parse.Date(cellAt(row, e.layout.SaleDate)); ok {
		rec.SaleDate = t
	}
	if t, ok := parse.Date(cellAt(row, e.layout.ExpenseDate)); ok {
		rec.ExpenseDate = t
	}
	if t, ok := parse.Date(cellAt(row, e.layout.InstallmentDate)); ok {
		rec.InstallmentDate = t
	}

	return rec, true
}

// suppressEmbeddedTotals zeroes expense and installment values that
// equal the sum of all other values in the same column, within the
// configured tolerance. Such a value is almost certainly a total row
// whose keyword the classifier did not catch. Best effort: it needs at
// least three positive values in the column to judge.
func (e *Extractor) suppressEmbeddedTotals(monthTag string, records []model.CashFlowRecord) []model.CashFlowRecord {
	e.suppressColumn(monthTag, records, "expense",
		func(r *model.CashFlowRecord) *float64 { return &r.ExpenseAmount })
	e.suppressColumn(monthTag, records, "installment",
		func(r *model.CashFlowRecord) *float64 { return &r.InstallmentAmount })

	kept := records[:0]
	for _, rec := range records {
		if rec.HasValue() {
			kept = append(kept, rec)
		}
	}
	return kept
}

func (e *Extractor) suppressColumn(monthTag string, records []model.CashFlowRecord, column string, field func(*model.CashFlowRecord) *float64) {
	var sum float64
	var positives int
	for i := range records {
		v := *field(&records[i])
		sum += v
		if v > 0 {
			positives++
		}
	}
	if positives < 3 {
		return
	}

	for i := range records {
		v := field(&records[i])
		if *v <= 0 {
			continue
		}
		rest := sum - *v
		if math.Abs(*v-rest) <= e.layout.TotalTolerance {
			e.logger.Warn("suppressing embedded total value",
				"sheet", monthTag,
				"column", column,
				"value", *v)
			*v = 0
		}
	}
}
