package storage

import (
	"context"
	"fmt"

	"github.com/rcfaria/fluxo/internal/model"
)

// ReplaceSales clears the previous upload and inserts the new report
// in one transaction.
func (s *SQLiteStorage) ReplaceSales(ctx context.Context, records []model.SalesRecord) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sales_data`); err != nil {
		return 0, fmt.Errorf("failed to delete prior sales data: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales_data (
			department, department_name, average_cost, stock_days, pmp,
			target_ia, sales, margin_24, margin_25, variation_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Department, rec.DepartmentName, rec.AverageCost, rec.StockDays, rec.PMP,
			rec.TargetIA, rec.Sales, rec.Margin24, rec.Margin25, rec.VariationPct,
		); err != nil {
			return 0, fmt.Errorf("failed to insert sales record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return len(records), nil
}

// GetSales returns every stored sales record.
func (s *SQLiteStorage) GetSales(ctx context.Context) ([]model.SalesRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT department, COALESCE(department_name, ''), average_cost, stock_days, pmp,
			target_ia, sales, margin_24, margin_25, variation_pct, uploaded_at
		FROM sales_data ORDER BY department
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales data: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.SalesRecord
	for rows.Next() {
		var rec model.SalesRecord
		if err := rows.Scan(&rec.Department, &rec.DepartmentName, &rec.AverageCost,
			&rec.StockDays, &rec.PMP, &rec.TargetIA, &rec.Sales,
			&rec.Margin24, &rec.Margin25, &rec.VariationPct, &rec.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SalesSummary aggregates the uploaded report: total sales, mean
// margins and variation, department count and the top departments by
// sales.
func (s *SQLiteStorage) SalesSummary(ctx context.Context, topDepartments int) (*model.SalesSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if topDepartments <= 0 {
		topDepartments = 5
	}

	summary := &model.SalesSummary{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(sales), 0), COALESCE(AVG(margin_24), 0),
			COALESCE(AVG(margin_25), 0), COALESCE(AVG(variation_pct), 0), COUNT(*)
		FROM sales_data
	`).Scan(&summary.TotalSales, &summary.MeanMargin24, &summary.MeanMargin25,
		&summary.MeanVariation, &summary.DepartmentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales data: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT department, sales, margin_24, margin_25, variation_pct
		FROM sales_data ORDER BY sales DESC LIMIT ?
	`, topDepartments)
	if err != nil {
		return nil, fmt.Errorf("failed to query top departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var d model.DepartmentSlice
		if err := rows.Scan(&d.Department, &d.Sales, &d.Margin24, &d.Margin25, &d.VariationPct); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		summary.TopDepartments = append(summary.TopDepartments, d)
	}

	return summary, rows.Err()
}

// DepartmentSlices returns per-department figures for chart views.
func (s *SQLiteStorage) DepartmentSlices(ctx context.Context) ([]model.DepartmentSlice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT department, sales, margin_24, margin_25, variation_pct
		FROM sales_data ORDER BY department
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var slices []model.DepartmentSlice
	for rows.Next() {
		var d model.DepartmentSlice
		if err := rows.Scan(&d.Department, &d.Sales, &d.Margin24, &d.Margin25, &d.VariationPct); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		slices = append(slices, d)
	}

	return slices, rows.Err()
}
