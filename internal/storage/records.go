package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcfaria/fluxo/internal/model"
)

// ReplaceRecords deletes every record carrying the given source tag and
// inserts the new set, all in one transaction, so a resync never leaves
// a half-replaced store. Last writer wins; there is no incremental
// merge.
func (s *SQLiteStorage) ReplaceRecords(ctx context.Context, source model.RecordSource, records []model.CashFlowRecord) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateSource(source); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cash_flow_records WHERE source = ?`, string(source)); err != nil {
		return 0, fmt.Errorf("failed to delete prior records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cash_flow_records (
			source, month_tag,
			sale_date, sale_amount, payment_method,
			expense_date, expense_description, expense_amount,
			installment_date, installment_client, installment_amount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, rec := range records {
		if !rec.HasValue() {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			string(source), rec.MonthTag,
			nullTime(rec.SaleDate), rec.SaleAmount, rec.PaymentMethod,
			nullTime(rec.ExpenseDate), rec.ExpenseDescription, rec.ExpenseAmount,
			nullTime(rec.InstallmentDate), rec.InstallmentClient, rec.InstallmentAmount,
		); err != nil {
			return 0, fmt.Errorf("failed to insert record: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return inserted, nil
}

// GetRecords returns the stored records for a source, optionally
// filtered by month tag.
func (s *SQLiteStorage) GetRecords(ctx context.Context, source model.RecordSource, monthTag string) ([]model.CashFlowRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSource(source); err != nil {
		return nil, err
	}

	query := `
		SELECT month_tag,
			sale_date, sale_amount, payment_method,
			expense_date, expense_description, expense_amount,
			installment_date, installment_client, installment_amount
		FROM cash_flow_records
		WHERE source = ?`
	args := []any{string(source)}
	if monthTag != "" {
		query += ` AND month_tag = ?`
		args = append(args, monthTag)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.CashFlowRecord
	for rows.Next() {
		var rec model.CashFlowRecord
		var saleDate, expenseDate, installmentDate sql.NullTime
		var method, desc, client sql.NullString

		if err := rows.Scan(&rec.MonthTag,
			&saleDate, &rec.SaleAmount, &method,
			&expenseDate, &desc, &rec.ExpenseAmount,
			&installmentDate, &client, &rec.InstallmentAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec.Source = source
		rec.SaleDate = saleDate.Time
		rec.ExpenseDate = expenseDate.Time
		rec.InstallmentDate = installmentDate.Time
		rec.PaymentMethod = method.String
		rec.ExpenseDescription = desc.String
		rec.InstallmentClient = client.String

		records = append(records, rec)
	}

	return records, rows.Err()
}

// nullTime maps the zero time to NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
