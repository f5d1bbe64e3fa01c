// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/rcfaria/fluxo/internal/model"
)

// SheetProvider yields the raw 2-D cell grid for a named sheet.
// Row 0 is the header; empty cells come back as "".
type SheetProvider interface {
	FetchSheet(ctx context.Context, name string) ([][]string, error)
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Cash-flow records are replaced wholesale per source tag: prior
	// records for the source are deleted before re-insertion.
	ReplaceRecords(ctx context.Context, source model.RecordSource, records []model.CashFlowRecord) (int, error)
	GetRecords(ctx context.Context, source model.RecordSource, monthTag string) ([]model.CashFlowRecord, error)

	// Uploaded sales reports, also last-writer-wins.
	ReplaceSales(ctx context.Context, records []model.SalesRecord) (int, error)
	GetSales(ctx context.Context) ([]model.SalesRecord, error)
	SalesSummary(ctx context.Context, topDepartments int) (*model.SalesSummary, error)
	DepartmentSlices(ctx context.Context) ([]model.DepartmentSlice, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// SyncState is the lifecycle of the background refresh job.
type SyncState string

// Sync states.
const (
	SyncIdle    SyncState = "idle"
	SyncRunning SyncState = "running"
)

// SyncStatus is the observable state of the sheet sync job.
type SyncStatus struct {
	LastSync   time.Time
	LastResult string
	State      SyncState
	SheetsOK   int
	SheetsFail int
}
