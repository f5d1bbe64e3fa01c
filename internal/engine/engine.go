// Package engine orchestrates the extraction pipeline: it pulls sheets
// through the cache, turns them into records and KPIs, and owns the
// observable background sync job.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rcfaria/fluxo/internal/extract"
	"github.com/rcfaria/fluxo/internal/model"
	"github.com/rcfaria/fluxo/internal/service"
	"github.com/rcfaria/fluxo/internal/sheets"
)

// Config holds the engine's sheet list and fallback tables.
type Config struct {
	// MonthSheets in chronological order, oldest first.
	MonthSheets []string
	// PaymentFallbacks provides curated demonstrative figures for
	// months whose sheets carry no detectable method columns. Sheets
	// absent from the table get a zero-valued breakdown.
	PaymentFallbacks map[string][]model.MethodShare
}

// Engine wires the cache, extractor, aggregator and storage together.
type Engine struct {
	cache      *sheets.Cache
	storage    service.Storage
	extractor  *extract.Extractor
	aggregator *extract.Aggregator
	logger     *slog.Logger
	config     Config
	status     service.SyncStatus
	mu         sync.Mutex
}

// New creates an engine. storage may be nil for read-only dashboards;
// sync then extracts without persisting.
func New(cache *sheets.Cache, storage service.Storage, extractor *extract.Extractor, aggregator *extract.Aggregator, config Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cache:      cache,
		storage:    storage,
		extractor:  extractor,
		aggregator: aggregator,
		config:     config,
		logger:     logger,
		status:     service.SyncStatus{State: service.SyncIdle},
	}
}

// MonthKPIs extracts and aggregates one month sheet. Running it twice
// on unchanged input yields identical figures.
func (e *Engine) MonthKPIs(ctx context.Context, sheetName string) (model.MonthKPIs, error) {
	rows, err := e.cache.FetchSheet(ctx, sheetName)
	if err != nil {
		return model.MonthKPIs{}, fmt.Errorf("month %s: %w", sheetName, err)
	}

	records := e.extractor.Records(sheetName, rows)
	return e.aggregator.Month(sheetName, records), nil
}

// YearKPIs sums the KPIs of the given month sheets. A sheet that fails
// to load degrades the result to the remaining months instead of
// failing the whole query; the failure is logged and counted.
func (e *Engine) YearKPIs(ctx context.Context, sheetNames []string) (model.MonthKPIs, error) {
	months := make([]model.MonthKPIs, 0, len(sheetNames))
	failed := 0

	for _, name := range sheetNames {
		kpis, err := e.MonthKPIs(ctx, name)
		if err != nil {
			e.logger.Warn("skipping month in year aggregate", "sheet", name, "error", err)
			failed++
			continue
		}
		months = append(months, kpis)
	}

	if failed == len(sheetNames) && len(sheetNames) > 0 {
		return model.MonthKPIs{}, fmt.Errorf("no month sheet could be loaded")
	}

	return e.aggregator.Year(months), nil
}

// MethodBreakdown computes the payment-method split of one month. When
// the sheet has no recognizable method columns, the configured
// fallback figures for that month are served; months without a
// fallback entry get the zero-valued canonical set.
func (e *Engine) MethodBreakdown(ctx context.Context, sheetName string) ([]model.MethodShare, error) {
	rows, err := e.cache.FetchSheet(ctx, sheetName)
	if err != nil {
		return nil, fmt.Errorf("month %s: %w", sheetName, err)
	}

	shares, found := extract.MethodBreakdown(rows)
	if !found {
		if fallback, ok := e.config.PaymentFallbacks[sheetName]; ok {
			e.logger.Info("serving curated payment-method figures", "sheet", sheetName)
			return fallback, nil
		}
	}
	return shares, nil
}

// EntryBreakdown groups one month's receipts by payment method.
func (e *Engine) EntryBreakdown(ctx context.Context, sheetName string) ([]model.MethodShare, error) {
	rows, err := e.cache.FetchSheet(ctx, sheetName)
	if err != nil {
		return nil, fmt.Errorf("month %s: %w", sheetName, err)
	}

	records := e.extractor.Records(sheetName, rows)
	return extract.EntryBreakdown(records), nil
}

// SyncAll refreshes every configured month sheet and replaces the
// stored sheet-sourced records wholesale. At most one sync runs at a
// time; an overlapping request is dropped and reports ok=false.
// progress, when non-nil, is called after each sheet.
func (e *Engine) SyncAll(ctx context.Context, progress func(sheet string, done, total int)) (service.SyncStatus, bool) {
	if !e.cache.TryBeginSync() {
		e.logger.Info("sync already running, dropping request")
		return e.Status(), false
	}
	defer e.cache.EndSync()

	e.setState(service.SyncRunning)

	var all []model.CashFlowRecord
	okCount, failCount := 0, 0

	total := len(e.config.MonthSheets)
	for i, name := range e.config.MonthSheets {
		e.cache.Invalidate(name)
		rows, err := e.cache.FetchSheet(ctx, name)
		if err != nil {
			e.logger.Warn("sheet sync failed", "sheet", name, "error", err)
			failCount++
		} else {
			all = append(all, e.extractor.Records(name, rows)...)
			okCount++
		}
		if progress != nil {
			progress(name, i+1, total)
		}
	}

	result := fmt.Sprintf("%d sheets synced, %d failed", okCount, failCount)
	if e.storage != nil && okCount > 0 {
		inserted, err := e.storage.ReplaceRecords(ctx, model.SourceSheet, all)
		if err != nil {
			result = fmt.Sprintf("store replace failed: %v", err)
			e.logger.Error("failed to replace records", "error", err)
		} else {
			result = fmt.Sprintf("%d sheets synced, %d failed, %d records stored", okCount, failCount, inserted)
		}
	}

	e.mu.Lock()
	e.status = service.SyncStatus{
		State:      service.SyncIdle,
		LastSync:   time.Now(),
		LastResult: result,
		SheetsOK:   okCount,
		SheetsFail: failCount,
	}
	status := e.status
	e.mu.Unlock()

	return status, true
}

// StartBackground runs SyncAll on a fixed interval until the context
// is canceled. Failures are logged, never reported to a caller; the
// job's state is observable through Status.
func (e *Engine) StartBackground(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, ok := e.SyncAll(ctx, nil); !ok {
					e.logger.Info("background sync skipped, another sync in flight")
				}
			}
		}
	}()
}

// Status returns the current sync job status.
func (e *Engine) Status() service.SyncStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) setState(state service.SyncState) {
	e.mu.Lock()
	e.status.State = state
	e.mu.Unlock()
}
