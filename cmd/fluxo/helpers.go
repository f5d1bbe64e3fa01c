package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcfaria/fluxo/internal/engine"
	"github.com/rcfaria/fluxo/internal/extract"
	"github.com/rcfaria/fluxo/internal/ledger"
	"github.com/rcfaria/fluxo/internal/match"
	"github.com/rcfaria/fluxo/internal/model"
	"github.com/rcfaria/fluxo/internal/parse"
	"github.com/rcfaria/fluxo/internal/service"
	"github.com/rcfaria/fluxo/internal/sheets"
	"github.com/rcfaria/fluxo/internal/storage"
	"github.com/spf13/viper"
)

// setConfigDefaults registers every tunable with its production value.
func setConfigDefaults() {
	viper.SetDefault("sheets.month_sheets", []string{
		"JANEIRO25", "FEVEREIRO25", "MARCO25", "ABRIL25", "MAIO25", "JUNHO25",
		"JULHO25", "AGOSTO25", "SETEMBRO25", "OUTUBRO25", "NOVEMBRO25", "DEZEMBRO25",
	})
	viper.SetDefault("sheets.call_timeout", "30s")
	viper.SetDefault("sheets.pacing_delay", "500ms")
	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("cache.ledger_ttl", "10m")
	viper.SetDefault("extract.expense_ceiling", 0.0)
	viper.SetDefault("extract.total_tolerance", 0.50)

	layout := extract.DefaultLayout()
	viper.SetDefault("extract.columns.sale_date", layout.SaleDate)
	viper.SetDefault("extract.columns.sale_value", layout.SaleValue)
	viper.SetDefault("extract.columns.payment_method", layout.PaymentMethod)
	viper.SetDefault("extract.columns.expense_date", layout.ExpenseDate)
	viper.SetDefault("extract.columns.expense_description", layout.ExpenseDesc)
	viper.SetDefault("extract.columns.expense_value", layout.ExpenseValue)
	viper.SetDefault("extract.columns.installment_date", layout.InstallmentDate)
	viper.SetDefault("extract.columns.installment_client", layout.InstallmentClient)
	viper.SetDefault("extract.columns.installment_value", layout.InstallmentValue)
	viper.SetDefault("ledger.contract_sheet", "CREDIARIO POR CONTRATO")
	viper.SetDefault("ledger.balance_sheet", "SALDO DEVEDOR")
	viper.SetDefault("ledger.min_balance", 1.0)
}

func monthSheets() []string {
	return viper.GetStringSlice("sheets.month_sheets")
}

// newCache builds the sheet provider and wraps it with the TTL cache.
func newCache(ctx context.Context) (*sheets.Cache, error) {
	cfg := sheets.DefaultConfig()
	cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	cfg.ServiceAccountPath = viper.GetString("sheets.service_account_path")
	cfg.ClientID = viper.GetString("sheets.client_id")
	cfg.ClientSecret = viper.GetString("sheets.client_secret")
	cfg.RefreshToken = viper.GetString("sheets.refresh_token")
	cfg.CallTimeout = viper.GetDuration("sheets.call_timeout")
	cfg.PacingDelay = viper.GetDuration("sheets.pacing_delay")

	if cfg.ServiceAccountPath == "" && cfg.RefreshToken == "" {
		if err := cfg.LoadFromEnv(); err != nil {
			return nil, err
		}
	}

	client, err := sheets.NewClient(ctx, cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet client: %w", err)
	}

	cacheCfg := sheets.CacheConfig{
		TTL:       viper.GetDuration("cache.ttl"),
		LedgerTTL: viper.GetDuration("cache.ledger_ttl"),
		LedgerSheets: []string{
			viper.GetString("ledger.contract_sheet"),
			viper.GetString("ledger.balance_sheet"),
		},
	}

	return sheets.NewCache(client, cacheCfg, slog.Default()), nil
}

// newLayout reads the month-sheet column positions; a structural change
// to the sheet is fixed in config, not code.
func newLayout() extract.Layout {
	return extract.Layout{
		SaleDate:          viper.GetInt("extract.columns.sale_date"),
		SaleValue:         viper.GetInt("extract.columns.sale_value"),
		PaymentMethod:     viper.GetInt("extract.columns.payment_method"),
		ExpenseDate:       viper.GetInt("extract.columns.expense_date"),
		ExpenseDesc:       viper.GetInt("extract.columns.expense_description"),
		ExpenseValue:      viper.GetInt("extract.columns.expense_value"),
		InstallmentDate:   viper.GetInt("extract.columns.installment_date"),
		InstallmentClient: viper.GetInt("extract.columns.installment_client"),
		InstallmentValue:  viper.GetInt("extract.columns.installment_value"),
		TotalTolerance:    viper.GetFloat64("extract.total_tolerance"),
	}
}

func newExtractor() *extract.Extractor {
	return extract.NewExtractor(newLayout(), parse.NewClassifier(), slog.Default())
}

func newAggregator() *extract.Aggregator {
	return extract.NewAggregator(viper.GetFloat64("extract.expense_ceiling"), slog.Default())
}

// newEngine wires the dashboard engine; withStore controls whether
// synced records are persisted.
func newEngine(ctx context.Context, withStore bool) (*engine.Engine, func(), error) {
	cache, err := newCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var store service.Storage
	if withStore {
		s, err := openStorage(ctx)
		if err != nil {
			return nil, nil, err
		}
		store = s
		cleanup = func() { _ = s.Close() }
	}

	cfg := engine.Config{
		MonthSheets:      monthSheets(),
		PaymentFallbacks: paymentFallbacks(),
	}

	return engine.New(cache, store, newExtractor(), newAggregator(), cfg, slog.Default()), cleanup, nil
}

// newReconciler wires the crediário reconciler on top of the cache.
func newReconciler(ctx context.Context) (*ledger.Reconciler, error) {
	cache, err := newCache(ctx)
	if err != nil {
		return nil, err
	}

	cfg := ledger.DefaultConfig()
	cfg.ContractSheet = viper.GetString("ledger.contract_sheet")
	cfg.BalanceSheet = viper.GetString("ledger.balance_sheet")
	cfg.MinBalance = viper.GetFloat64("ledger.min_balance")
	cfg.MonthSheets = monthSheets()

	return ledger.NewReconciler(cache, cfg, newLayout(), agingOverrides(), slog.Default()), nil
}

func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	path := viper.GetString("database.path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "fluxo", "fluxo.db")
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// agingOverrides loads the per-client forced day counts. These are
// data patches for accounts whose history lives outside the sheets.
func agingOverrides() *match.OverrideTable {
	var overrides []match.AgingOverride
	if err := viper.UnmarshalKey("ledger.aging_overrides", &overrides); err != nil {
		slog.Warn("ignoring malformed aging overrides", "error", err)
		return nil
	}
	if len(overrides) == 0 {
		return nil
	}
	return match.NewOverrideTable(overrides)
}

// paymentFallbacks loads curated payment-method figures for months
// whose sheets carry no detectable method columns. viper lowercases
// map keys, so sheet and method names are folded back explicitly.
func paymentFallbacks() map[string][]model.MethodShare {
	raw := viper.GetStringMap("payments.fallbacks")
	if len(raw) == 0 {
		return nil
	}

	fallbacks := make(map[string][]model.MethodShare, len(raw))
	for sheet := range raw {
		amounts := viper.GetStringMapString("payments.fallbacks." + sheet)

		var total float64
		for _, v := range amounts {
			total += parse.Currency(v)
		}

		var shares []model.MethodShare
		for _, method := range extract.CanonicalMethods {
			amount := parse.Currency(amounts[strings.ToLower(method)])
			share := model.MethodShare{Method: method, Amount: amount}
			if total > 0 {
				share.Percent = amount / total * 100
			}
			shares = append(shares, share)
		}
		fallbacks[strings.ToUpper(sheet)] = shares
	}
	return fallbacks
}
