// Package ledger merges the crediário contract sheet with the balance
// sheet and the month sheets into a unified client ledger with debt
// aging.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/rcfaria/fluxo/internal/extract"
	"github.com/rcfaria/fluxo/internal/match"
	"github.com/rcfaria/fluxo/internal/model"
	"github.com/rcfaria/fluxo/internal/parse"
	"github.com/rcfaria/fluxo/internal/service"
)

// Config names the sheets and columns the reconciler reads.
type Config struct {
	// ContractSheet groups purchases in triples of columns per client:
	// name, date, amount, repeated down the rows.
	ContractSheet string
	// BalanceSheet carries one client per row with the outstanding
	// balance (saldo devedor).
	BalanceSheet    string
	BalanceNameCol  int
	BalanceValueCol int
	// MonthSheets are scanned for installment payments, ordered oldest
	// to newest.
	MonthSheets []string
	// MinBalance excludes settled clients from the ledger.
	MinBalance float64
	// NoPaymentDays is the worst-case aging bucket used when no
	// payment is found anywhere.
	NoPaymentDays int
}

// DefaultConfig returns the production sheet names and thresholds.
func DefaultConfig() Config {
	return Config{
		ContractSheet:   "CREDIARIO POR CONTRATO",
		BalanceSheet:    "SALDO DEVEDOR",
		BalanceNameCol:  0,
		BalanceValueCol: 1,
		MinBalance:      1.0,
		NoPaymentDays:   999,
	}
}

// Reconciler builds the client ledger. All sheet access goes through
// the injected provider, normally the cache.
type Reconciler struct {
	provider   service.SheetProvider
	classifier *parse.Classifier
	overrides  *match.OverrideTable
	logger     *slog.Logger
	now        func() time.Time
	config     Config
	layout     extract.Layout
}

// NewReconciler wires a reconciler from its collaborators. overrides
// may be nil when no aging overrides are configured.
func NewReconciler(provider service.SheetProvider, config Config, layout extract.Layout, overrides *match.OverrideTable, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		provider:   provider,
		config:     config,
		layout:     layout,
		classifier: parse.NewClassifier(),
		overrides:  overrides,
		logger:     logger,
		now:        time.Now,
	}
}

// BuildLedger assembles the active client ledger: contract purchases,
// balance enrichment, payment history and aging. A single client's
// enrichment failure defaults that client to the worst-case aging
// bucket instead of aborting the batch. Clients with a balance below
// the configured minimum are dropped as settled.
func (r *Reconciler) BuildLedger(ctx context.Context) ([]model.Client, error) {
	clients, err := r.buildFromContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("contract sheet: %w", err)
	}

	r.enrichBalances(ctx, clients)
	r.collectPayments(ctx, clients)
	r.applyAging(clients)

	active := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if c.OutstandingBalance < r.config.MinBalance {
			continue
		}
		active = append(active, *c)
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].OutstandingBalance > active[j].OutstandingBalance
	})

	return active, nil
}

// FindClient looks a client up by free-text name in an already built
// ledger, using the purchase-history matching profile.
func (r *Reconciler) FindClient(clients []model.Client, query string) (*model.Client, bool) {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}

	name, ok := match.Best(query, names, match.PurchaseProfile)
	if !ok {
		return nil, false
	}
	for i := range clients {
		if clients[i].Name == name {
			return &clients[i], true
		}
	}
	return nil, false
}

// buildFromContracts extracts (name, date, amount) purchase triples
// from the contract sheet's grouped columns. Duplicate names collapse
// to the first occurrence.
func (r *Reconciler) buildFromContracts(ctx context.Context) ([]*model.Client, error) {
	rows, err := r.provider.FetchSheet(ctx, r.config.ContractSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	byKey := make(map[string]*model.Client)
	var order []*model.Client

	for group := 0; group*3+2 < width; group++ {
		nameCol, dateCol, valueCol := group*3, group*3+1, group*3+2

		current := ""
		for _, row := range rows[1:] {
			name := cell(row, nameCol)
			if name != "" {
				if r.classifier.IsSummaryRow([]string{name}) {
					current = ""
					continue
				}
				current = name
			}
			if current == "" {
				continue
			}

			date := cell(row, dateCol)
			amount := parse.Currency(cell(row, valueCol))
			if amount <= 0 || !parse.LooksLikeDate(date, false) {
				continue
			}

			key := model.NormalizeClientName(current)
			client, ok := byKey[key]
			if !ok {
				client = &model.Client{Name: key}
				byKey[key] = client
				order = append(order, client)
			}
			client.Purchases = append(client.Purchases, model.Purchase{Date: date, Amount: amount})
			client.TotalSales += amount
		}
	}

	return order, nil
}

// enrichBalances resolves each client's outstanding balance from the
// balance sheet via first+last token matching. A client with no match
// falls back to an estimated balance of half the total purchases; the
// estimate is flagged, never silent.
func (r *Reconciler) enrichBalances(ctx context.Context, clients []*model.Client) {
	rows, err := r.provider.FetchSheet(ctx, r.config.BalanceSheet)
	if err != nil {
		r.logger.Warn("balance sheet unavailable, estimating all balances", "error", err)
		rows = nil
	}

	names := make([]string, 0, len(rows))
	balances := make(map[string]float64, len(rows))
	for i, row := range rows {
		if i == 0 || r.classifier.IsSummaryRow(row) {
			continue
		}
		name := cell(row, r.config.BalanceNameCol)
		if name == "" {
			continue
		}
		names = append(names, name)
		balances[name] = parse.Currency(cell(row, r.config.BalanceValueCol))
	}

	for _, client := range clients {
		if matched, ok := match.Best(client.Name, names, match.BalanceProfile); ok {
			client.OutstandingBalance = balances[matched]
			continue
		}
		client.OutstandingBalance = client.TotalSales * 0.5
		client.BalanceEstimated = true
	}
}

// monthPayment records in which month sheet a payment was found.
type monthPayment struct {
	payment    model.Payment
	monthIndex int
}

// collectPayments scans every month sheet for installment payments
// matching each client, deduplicated by (date, amount).
func (r *Reconciler) collectPayments(ctx context.Context, clients []*model.Client) {
	type sheetScan struct {
		payments map[string][]model.Payment
		names    []string
	}

	scans := make([]sheetScan, 0, len(r.config.MonthSheets))
	for _, sheetName := range r.config.MonthSheets {
		rows, err := r.provider.FetchSheet(ctx, sheetName)
		if err != nil {
			r.logger.Warn("skipping month sheet for payment history",
				"sheet", sheetName,
				"error", err)
			scans = append(scans, sheetScan{})
			continue
		}

		scan := sheetScan{payments: make(map[string][]model.Payment)}
		seen := make(map[string]bool)
		for i, row := range rows {
			if i == 0 || r.classifier.IsSummaryRow(row) {
				continue
			}
			name := cell(row, r.layout.InstallmentClient)
			amount := parse.Currency(cell(row, r.layout.InstallmentValue))
			if name == "" || amount <= 0 {
				continue
			}
			date := cell(row, r.layout.InstallmentDate)

			if !seen[name] {
				seen[name] = true
				scan.names = append(scan.names, name)
			}
			scan.payments[name] = append(scan.payments[name], model.Payment{Date: date, Amount: amount})
		}
		scans = append(scans, scan)
	}

	for _, client := range clients {
		dedup := make(map[string]bool)
		lastMonth := -1

		for monthIdx, scan := range scans {
			if len(scan.names) == 0 {
				continue
			}
			matched, ok := match.Best(client.Name, scan.names, match.PaymentProfile)
			if !ok {
				continue
			}
			for _, p := range scan.payments[matched] {
				key := fmt.Sprintf("%s|%.2f", p.Date, p.Amount)
				if dedup[key] {
					continue
				}
				dedup[key] = true
				client.Payments = append(client.Payments, p)
				if monthIdx > lastMonth {
					lastMonth = monthIdx
				}
			}
		}

		r.stampLastPaymentMonth(client, lastMonth)
	}
}

// stampLastPaymentMonth records the months-back offset of the most
// recent sheet holding a matched payment, via DaysSinceLastPayment in
// applyAging. A negative index means no payment anywhere.
func (r *Reconciler) stampLastPaymentMonth(client *model.Client, lastMonth int) {
	if lastMonth < 0 {
		client.DaysSinceLastPayment = -1
		return
	}

	tag := r.config.MonthSheets[lastMonth]
	paymentMonth, err := model.ParseMonthTag(tag)
	if err != nil {
		r.logger.Warn("unparseable month tag, using worst-case aging",
			"sheet", tag,
			"client", client.Name,
			"error", err)
		client.DaysSinceLastPayment = -1
		return
	}

	offset := model.MonthsBetween(paymentMonth, r.now())
	if offset < 0 {
		offset = 0
	}
	client.DaysSinceLastPayment = (offset + 1) * 30
}

// applyAging finalizes day counts and overdue flags. The 30-day bucket
// table maps month offsets to days: a payment in the current month is
// 30 days, one month back 60, two months back 90. Exactly 60 days is
// not overdue; anything above is. Configured per-name overrides win
// over computed values.
func (r *Reconciler) applyAging(clients []*model.Client) {
	for _, client := range clients {
		if days, ok := r.overrides.Lookup(client.Name); ok {
			client.DaysSinceLastPayment = days
			client.Overdue60 = days > 60
			continue
		}

		if client.DaysSinceLastPayment < 0 {
			client.DaysSinceLastPayment = r.config.NoPaymentDays
			client.Overdue60 = true
			continue
		}

		client.Overdue60 = client.DaysSinceLastPayment > 60
	}
}

// SetClock overrides the reconciler's notion of now; used by tests.
func (r *Reconciler) SetClock(now func() time.Time) {
	r.now = now
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
