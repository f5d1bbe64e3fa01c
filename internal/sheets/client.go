package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rcfaria/fluxo/internal/common"
	"github.com/rcfaria/fluxo/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client fetches raw cell grids from the Google Sheets API. It
// implements service.SheetProvider.
type Client struct {
	svc      *sheetsv4.Service
	logger   *slog.Logger
	lastCall time.Time
	config   Config
	mu       sync.Mutex
}

var _ service.SheetProvider = (*Client)(nil)

// NewClient creates a sheet provider from the given configuration.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		config: config,
		svc:    svc,
		logger: logger,
	}, nil
}

// FetchSheet returns the full cell grid of one named sheet. Calls are
// serialized with a fixed pacing delay between them, and each call is
// bounded by the configured timeout.
func (c *Client) FetchSheet(ctx context.Context, name string) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := c.config.PacingDelay - time.Since(c.lastCall); wait > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	c.lastCall = time.Now()

	callCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()

	var resp *sheetsv4.ValueRange
	retryOpts := service.RetryOptions{
		MaxAttempts:  c.config.RetryAttempts,
		InitialDelay: c.config.RetryDelay,
	}
	err := common.WithRetry(callCtx, func() error {
		var callErr error
		resp, callErr = c.svc.Spreadsheets.Values.Get(c.config.SpreadsheetID, name).
			Context(callCtx).Do()
		return callErr
	}, retryOpts)
	if err != nil {
		if callCtx.Err() != nil {
			return nil, fmt.Errorf("%w: %s", common.ErrProviderTimeout, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", common.ErrSheetUnavailable, name, err)
	}

	rows := toStringGrid(resp.Values)
	c.logger.Debug("fetched sheet", "sheet", name, "rows", len(rows))

	return rows, nil
}

// toStringGrid normalizes the API's untyped cells into trimmed strings.
func toStringGrid(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		rows[i] = cells
	}
	return rows
}

// createSheetsService authenticates with either a service account key
// file or an OAuth2 refresh token.
func createSheetsService(ctx context.Context, config Config) (*sheetsv4.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheetsv4.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheetsv4.SpreadsheetsReadonlyScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheetsv4.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
