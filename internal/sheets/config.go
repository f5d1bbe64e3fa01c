// Package sheets provides the spreadsheet-service client and the
// time-bounded cache that fronts it.
package sheets

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the sheet provider.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string

	// CallTimeout bounds each provider call; after it the call counts
	// as failed and the stale-cache fallback applies.
	CallTimeout time.Duration
	// PacingDelay is the blocking delay inserted between consecutive
	// provider calls to respect rate limits. It serializes fetches.
	PacingDelay   time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CallTimeout:   30 * time.Second,
		PacingDelay:   500 * time.Millisecond,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads credentials from environment variables.
func (c *Config) LoadFromEnv() error {
	c.ClientID = os.Getenv("FLUXO_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("FLUXO_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("FLUXO_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("FLUXO_SHEETS_SERVICE_ACCOUNT_PATH")

	if id := os.Getenv("FLUXO_SHEETS_SPREADSHEET_ID"); id != "" {
		c.SpreadsheetID = id
	}

	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing sheet credentials: provide either a service account path or OAuth2 credentials")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured")
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive")
	}
	if c.PacingDelay < 0 {
		return fmt.Errorf("pacing delay cannot be negative")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}

	return nil
}
