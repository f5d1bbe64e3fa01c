package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOAuthConfig() Config {
	cfg := DefaultConfig()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.RefreshToken = "refresh-token"
	cfg.SpreadsheetID = "spreadsheet-id"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errMsg  string
		wantErr bool
	}{
		{
			name:   "valid oauth config",
			mutate: func(_ *Config) {},
		},
		{
			name: "valid service account config",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
				c.ServiceAccountPath = "/etc/fluxo/sa.json"
			},
		},
		{
			name: "no auth method",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
			},
			wantErr: true,
			errMsg:  "no authentication method",
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/etc/fluxo/sa.json"
			},
			wantErr: true,
			errMsg:  "multiple authentication methods",
		},
		{
			name: "missing spreadsheet id",
			mutate: func(c *Config) {
				c.SpreadsheetID = ""
			},
			wantErr: true,
			errMsg:  "spreadsheet id",
		},
		{
			name: "non-positive call timeout",
			mutate: func(c *Config) {
				c.CallTimeout = 0
			},
			wantErr: true,
			errMsg:  "call timeout",
		},
		{
			name: "negative pacing delay",
			mutate: func(c *Config) {
				c.PacingDelay = -time.Second
			},
			wantErr: true,
			errMsg:  "pacing delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validOAuthConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FLUXO_SHEETS_CLIENT_ID", "env-client")
	t.Setenv("FLUXO_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("FLUXO_SHEETS_REFRESH_TOKEN", "env-token")
	t.Setenv("FLUXO_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("FLUXO_SHEETS_SPREADSHEET_ID", "env-sheet")

	var cfg Config
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "env-sheet", cfg.SpreadsheetID)
}

func TestLoadFromEnvMissingCredentials(t *testing.T) {
	t.Setenv("FLUXO_SHEETS_CLIENT_ID", "")
	t.Setenv("FLUXO_SHEETS_CLIENT_SECRET", "")
	t.Setenv("FLUXO_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("FLUXO_SHEETS_SERVICE_ACCOUNT_PATH", "")

	var cfg Config
	require.Error(t, cfg.LoadFromEnv())
}

func TestLoadFromEnvKeepsExistingSpreadsheetID(t *testing.T) {
	t.Setenv("FLUXO_SHEETS_SERVICE_ACCOUNT_PATH", "/etc/fluxo/sa.json")
	t.Setenv("FLUXO_SHEETS_SPREADSHEET_ID", "")

	cfg := Config{SpreadsheetID: "configured-sheet"}
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, "configured-sheet", cfg.SpreadsheetID)
}
