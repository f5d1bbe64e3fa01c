package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	tests := []struct {
		want time.Time
		name string
		raw  string
		ok   bool
	}{
		{
			name: "full year",
			raw:  "15/09/2025",
			want: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "single digit day and month",
			raw:  "1/9/2025",
			want: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "two digit year lands in the 2000s",
			raw:  "15/09/25",
			want: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "surrounding whitespace",
			raw:  " 15/09/2025 ",
			want: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "empty",
			raw:  "",
			ok:   false,
		},
		{
			name: "free text",
			raw:  "pendente",
			ok:   false,
		},
		{
			name: "iso format not accepted",
			raw:  "2025-09-15",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestLooksLikeDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		strict bool
		want   bool
	}{
		{name: "plausible date", raw: "15/09/2025", want: true},
		{name: "partial date", raw: "15/09", want: true},
		{name: "no slash", raw: "15-09-2025", want: false},
		{name: "slash without digits", raw: "n/a", want: false},
		{name: "out of range lenient", raw: "99/99", want: true},
		{name: "out of range strict", raw: "99/99", strict: true, want: false},
		{name: "month 13 strict", raw: "01/13/2025", strict: true, want: false},
		{name: "valid strict", raw: "31/12/2025", strict: true, want: true},
		{name: "empty", raw: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeDate(tt.raw, tt.strict))
		})
	}
}
