package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rcfaria/fluxo/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(marker string) [][]string {
	return [][]string{{"DATA", "VALOR"}, {"01/09/2025", marker}}
}

func newTestCache(provider *MockProvider) (*Cache, *time.Time) {
	cache := NewCache(provider, CacheConfig{
		TTL:          5 * time.Minute,
		LedgerTTL:    10 * time.Minute,
		LedgerSheets: []string{"SALDO DEVEDOR"},
	}, nil)

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestCacheServesFreshEntry(t *testing.T) {
	provider := NewMockProvider(map[string][][]string{
		"SETEMBRO25": testGrid("100,00"),
	})
	cache, now := newTestCache(provider)
	ctx := context.Background()

	first, err := cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)
	assert.Equal(t, testGrid("100,00"), first)

	// Within the TTL the provider must not be hit again.
	*now = now.Add(4 * time.Minute)
	_, err = cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.CallCount("SETEMBRO25"))
}

func TestCacheRefetchesAfterTTL(t *testing.T) {
	provider := NewMockProvider(map[string][][]string{
		"SETEMBRO25": testGrid("100,00"),
	})
	cache, now := newTestCache(provider)
	ctx := context.Background()

	_, err := cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)

	provider.Sheets["SETEMBRO25"] = testGrid("200,00")
	*now = now.Add(6 * time.Minute)

	got, err := cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)
	assert.Equal(t, testGrid("200,00"), got)
	assert.Equal(t, 2, provider.CallCount("SETEMBRO25"))
}

func TestCacheLedgerSheetsGetLongerTTL(t *testing.T) {
	provider := NewMockProvider(map[string][][]string{
		"SALDO DEVEDOR": testGrid("1.000,00"),
	})
	cache, now := newTestCache(provider)
	ctx := context.Background()

	_, err := cache.FetchSheet(ctx, "SALDO DEVEDOR")
	require.NoError(t, err)

	// 6 minutes would expire a month sheet but not a ledger sheet.
	*now = now.Add(6 * time.Minute)
	_, err = cache.FetchSheet(ctx, "SALDO DEVEDOR")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.CallCount("SALDO DEVEDOR"))

	*now = now.Add(5 * time.Minute)
	_, err = cache.FetchSheet(ctx, "SALDO DEVEDOR")
	require.NoError(t, err)
	assert.Equal(t, 2, provider.CallCount("SALDO DEVEDOR"))
}

func TestCacheServesStaleOnFetchFailure(t *testing.T) {
	provider := NewMockProvider(map[string][][]string{
		"SETEMBRO25": testGrid("100,00"),
	})
	cache, now := newTestCache(provider)
	ctx := context.Background()

	_, err := cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)

	provider.Err = errors.New("quota exceeded")
	*now = now.Add(time.Hour)

	got, err := cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)
	assert.Equal(t, testGrid("100,00"), got)
}

func TestCachePropagatesFailureWithoutStaleEntry(t *testing.T) {
	provider := NewMockProvider(nil)
	cache, _ := newTestCache(provider)

	_, err := cache.FetchSheet(context.Background(), "SETEMBRO25")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSheetUnavailable)
}

func TestCacheInvalidate(t *testing.T) {
	provider := NewMockProvider(map[string][][]string{
		"SETEMBRO25": testGrid("100,00"),
	})
	cache, _ := newTestCache(provider)
	ctx := context.Background()

	_, err := cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)

	cache.Invalidate("SETEMBRO25")

	_, err = cache.FetchSheet(ctx, "SETEMBRO25")
	require.NoError(t, err)
	assert.Equal(t, 2, provider.CallCount("SETEMBRO25"))
}

func TestCacheSyncGuard(t *testing.T) {
	cache, _ := newTestCache(NewMockProvider(nil))

	require.True(t, cache.TryBeginSync())
	// An overlapping request must be dropped, not queued.
	assert.False(t, cache.TryBeginSync())

	cache.EndSync()
	assert.True(t, cache.TryBeginSync())
	cache.EndSync()
}
