package sheets

import (
	"context"
	"sync"

	"github.com/rcfaria/fluxo/internal/common"
	"github.com/rcfaria/fluxo/internal/service"
)

// MockProvider is an in-memory sheet provider for testing.
type MockProvider struct {
	// FetchFunc, when set, overrides the default lookup behavior.
	FetchFunc func(ctx context.Context, name string) ([][]string, error)
	Sheets    map[string][][]string
	Err       error
	Calls     []string
	mu        sync.Mutex
}

var _ service.SheetProvider = (*MockProvider)(nil)

// NewMockProvider creates a mock provider serving the given sheets.
func NewMockProvider(sheets map[string][][]string) *MockProvider {
	if sheets == nil {
		sheets = make(map[string][][]string)
	}
	return &MockProvider{Sheets: sheets}
}

// FetchSheet implements service.SheetProvider.
func (m *MockProvider) FetchSheet(ctx context.Context, name string) ([][]string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, name)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	data, ok := m.Sheets[name]
	if !ok {
		return nil, common.ErrSheetUnavailable
	}
	return data, nil
}

// CallCount returns how many fetches were made for a sheet name.
func (m *MockProvider) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.Calls {
		if c == name {
			count++
		}
	}
	return count
}
