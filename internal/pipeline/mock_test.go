package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/growthlens/investscan/internal/extract"
	"github.com/growthlens/investscan/internal/model"
)

// --- Provider Mock ---

type mockProvider struct {
	mock.Mock
	name string
}

func (m *mockProvider) Name() string {
	if m.name != "" {
		return m.name
	}
	return "mock"
}

func (m *mockProvider) Discover(ctx context.Context, state, window string, limit int) ([]model.DiscoveredItem, error) {
	args := m.Called(ctx, state, window, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiscoveredItem), args.Error(1)
}

// --- Fetcher Mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Text(ctx context.Context, url string) string {
	args := m.Called(ctx, url)
	return args.String(0)
}

// --- Extractor Mock ---

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, items []model.DiscoveredItem) *extract.Result {
	args := m.Called(ctx, items)
	return args.Get(0).(*extract.Result)
}
