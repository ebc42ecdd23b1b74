package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/pkg/gdelt"
	"github.com/growthlens/investscan/pkg/gnews"
)

type stubGNewsClient struct {
	articles []gnews.Article
	err      error
	state    string
}

func (s *stubGNewsClient) Search(ctx context.Context, state string, opts ...gnews.SearchOption) ([]gnews.Article, error) {
	s.state = state
	return s.articles, s.err
}

type stubGDELTClient struct {
	articles []gdelt.Article
	err      error
}

func (s *stubGDELTClient) Search(ctx context.Context, state string, opts ...gdelt.SearchOption) ([]gdelt.Article, error) {
	return s.articles, s.err
}

func TestGNewsProviderDiscover(t *testing.T) {
	published := time.Date(2025, 2, 13, 10, 30, 0, 0, time.UTC)
	stub := &stubGNewsClient{articles: []gnews.Article{
		{Title: "Acme invests in Karnataka", URL: "https://example.com/a", Source: "The Hindu", Published: &published},
		{Title: "No date story", URL: "https://example.com/b", Source: "Mint"},
	}}

	prov := NewGNewsProvider(stub)
	assert.Equal(t, "gnews", prov.Name())

	items, err := prov.Discover(context.Background(), "Karnataka", "7d", 50)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Karnataka", stub.state)
	assert.Equal(t, "Acme invests in Karnataka", items[0].Title)
	assert.Equal(t, "https://example.com/a", items[0].URL)
	assert.Equal(t, "The Hindu", items[0].Source)
	assert.Equal(t, []string{"Karnataka"}, items[0].TaggedStates)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, "2025-02-13", *items[0].PublishedAt)
	assert.Nil(t, items[1].PublishedAt)
}

func TestGDELTProviderDiscover(t *testing.T) {
	stub := &stubGDELTClient{articles: []gdelt.Article{
		{Title: "Port expansion announced", URL: "https://news.example.com/port", Domain: "news.example.com", SeenDate: "20250212T081500Z"},
		{Title: "Bad date", URL: "https://news.example.com/bad", Domain: "news.example.com", SeenDate: "not-a-date"},
	}}

	prov := NewGDELTProvider(stub)
	assert.Equal(t, "gdelt", prov.Name())

	items, err := prov.Discover(context.Background(), "Gujarat", "7d", 50)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "news.example.com", items[0].Source)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, "2025-02-12", *items[0].PublishedAt)
	assert.Nil(t, items[1].PublishedAt)
}

func TestDiscoverMergesAcrossStatesAndProviders(t *testing.T) {
	// The same article surfaces under two states with cosmetically different
	// URLs; the merge must keep one item with both state tags.
	first := model.NewDiscoveredItem("Mega plant announced", "https://www.example.com/story", "", "Karnataka")
	second := model.NewDiscoveredItem("Mega plant announced", "http://example.com/story?ref=rss", "example.com", "Gujarat")
	second.PublishedAt = model.String("2025-02-10")

	p1 := &mockProvider{name: "gnews"}
	p1.On("Discover", mock.Anything, "Karnataka", "7d", 50).Return([]model.DiscoveredItem{first}, nil)
	p1.On("Discover", mock.Anything, "Gujarat", "7d", 50).Return(nil, nil)

	p2 := &mockProvider{name: "gdelt"}
	p2.On("Discover", mock.Anything, "Karnataka", "7d", 50).Return(nil, nil)
	p2.On("Discover", mock.Anything, "Gujarat", "7d", 50).Return([]model.DiscoveredItem{second}, nil)

	p := New(testConfig(), nil, []Provider{p1, p2}, &mockFetcher{}, nil, nil)
	items := p.discover(context.Background(), []string{"Karnataka", "Gujarat"}, "7d")

	require.Len(t, items, 1)
	assert.Equal(t, []string{"Karnataka", "Gujarat"}, items[0].TaggedStates)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, "2025-02-10", *items[0].PublishedAt)
	assert.Equal(t, "example.com", items[0].Source)
}

func TestDiscoverRespectsMaxRecords(t *testing.T) {
	cfg := testConfig()
	cfg.Discovery.MaxRecords = 1

	prov := &mockProvider{}
	prov.On("Discover", mock.Anything, "Karnataka", "7d", 50).Return([]model.DiscoveredItem{
		model.NewDiscoveredItem("First", "https://example.com/1", "", "Karnataka"),
		model.NewDiscoveredItem("Second", "https://example.com/2", "", "Karnataka"),
	}, nil)

	p := New(cfg, nil, []Provider{prov}, &mockFetcher{}, nil, nil)
	items := p.discover(context.Background(), []string{"Karnataka"}, "7d")

	require.Len(t, items, 1)
	assert.Equal(t, "First", items[0].Title)
}

func TestMergeDiscoveredSkipsBlankURLs(t *testing.T) {
	merged := mergeDiscovered([][]model.DiscoveredItem{{
		model.NewDiscoveredItem("No link", "", "", "Karnataka"),
		model.NewDiscoveredItem("Linked", "https://example.com/x", "", "Karnataka"),
	}})
	require.Len(t, merged, 1)
	assert.Equal(t, "Linked", merged[0].Title)
}
