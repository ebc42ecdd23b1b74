package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/pkg/gdelt"
	"github.com/growthlens/investscan/pkg/gnews"
)

// discoverConcurrency caps in-flight discovery searches across all states
// and providers.
const discoverConcurrency = 6

// Provider finds candidate announcements for one state.
type Provider interface {
	Name() string
	Discover(ctx context.Context, state, window string, limit int) ([]model.DiscoveredItem, error)
}

// GNewsProvider discovers articles through Google News RSS search.
type GNewsProvider struct {
	client gnews.Client
}

// NewGNewsProvider wraps a Google News client as a discovery provider.
func NewGNewsProvider(client gnews.Client) *GNewsProvider {
	return &GNewsProvider{client: client}
}

// Name implements Provider.
func (p *GNewsProvider) Name() string { return "gnews" }

// Discover implements Provider.
func (p *GNewsProvider) Discover(ctx context.Context, state, window string, limit int) ([]model.DiscoveredItem, error) {
	articles, err := p.client.Search(ctx, state, gnews.WithWindow(window), gnews.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	items := make([]model.DiscoveredItem, 0, len(articles))
	for _, a := range articles {
		item := model.NewDiscoveredItem(a.Title, a.URL, a.Source, state)
		if a.Published != nil {
			item.PublishedAt = model.String(a.Published.Format("2006-01-02"))
		}
		items = append(items, item)
	}
	return items, nil
}

// GDELTProvider discovers articles through the GDELT DOC 2.0 API.
type GDELTProvider struct {
	client gdelt.Client
}

// NewGDELTProvider wraps a GDELT client as a discovery provider.
func NewGDELTProvider(client gdelt.Client) *GDELTProvider {
	return &GDELTProvider{client: client}
}

// Name implements Provider.
func (p *GDELTProvider) Name() string { return "gdelt" }

// Discover implements Provider.
func (p *GDELTProvider) Discover(ctx context.Context, state, window string, limit int) ([]model.DiscoveredItem, error) {
	articles, err := p.client.Search(ctx, state, gdelt.WithWindow(window), gdelt.WithMaxRecords(limit))
	if err != nil {
		return nil, err
	}
	items := make([]model.DiscoveredItem, 0, len(articles))
	for _, a := range articles {
		item := model.NewDiscoveredItem(a.Title, a.URL, a.Domain, state)
		if seen, ok := a.SeenTime(); ok {
			item.PublishedAt = model.String(seen.Format("2006-01-02"))
		}
		items = append(items, item)
	}
	return items, nil
}

// discover fans out one search per state and provider, then merges the
// results. A failed search logs and contributes nothing; merge order is
// fixed by state then provider, so output does not depend on completion
// order.
func (p *Pipeline) discover(ctx context.Context, states []string, window string) []model.DiscoveredItem {
	type task struct {
		provider Provider
		state    string
	}
	var tasks []task
	for _, state := range states {
		for _, provider := range p.providers {
			tasks = append(tasks, task{provider: provider, state: state})
		}
	}

	results := make([][]model.DiscoveredItem, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(discoverConcurrency)
	for i, t := range tasks {
		g.Go(func() error {
			items, err := t.provider.Discover(gctx, t.state, window, p.cfg.Discovery.PerStateCap)
			if err != nil {
				zap.L().Warn("pipeline: discovery search failed",
					zap.String("provider", t.provider.Name()),
					zap.String("state", t.state),
					zap.Error(err))
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	merged := mergeDiscovered(results)
	if max := p.cfg.Discovery.MaxRecords; max > 0 && len(merged) > max {
		merged = merged[:max]
	}
	return merged
}

// mergeDiscovered unions per-search result sets by normalized URL. An
// article found under several states or providers keeps one entry with the
// union of its state tags; the first occurrence wins on metadata, later ones
// only fill gaps.
func mergeDiscovered(batches [][]model.DiscoveredItem) []model.DiscoveredItem {
	byURL := make(map[string]int)
	var out []model.DiscoveredItem
	for _, batch := range batches {
		for _, item := range batch {
			key := model.NormalizeURL(item.URL)
			if key == "" {
				continue
			}
			if idx, ok := byURL[key]; ok {
				for _, state := range item.TaggedStates {
					out[idx].AddTaggedState(state)
				}
				if out[idx].PublishedAt == nil && item.PublishedAt != nil {
					out[idx].PublishedAt = item.PublishedAt
				}
				if out[idx].Source == "" {
					out[idx].Source = item.Source
				}
				continue
			}
			byURL[key] = len(out)
			out = append(out, item)
		}
	}
	return out
}
