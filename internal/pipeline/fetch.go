package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/growthlens/investscan/internal/model"
)

// fetchText downloads article text for every item in place and reports how
// many ended up with text. A failed fetch leaves its item's text empty;
// relevance and extraction then work from the headline alone.
func (p *Pipeline) fetchText(ctx context.Context, items []model.DiscoveredItem) int {
	limit := p.cfg.Fetch.Concurrency
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range items {
		g.Go(func() error {
			items[i].Text = p.fetcher.Text(gctx, items[i].URL)
			return nil
		})
	}
	_ = g.Wait()

	withText := 0
	for i := range items {
		if items[i].Text != "" {
			withText++
		}
	}
	return withText
}
