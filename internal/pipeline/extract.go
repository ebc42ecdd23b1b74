package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/heuristic"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/reconcile"
	"github.com/growthlens/investscan/internal/relevance"
	"github.com/growthlens/investscan/pkg/anthropic"
)

// extractRetryDelay is the pause before the single whole-stage retry of
// slots the first extraction left unproduced.
const extractRetryDelay = 5 * time.Second

// extractRecords turns scored items into reconciliation candidates. AI mode
// runs the LLM adapter, retries unproduced slots once, then backstops the
// rest with heuristic inference; heuristic mode infers everything locally.
// The classifier category fills the project type when extraction left it
// null. Returns the candidates and how many slots the mode's extractor
// itself produced.
func (p *Pipeline) extractRecords(ctx context.Context, scored []relevance.ScoredItem, mode string) ([]reconcile.Candidate, int) {
	items := make([]model.DiscoveredItem, len(scored))
	for i, s := range scored {
		items[i] = s.Item
	}

	records := make([]model.InvestmentRecord, len(items))
	produced := make([]bool, len(items))
	extracted := 0

	if mode == ModeAI && p.extractor != nil && len(items) > 0 {
		result := p.extractor.Extract(ctx, items)
		copy(records, result.Records)
		copy(produced, result.Produced)
		usage := result.Usage

		if missing := unproducedIndexes(produced); len(missing) > 0 {
			zap.L().Warn("pipeline: extraction left slots unproduced, retrying stage once",
				zap.Int("missing", len(missing)),
				zap.Duration("delay", p.retryDelay))
			usage.Add(p.retryExtraction(ctx, items, records, produced, missing))
		}
		extracted = countProduced(produced)

		zap.L().Info("pipeline: extraction usage",
			zap.Int64("input_tokens", usage.InputTokens),
			zap.Int64("output_tokens", usage.OutputTokens),
			zap.Float64("cost_usd", p.costCalc.Claude(p.cfg.Anthropic.Model,
				usage.InputTokens, usage.OutputTokens,
				usage.CacheCreationInputTokens, usage.CacheReadInputTokens)))
	}

	cands := make([]reconcile.Candidate, len(items))
	for i, item := range items {
		rec := records[i]
		if !produced[i] {
			rec = heuristic.Infer(item, model.NewRecordForItem(item))
			if mode == ModeHeuristic {
				extracted++
			}
		}
		if rec.ProjectType == nil {
			if pt := model.ProjectTypeForCategory(scored[i].Category); pt != "" {
				rec.ProjectType = pt.Ptr()
				rec.AddRationale("project type from announcement category: " + string(scored[i].Category))
			}
		}
		cands[i] = reconcile.Candidate{Record: rec, Item: item}
	}
	return cands, extracted
}

// retryExtraction re-runs only the unproduced slots after a fixed delay and
// folds successes back into place, returning the retry's token usage. A
// canceled context skips the retry.
func (p *Pipeline) retryExtraction(
	ctx context.Context,
	items []model.DiscoveredItem,
	records []model.InvestmentRecord,
	produced []bool,
	missing []int,
) anthropic.TokenUsage {
	select {
	case <-ctx.Done():
		return anthropic.TokenUsage{}
	case <-time.After(p.retryDelay):
	}

	retryItems := make([]model.DiscoveredItem, len(missing))
	for i, idx := range missing {
		retryItems[i] = items[idx]
	}
	retry := p.extractor.Extract(ctx, retryItems)
	recovered := 0
	for i, idx := range missing {
		if retry.Produced[i] {
			records[idx] = retry.Records[i]
			produced[idx] = true
			recovered++
		}
	}
	zap.L().Info("pipeline: extraction retry finished",
		zap.Int("recovered", recovered),
		zap.Int("fallback_to_heuristic", len(missing)-recovered))
	return retry.Usage
}

func unproducedIndexes(produced []bool) []int {
	var missing []int
	for i, ok := range produced {
		if !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

func countProduced(produced []bool) int {
	n := 0
	for _, ok := range produced {
		if ok {
			n++
		}
	}
	return n
}
