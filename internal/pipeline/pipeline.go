// Package pipeline runs one scan end to end: discovery, page fetch,
// relevance filtering, extraction, and reconciliation, with diagnostics
// counted after every stage.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/config"
	"github.com/growthlens/investscan/internal/cost"
	"github.com/growthlens/investscan/internal/extract"
	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/reconcile"
	"github.com/growthlens/investscan/internal/relevance"
)

// Scan modes. AI mode extracts through the LLM with heuristic fallback;
// heuristic mode never calls the LLM and needs no credentials.
const (
	ModeAI        = "ai"
	ModeHeuristic = "heuristic"
)

// ErrMissingAPIKey is returned when an AI-mode scan starts without an
// Anthropic key. Upstream outages degrade to partial results instead; a
// missing credential is the one failure with no fallback.
var ErrMissingAPIKey = eris.New("pipeline: anthropic api key not configured")

// TextFetcher yields plain article text for a URL, empty on any failure.
type TextFetcher interface {
	Text(ctx context.Context, url string) string
}

// RecordExtractor runs LLM extraction over a batch of items.
type RecordExtractor interface {
	Extract(ctx context.Context, items []model.DiscoveredItem) *extract.Result
}

// Request selects what one scan covers. Zero-valued fields fall back to the
// configured defaults; MaxRecords caps the final output, zero means no cap.
type Request struct {
	States     []string
	Window     string
	Mode       string
	MaxRecords int
}

// Result is the outcome of one scan: the reconciled records ranked by
// opportunity score, plus per-stage survivor counts.
type Result struct {
	Records []model.InvestmentRecord
	Counts  model.StageCounts
}

// Pipeline wires the scan stages together. Construct once and reuse; Run is
// safe for concurrent calls.
type Pipeline struct {
	cfg        *config.Config
	states     *geo.Table
	providers  []Provider
	fetcher    TextFetcher
	extractor  RecordExtractor
	embedder   reconcile.Embedder
	classifier *relevance.Classifier
	costCalc   *cost.Calculator
	retryDelay time.Duration
}

// New assembles a pipeline. A nil states table uses the built-in one; the
// extractor may be nil when only heuristic scans run, and a nil embedder
// skips the semantic merge pass.
func New(
	cfg *config.Config,
	states *geo.Table,
	providers []Provider,
	fetcher TextFetcher,
	extractor RecordExtractor,
	embedder reconcile.Embedder,
) *Pipeline {
	if states == nil {
		states = geo.DefaultTable()
	}
	return &Pipeline{
		cfg:        cfg,
		states:     states,
		providers:  providers,
		fetcher:    fetcher,
		extractor:  extractor,
		embedder:   embedder,
		classifier: relevance.NewClassifier(),
		costCalc:   cost.NewCalculator(cost.DefaultRates()),
		retryDelay: extractRetryDelay,
	}
}

// Run executes one scan. Provider and fetch failures degrade to partial
// results; the returned error is only a bad request (unknown state or mode)
// or ErrMissingAPIKey.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	req = p.withDefaults(req)

	states, err := p.resolveStates(req.States)
	if err != nil {
		return nil, err
	}
	switch req.Mode {
	case ModeHeuristic:
	case ModeAI:
		if p.cfg.Anthropic.Key == "" {
			return nil, ErrMissingAPIKey
		}
	default:
		return nil, eris.Errorf("pipeline: unknown mode %q", req.Mode)
	}

	log := zap.L().With(
		zap.String("mode", req.Mode),
		zap.String("window", req.Window),
		zap.Int("states", len(states)),
	)
	log.Info("pipeline: scan started")

	var counts model.StageCounts

	items := p.discover(ctx, states, req.Window)
	counts.Discovered = len(items)
	log.Info("pipeline: discovery complete", zap.Int("items", len(items)))

	counts.Fetched = p.fetchText(ctx, items)
	log.Info("pipeline: page fetch complete",
		zap.Int("with_text", counts.Fetched),
		zap.Int("without_text", len(items)-counts.Fetched))

	scored := p.filterRelevant(items)
	counts.Relevant = len(scored)
	log.Info("pipeline: relevance filter complete",
		zap.Int("kept", len(scored)),
		zap.Int("dropped", len(items)-len(scored)))

	cands, extracted := p.extractRecords(ctx, scored, req.Mode)
	counts.Extracted = extracted
	log.Info("pipeline: extraction complete",
		zap.Int("candidates", len(cands)),
		zap.Int("extracted", extracted))

	engine := reconcile.New(p.states, reconcile.Options{
		RequestedStates:   states,
		Embedder:          p.embedder,
		SemanticThreshold: p.cfg.Embeddings.Threshold,
	})
	records, stats := engine.Run(ctx, cands)
	counts.AfterDedup = stats.Input - stats.DuplicatesRemoved
	counts.DuplicatesRemoved = stats.DuplicatesRemoved
	counts.FannedOut = stats.Output

	records = rankRecords(records, req.MaxRecords)
	counts.Final = len(records)

	log.Info("pipeline: scan complete",
		zap.Int("records", len(records)),
		zap.Int("duplicates_removed", stats.DuplicatesRemoved))

	return &Result{Records: records, Counts: counts}, nil
}

// withDefaults fills unset request fields from configuration.
func (p *Pipeline) withDefaults(req Request) Request {
	if req.Window == "" {
		req.Window = p.cfg.Discovery.Window
	}
	if req.Mode == "" {
		req.Mode = p.cfg.Pipeline.Mode
	}
	return req
}

// resolveStates canonicalizes the requested state names, defaulting to every
// state in the table. An unknown name is a bad request, not a partial result.
func (p *Pipeline) resolveStates(names []string) ([]string, error) {
	if len(names) == 0 {
		return p.states.States(), nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		canonical, ok := p.states.Canonical(name)
		if !ok {
			return nil, eris.Errorf("pipeline: unknown state %q", name)
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out, nil
}

// filterRelevant scores every item and applies the threshold/fallback policy.
func (p *Pipeline) filterRelevant(items []model.DiscoveredItem) []relevance.ScoredItem {
	scored := make([]relevance.ScoredItem, len(items))
	for i, item := range items {
		scored[i] = p.classifier.Evaluate(item)
		zap.L().Debug("pipeline: scored item",
			zap.String("title", item.Title),
			zap.String("verdict", relevance.DescribeScore(scored[i].Score, scored[i].Reasons)))
	}
	return relevance.Filter(scored, p.cfg.Pipeline.RelevanceThreshold, p.cfg.Pipeline.FallbackTopN)
}

// rankRecords orders output by opportunity score, best first, and applies the
// caller's cap. Ties keep reconciliation order.
func rankRecords(records []model.InvestmentRecord, maxRecords int) []model.InvestmentRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OpportunityScore > records[j].OpportunityScore
	})
	if maxRecords > 0 && len(records) > maxRecords {
		records = records[:maxRecords]
	}
	return records
}
