// Package reconcile repairs, canonicalizes, deduplicates, and fans out
// extracted investment records. It runs as a strict ordered sequence: every
// record is repaired and scored on its own, then three clustering passes
// collapse duplicates across publishers and states, an optional embedding
// pass merges semantic near-duplicates, and a final fan-out emits one copy
// per requested state an article concerns.
package reconcile

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/score"
)

const defaultSemanticThreshold = 0.92

// Candidate pairs an extracted record with the discovered item it came from.
// Repair and attestation need the item's text; the record alone is not
// enough.
type Candidate struct {
	Record model.InvestmentRecord
	Item   model.DiscoveredItem
}

// Stats reports what reconciliation did, for the diagnostic stage counts.
type Stats struct {
	Input             int `json:"input"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	Output            int `json:"output"`
}

// Options configures an Engine.
type Options struct {
	// RequestedStates limits output to these states; empty means no state
	// filter.
	RequestedStates []string
	// Embedder enables the semantic merge pass when set.
	Embedder Embedder
	// SemanticThreshold is the cosine similarity at which two records merge.
	SemanticThreshold float64
}

// Engine runs the reconciliation sequence over a candidate set.
type Engine struct {
	states       *geo.Table
	requested    []string
	requestedSet map[string]bool
	embedder     Embedder
	threshold    float64
}

// entry tracks a record through the passes with its source item and original
// position.
type entry struct {
	rec  model.InvestmentRecord
	item model.DiscoveredItem
	idx  int
}

// New builds an Engine. A nil table uses the built-in state table; requested
// state names are canonicalized and unknown ones ignored with a warning.
func New(states *geo.Table, opts Options) *Engine {
	if states == nil {
		states = geo.DefaultTable()
	}
	threshold := opts.SemanticThreshold
	if threshold <= 0 {
		threshold = defaultSemanticThreshold
	}
	e := &Engine{
		states:       states,
		requestedSet: make(map[string]bool),
		embedder:     opts.Embedder,
		threshold:    threshold,
	}
	for _, s := range opts.RequestedStates {
		c, ok := states.Canonical(s)
		if !ok {
			zap.L().Warn("reconcile: unrecognized requested state", zap.String("state", s))
			continue
		}
		if !e.requestedSet[c] {
			e.requestedSet[c] = true
			e.requested = append(e.requested, c)
		}
	}
	return e
}

// Run executes the full sequence and returns the reconciled records in
// output order: records that took part in clustering first, in input order,
// then the pass-through records that lacked a state or amount.
func (e *Engine) Run(ctx context.Context, cands []Candidate) ([]model.InvestmentRecord, Stats) {
	stats := Stats{Input: len(cands)}

	entries := make([]entry, len(cands))
	for i, c := range cands {
		entries[i] = entry{rec: e.enrich(c.Record, c.Item), item: c.Item, idx: i}
	}

	before := len(entries)
	entries = passOne(entries)
	afterURL := len(entries)
	entries = passTwo(entries)
	afterCluster := len(entries)
	entries = passThree(entries)
	afterNearDate := len(entries)
	entries = e.semanticMerge(ctx, entries)
	stats.DuplicatesRemoved = before - len(entries)

	zap.L().Debug("reconcile: dedupe complete",
		zap.Int("input", before),
		zap.Int("after_url_collapse", afterURL),
		zap.Int("after_cross_state", afterCluster),
		zap.Int("after_near_date", afterNearDate),
		zap.Int("after_semantic", len(entries)))

	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := passThroughClass(entries[i].rec), passThroughClass(entries[j].rec)
		if ci != cj {
			return ci < cj
		}
		return entries[i].idx < entries[j].idx
	})

	entries = e.fanOut(entries)

	out := make([]model.InvestmentRecord, len(entries))
	for i, en := range entries {
		out[i] = en.rec
	}
	stats.Output = len(out)
	return out, stats
}

// enrich runs the per-record repair sequence in its fixed order, then
// normalizes and scores the result.
func (e *Engine) enrich(rec model.InvestmentRecord, item model.DiscoveredItem) model.InvestmentRecord {
	out := repairAmount(rec, item)
	out = tagGovernment(out, item, e.states)
	out = repairWeird(out, item)
	out = refineSector(out, item)
	out = canonicalizeCompany(out, item)
	out = e.normalize(out)
	out.OpportunityScore = score.Opportunity(out)
	return out
}

// normalize enforces field hygiene: canonical state spelling, trimmed
// strings, positive jobs, parseable dates.
func (e *Engine) normalize(rec model.InvestmentRecord) model.InvestmentRecord {
	out := rec.Clone()
	out.Company = trimmed(out.Company)
	out.District = trimmed(out.District)
	out.SourceName = trimmed(out.SourceName)
	if out.State != nil {
		if c, ok := e.states.Canonical(*out.State); ok {
			out.State = &c
		} else {
			out.State = nil
			out.AddRationale("dropped unrecognized state")
		}
	}
	if out.Jobs != nil && *out.Jobs <= 0 {
		out.Jobs = nil
		out.AddRationale("cleared non-positive jobs figure")
	}
	if out.AnnouncementDate != nil {
		if _, err := time.Parse("2006-01-02", *out.AnnouncementDate); err != nil {
			out.AnnouncementDate = nil
			out.AddRationale("cleared unparseable date")
		}
	}
	return out
}

// passThroughClass orders output: 0 for records that can cluster, 1 for
// those lacking a state or amount, which pass through every dedupe pass.
func passThroughClass(rec model.InvestmentRecord) int {
	if rec.State == nil || rec.AmountINRCrore == nil {
		return 1
	}
	return 0
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
