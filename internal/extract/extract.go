// Package extract turns discovered articles into structured investment
// records through a single LLM call per batch. Responses are parsed
// defensively and every claimed field is verified against the article text;
// extraction failure degrades to empty output, never to a pipeline error.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/pkg/anthropic"
)

// maxConcurrentBatches limits concurrent CreateMessage calls.
const maxConcurrentBatches = 4

const (
	defaultBatchSize    = 6
	defaultMaxTokens    = 4096
	defaultArticleChars = 4000
)

const extractionSystemText = `You are a data extraction analyst for Indian industrial investment news. Extract structured facts from article text. Every value must be literally supported by the article; when the text does not clearly state a value, use null. Never guess and never use outside knowledge. Respond with a JSON array only, one object per numbered article, in article order.`

const extractionPromptTemplate = `Extract one JSON object per numbered article below. Return a JSON array of exactly %d objects, in article order, with no text before or after the array.

Each object has these keys; use null for any value the article does not state:
  "company": name of the investing company exactly as written in the article
  "sector": one of [%s]
  "amount_in_inr_crore": announced investment converted to INR crore (number)
  "jobs": number of jobs promised (number)
  "state": Indian state or union territory where the investment lands
  "district": district or city, if stated
  "project_type": one of ["Greenfield","Brownfield","Expansion","MoU","Proposal","Announcement"]
  "status": one of ["MoU","Announced","Approved","Construction","Operational"]
  "announcement_date": announcement date as YYYY-MM-DD

Articles:

%s`

// Options configures the extraction adapter. Zero fields fall back to
// defaults; Model has no default and must be set.
type Options struct {
	Model        string
	BatchSize    int
	MaxTokens    int64
	ArticleChars int
}

// Result is the outcome of one extraction run. Records has one slot per
// input item in input order; Produced marks which slots came from a
// successfully parsed batch (unproduced slots carry only source metadata).
type Result struct {
	Records  []model.InvestmentRecord
	Produced []bool
	Usage    anthropic.TokenUsage
}

// ProducedCount returns how many slots came from a parsed batch.
func (r *Result) ProducedCount() int {
	n := 0
	for _, p := range r.Produced {
		if p {
			n++
		}
	}
	return n
}

// Extractor batches articles through the LLM and verifies the output.
type Extractor struct {
	client anthropic.Client
	states *geo.Table
	opts   Options
}

// New creates an extractor. A nil states table falls back to the built-in
// state alias table.
func New(client anthropic.Client, states *geo.Table, opts Options) *Extractor {
	if states == nil {
		states = geo.DefaultTable()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.ArticleChars <= 0 {
		opts.ArticleChars = defaultArticleChars
	}
	return &Extractor{client: client, states: states, opts: opts}
}

// Extract runs all items through the LLM in batches. The result always has
// one record per item, order preserved, each carrying its immutable source
// URL; a failed batch leaves its slots unproduced rather than erroring.
func (e *Extractor) Extract(ctx context.Context, items []model.DiscoveredItem) *Result {
	result := &Result{
		Records:  make([]model.InvestmentRecord, len(items)),
		Produced: make([]bool, len(items)),
	}
	for i, item := range items {
		result.Records[i] = model.NewRecordForItem(item)
	}
	if len(items) == 0 {
		return result
	}

	type batch struct {
		start, end int
	}
	var batches []batch
	for start := 0; start < len(items); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, batch{start: start, end: end})
	}

	systemBlocks := anthropic.BuildCachedSystemBlocks(extractionSystemText)
	usages := make([]anthropic.TokenUsage, len(batches))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for bi, b := range batches {
		g.Go(func() error {
			chunk := items[b.start:b.end]
			temperature := 0.0

			resp, err := e.client.CreateMessage(gCtx, anthropic.MessageRequest{
				Model:       e.opts.Model,
				MaxTokens:   e.opts.MaxTokens,
				System:      systemBlocks,
				Temperature: &temperature,
				Messages: []anthropic.Message{
					{Role: "user", Content: e.buildPrompt(chunk)},
				},
			})
			if err != nil {
				zap.L().Warn("extract: batch request failed",
					zap.Int("batch", bi),
					zap.Int("articles", len(chunk)),
					zap.Error(err),
				)
				return nil // A failed batch degrades to empty output.
			}
			usages[bi] = resp.Usage

			rawList, ok := parseBatchResponse(extractText(resp), len(chunk))
			if !ok {
				zap.L().Warn("extract: unusable batch response",
					zap.Int("batch", bi),
					zap.Int("articles", len(chunk)),
				)
				return nil
			}

			for j, raw := range rawList {
				idx := b.start + j
				rec := recordFromRaw(raw, result.Records[idx])
				result.Records[idx] = verifyRecord(rec, items[idx], e.states)
				result.Produced[idx] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, u := range usages {
		result.Usage.Add(u)
	}
	result.Usage.LogCost(e.opts.Model, "extract")
	return result
}

// buildPrompt renders the numbered article blocks into the batch prompt.
func (e *Extractor) buildPrompt(items []model.DiscoveredItem) string {
	var b strings.Builder
	for i, item := range items {
		text := item.Text
		if len(text) > e.opts.ArticleChars {
			text = text[:e.opts.ArticleChars]
		}
		published := "unknown"
		if item.PublishedAt != nil && *item.PublishedAt != "" {
			published = *item.PublishedAt
		}
		fmt.Fprintf(&b, "--- Article %d ---\nTitle: %s\nSource: %s (%s)\nPublished: %s\nText:\n%s\n\n",
			i+1, item.Title, item.Source, item.URL, published, text)
	}
	return fmt.Sprintf(extractionPromptTemplate, len(items), strings.Join(sectorLabels(), ", "), b.String())
}

// parseBatchResponse locates and parses the JSON array in the model output.
// The object count must match the article count; anything else is unusable
// (a shorter array cannot be aligned to its articles safely).
func parseBatchResponse(text string, want int) ([]map[string]any, bool) {
	cleaned := cleanJSONArray(text)

	var rawList []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &rawList); err != nil {
		zap.L().Warn("extract: failed to parse batch JSON", zap.Error(err))
		return nil, false
	}
	if len(rawList) != want {
		zap.L().Warn("extract: batch object count mismatch",
			zap.Int("want", want),
			zap.Int("got", len(rawList)),
		)
		return nil, false
	}
	return rawList, true
}

// recordFromRaw merges the parsed object's claims into the pre-built record
// slot. Claims are taken at face value here; verification nulls anything
// unattested.
func recordFromRaw(raw map[string]any, base model.InvestmentRecord) model.InvestmentRecord {
	rec := base.Clone()

	rec.Company = stringField(raw, "company")
	rec.Sector = stringField(raw, "sector")
	rec.State = stringField(raw, "state")
	rec.District = stringField(raw, "district")
	rec.AnnouncementDate = stringField(raw, "announcement_date")

	if v, ok := toFloat64(raw["amount_in_inr_crore"]); ok {
		rec.AmountINRCrore = &v
	}
	if v, ok := toFloat64(raw["jobs"]); ok {
		n := int(v)
		rec.Jobs = &n
	}
	if s := stringField(raw, "project_type"); s != nil {
		pt := model.ProjectType(*s)
		rec.ProjectType = &pt
	}
	if s := stringField(raw, "status"); s != nil {
		st := model.Status(*s)
		rec.Status = &st
	}
	return rec
}

// extractText concatenates the text blocks of a message response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanJSONArray extracts a JSON array from text that may contain markdown
// code fences or other wrapping.
func cleanJSONArray(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// stringField returns a trimmed non-empty string value for key, or nil.
func stringField(raw map[string]any, key string) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// toFloat64 attempts to convert an any value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
