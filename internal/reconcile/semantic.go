package reconcile

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/score"
)

// Embedder produces semantic vectors for near-duplicate detection.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either has no magnitude or the dimensions disagree.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// summaryText renders the identity fingerprint embedded for a record.
func summaryText(rec model.InvestmentRecord) string {
	field := func(p *string) string {
		if p == nil {
			return "unknown"
		}
		return *p
	}
	amt := "unknown"
	if rec.AmountINRCrore != nil {
		amt = strconv.FormatFloat(*rec.AmountINRCrore, 'f', -1, 64) + " crore"
	}
	return strings.Join([]string{field(rec.Company), field(rec.State), field(rec.Sector), amt}, " | ")
}

// semanticMerge embeds every record's summary and merges pairs whose cosine
// similarity reaches the threshold. An embedding failure skips the pass
// rather than failing the run.
func (e *Engine) semanticMerge(ctx context.Context, entries []entry) []entry {
	if e.embedder == nil || len(entries) < 2 {
		return entries
	}
	texts := make([]string, len(entries))
	for i, en := range entries {
		texts[i] = summaryText(en.rec)
	}
	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil || len(vectors) != len(entries) {
		zap.L().Warn("reconcile: semantic merge skipped",
			zap.Int("records", len(entries)),
			zap.Error(err))
		return entries
	}

	removed := make([]bool, len(entries))
	for i := range entries {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(entries); j++ {
			if removed[j] {
				continue
			}
			sim := CosineSimilarity(vectors[i], vectors[j])
			if sim < e.threshold {
				continue
			}
			if semanticWinner(entries[i], entries[j]) == 0 {
				entries[i].rec = mergeRecords(entries[i].rec, entries[j].rec)
				removed[j] = true
			} else {
				entries[j].rec = mergeRecords(entries[j].rec, entries[i].rec)
				removed[i] = true
			}
			if removed[i] {
				break
			}
		}
	}

	out := make([]entry, 0, len(entries))
	for i, en := range entries {
		if !removed[i] {
			out = append(out, en)
		}
	}
	return out
}

// semanticWinner picks which of two near-duplicates survives: larger amount,
// then company presence, then source-name presence, then the earlier-seen
// record. Returns 0 when the first argument wins, 1 otherwise.
func semanticWinner(a, b entry) int {
	if aa, ab := a.rec.Amount(), b.rec.Amount(); aa != ab {
		if aa > ab {
			return 0
		}
		return 1
	}
	if (a.rec.Company != nil) != (b.rec.Company != nil) {
		if a.rec.Company != nil {
			return 0
		}
		return 1
	}
	if (a.rec.SourceName != nil) != (b.rec.SourceName != nil) {
		if a.rec.SourceName != nil {
			return 0
		}
		return 1
	}
	if a.idx <= b.idx {
		return 0
	}
	return 1
}

// mergeRecords back-fills the winner's null fields from the merged-away
// record and rescores it.
func mergeRecords(winner, loser model.InvestmentRecord) model.InvestmentRecord {
	out := winner.Clone()
	if out.Company == nil {
		out.Company = loser.Company
	}
	if out.Sector == nil {
		out.Sector = loser.Sector
	}
	if out.AmountINRCrore == nil {
		out.AmountINRCrore = loser.AmountINRCrore
	}
	if out.Jobs == nil {
		out.Jobs = loser.Jobs
	}
	if out.State == nil {
		out.State = loser.State
	}
	if out.District == nil {
		out.District = loser.District
	}
	if out.ProjectType == nil {
		out.ProjectType = loser.ProjectType
	}
	if out.Status == nil {
		out.Status = loser.Status
	}
	if out.AnnouncementDate == nil {
		out.AnnouncementDate = loser.AnnouncementDate
	}
	if out.SourceName == nil {
		out.SourceName = loser.SourceName
	}
	out.AddRationale("merged semantic duplicate")
	out.OpportunityScore = score.Opportunity(out)
	return out
}
