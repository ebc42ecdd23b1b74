// Package relevance gates which discovered articles enter extraction. It
// scores text for investment-likeness against keyword tables and assigns a
// coarse announcement category.
package relevance

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/growthlens/investscan/internal/amount"
	"github.com/growthlens/investscan/internal/model"
)

// Scoring weights. A title keyword is a stronger signal than a body keyword;
// hard negatives dominate everything.
const (
	hardNegativePenalty = 3
	softNegativePenalty = 1
	titleHitBonus       = 2
	bodyHitBonus        = 1
	amountBonus         = 2
	jobsBonus           = 1
	suffixBonus         = 1
	mouContextPenalty   = 2

	maxReasons = 6
)

// ScoredItem is a discovered item with its relevance verdict attached.
type ScoredItem struct {
	Item     model.DiscoveredItem
	Score    int
	Reasons  []string
	Category model.Category
}

// Classifier scores and categorizes article text. Tables are fixed at
// construction; the zero value is not usable.
type Classifier struct {
	hardNeg    []*regexp.Regexp
	hardWords  []string
	softNeg    []*regexp.Regexp
	softWords  []string
	positive   []*regexp.Regexp
	posWords   []string
	education  []*regexp.Regexp
	industrial []*regexp.Regexp
	suffix     *regexp.Regexp
	expansion  *regexp.Regexp
	proposal   *regexp.Regexp
	intent     *regexp.Regexp
	mou        *regexp.Regexp
}

// NewClassifier builds a classifier over the default keyword tables.
func NewClassifier() *Classifier {
	return &Classifier{
		hardNeg:    compileWords(hardNegatives),
		hardWords:  hardNegatives,
		softNeg:    compileWords(softNegatives),
		softWords:  softNegatives,
		positive:   compileWords(positives),
		posWords:   positives,
		education:  compileWords(educationContext),
		industrial: compileWords(industrialContext),
		suffix:     regexp.MustCompile(corporateSuffixPattern),
		expansion:  regexp.MustCompile(expansionPattern),
		proposal:   regexp.MustCompile(proposalPattern),
		intent:     regexp.MustCompile(intentPattern),
		mou:        regexp.MustCompile(mouPattern),
	}
}

func compileWords(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

// Score rates title+text for investment-likeness. Higher is more likely;
// the returned reasons explain the verdict and are capped, never an error.
func (c *Classifier) Score(title, text string) (int, []string) {
	full := title + "\n" + text
	score := 0
	var reasons []string

	for i, re := range c.hardNeg {
		if re.MatchString(full) {
			score -= hardNegativePenalty
			reasons = append(reasons, "hard negative: "+c.hardWords[i])
		}
	}
	for i, re := range c.softNeg {
		if re.MatchString(full) {
			score -= softNegativePenalty
			reasons = append(reasons, "soft negative: "+c.softWords[i])
		}
	}
	for i, re := range c.positive {
		switch {
		case re.MatchString(title):
			score += titleHitBonus
			reasons = append(reasons, "title keyword: "+c.posWords[i])
		case re.MatchString(text):
			score += bodyHitBonus
			reasons = append(reasons, "body keyword: "+c.posWords[i])
		}
	}

	if amount.HasAmount(full) {
		score += amountBonus
		reasons = append(reasons, "amount pattern present")
	}
	if amount.HasJobs(full) {
		score += jobsBonus
		reasons = append(reasons, "jobs pattern present")
	}
	if c.suffix.MatchString(full) {
		score += suffixBonus
		reasons = append(reasons, "corporate suffix present")
	}

	// An MoU is only a negative when the surrounding text reads as an
	// education or social programme with no industrial signal and no money
	// attached. Industrial MoUs keep their positive keyword credit.
	if c.mou.MatchString(full) && c.matchesAny(c.education, full) &&
		!c.matchesAny(c.industrial, full) && !amount.HasAmount(full) {
		score -= mouContextPenalty
		reasons = append(reasons, "mou in education/social context")
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return score, reasons
}

// Classify assigns the announcement category by checking signal patterns in
// priority order. The first matching category wins; matches are not
// cumulative.
func (c *Classifier) Classify(title, text string) model.Category {
	full := title + "\n" + text
	switch {
	case c.expansion.MatchString(full):
		return model.CategoryExpansion
	case c.proposal.MatchString(full):
		return model.CategoryProposal
	case c.intent.MatchString(full):
		return model.CategoryIntent
	case c.mou.MatchString(full) && (!c.matchesAny(c.education, full) || c.matchesAny(c.industrial, full)):
		return model.CategoryMoU
	}
	return model.CategoryOther
}

// Evaluate scores and classifies one item.
func (c *Classifier) Evaluate(item model.DiscoveredItem) ScoredItem {
	score, reasons := c.Score(item.Title, item.Text)
	return ScoredItem{
		Item:     item,
		Score:    score,
		Reasons:  reasons,
		Category: c.Classify(item.Title, item.Text),
	}
}

// Filter drops items scoring below threshold. If that would empty the
// candidate set, the top fallbackN by score are kept instead, so a weak news
// day still produces output.
func Filter(scored []ScoredItem, threshold, fallbackN int) []ScoredItem {
	var kept []ScoredItem
	for _, s := range scored {
		if s.Score >= threshold {
			kept = append(kept, s)
		}
	}
	if len(kept) > 0 || len(scored) == 0 {
		return kept
	}

	if fallbackN <= 0 {
		fallbackN = 1
	}
	best := make([]ScoredItem, len(scored))
	copy(best, scored)
	sort.SliceStable(best, func(i, j int) bool { return best[i].Score > best[j].Score })
	if len(best) > fallbackN {
		best = best[:fallbackN]
	}
	return best
}

func (c *Classifier) matchesAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// DescribeScore renders a short log summary like "score=4 (title keyword:
// invest; amount pattern present)".
func DescribeScore(score int, reasons []string) string {
	return fmt.Sprintf("score=%d (%s)", score, strings.Join(reasons, "; "))
}
