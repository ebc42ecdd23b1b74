// Package score maps normalized record attributes to an opportunity score.
package score

import (
	"math"

	"github.com/growthlens/investscan/internal/model"
)

// Breakdown holds the individual component points and the final score.
type Breakdown struct {
	Amount float64 `json:"amount"`
	Jobs   float64 `json:"jobs"`
	Stage  float64 `json:"stage"`
	Final  int     `json:"final"`
}

// Opportunity returns the 0-100 opportunity score for a record.
func Opportunity(rec model.InvestmentRecord) int {
	return Compute(rec).Final
}

// Compute returns the component breakdown behind a record's score.
// Amount contributes min(50, log10(1+amount)*20) and jobs
// min(15, log10(1+jobs)*8): logarithmic scaling keeps very large deals from
// drowning out mid-size ones. Greenfield adds 10; an Operational status adds
// 15 and Construction 8. The sum is rounded and clamped to 100.
func Compute(rec model.InvestmentRecord) Breakdown {
	var b Breakdown

	if a := rec.Amount(); a > 0 {
		b.Amount = math.Min(50, math.Log10(1+a)*20)
	}
	if j := rec.JobCount(); j > 0 {
		b.Jobs = math.Min(15, math.Log10(1+float64(j))*8)
	}
	if rec.ProjectType != nil && *rec.ProjectType == model.ProjectGreenfield {
		b.Stage += 10
	}
	if rec.Status != nil {
		switch *rec.Status {
		case model.StatusOperational:
			b.Stage += 15
		case model.StatusConstruction:
			b.Stage += 8
		}
	}

	total := int(math.Round(b.Amount + b.Jobs + b.Stage))
	if total > 100 {
		total = 100
	}
	b.Final = total
	return b
}
