package reconcile

import (
	"math"

	"github.com/growthlens/investscan/internal/amount"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/textutil"
)

// repairAmount enforces the amount invariant and back-fills a missing amount
// from the text. Amounts are strictly positive or absent, never zero or
// negative.
func repairAmount(rec model.InvestmentRecord, item model.DiscoveredItem) model.InvestmentRecord {
	out := rec.Clone()
	if out.AmountINRCrore != nil {
		v := *out.AmountINRCrore
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			out.AmountINRCrore = nil
			out.AddRationale("cleared invalid amount")
		}
	}
	if out.AmountINRCrore == nil {
		if v := amount.MaxAmountCrore(item.FullText()); v != nil {
			out.AmountINRCrore = v
			out.AddRationale("amount recovered from text")
		}
	}
	return out
}

// repairWeird applies special-case identity fixes. Foxconn coverage names the
// parent inconsistently across publishers, so any mention normalizes the
// company and re-derives the sector from keyword presence. It also re-checks
// company attestation and clears Automobile labels with no automobile signal.
func repairWeird(rec model.InvestmentRecord, item model.DiscoveredItem) model.InvestmentRecord {
	out := rec.Clone()
	full := item.FullText()

	if textutil.WholeWordContains(full, "foxconn") || textutil.WholeWordContains(full, "hon hai") {
		if out.Company == nil || *out.Company != foxconnCanonical {
			out.Company = model.String(foxconnCanonical)
			out.AddRationale("company normalized: " + foxconnCanonical)
		}
		var sector string
		switch {
		case textutil.ContainsAnyWord(full, vehicleKeywords):
			sector = model.SectorAutomobile
		case textutil.ContainsAnyWord(full, semiconductorKeywords):
			sector = model.SectorSemiconductor
		default:
			sector = model.SectorEMS
		}
		if out.Sector == nil || *out.Sector != sector {
			out.Sector = model.String(sector)
			out.AddRationale("sector normalized: " + sector)
		}
	}

	if out.Company != nil && !isCanonicalLabel(*out.Company) && !textutil.WholeWordContains(full, *out.Company) {
		out.Company = nil
		out.AddRationale("dropped unattested company")
	}

	probe := full
	if out.Company != nil {
		// "Tata Motors" in the company field is an automobile signal even
		// when the body never says "vehicle".
		probe += "\n" + *out.Company
	}
	if out.Sector != nil && *out.Sector == model.SectorAutomobile && !textutil.ContainsAnyWord(probe, vehicleKeywords) {
		switch {
		case textutil.ContainsAnyWord(full, semiconductorKeywords):
			out.Sector = model.String(model.SectorSemiconductor)
			out.AddRationale("sector corrected: " + model.SectorSemiconductor)
		case textutil.ContainsAnyWord(full, electronicsKeywords):
			out.Sector = model.String(model.SectorEMS)
			out.AddRationale("sector corrected: " + model.SectorEMS)
		default:
			out.Sector = nil
			out.AddRationale("cleared unsupported automobile sector")
		}
	}
	return out
}
