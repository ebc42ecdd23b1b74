package reconcile

import (
	"strings"

	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/textutil"
)

// psus maps PSU name variants to canonical names. Abbreviations that double
// as English words (SAIL, HAL, BEL) are left out; only the full names match.
var psus = []struct {
	canonical string
	variants  []string
}{
	{"NTPC", []string{"ntpc"}},
	{"Indian Oil Corporation", []string{"iocl", "indian oil"}},
	{"Oil and Natural Gas Corporation", []string{"ongc", "oil and natural gas corporation"}},
	{"Bharat Petroleum", []string{"bpcl", "bharat petroleum"}},
	{"Hindustan Petroleum", []string{"hpcl", "hindustan petroleum"}},
	{"GAIL (India)", []string{"gail"}},
	{"Steel Authority of India", []string{"steel authority of india"}},
	{"Bharat Heavy Electricals", []string{"bhel", "bharat heavy electricals"}},
	{"Hindustan Aeronautics", []string{"hindustan aeronautics"}},
	{"Bharat Electronics", []string{"bharat electronics"}},
	{"NHPC", []string{"nhpc"}},
	{"SJVN", []string{"sjvn"}},
	{"NLC India", []string{"nlc india", "neyveli lignite"}},
	{"Coal India", []string{"coal india"}},
	{"Power Grid Corporation of India", []string{"power grid", "powergrid"}},
	{"Rashtriya Ispat Nigam", []string{"rinl", "rashtriya ispat"}},
	{"Numaligarh Refinery", []string{"numaligarh"}},
	{"Cochin Shipyard", []string{"cochin shipyard"}},
}

// centralHints mark central-government undertakings and programmes.
var centralHints = []string{
	"prime minister", "union cabinet", "union minister", "ministry of",
	"niti aayog", "nhai", "indian railways", "railway board", "drdo", "isro",
	"iit", "aiims", "pm gati shakti", "central government",
}

// stateHints mark state-government action.
var stateHints = []string{
	"chief minister", "state cabinet", "state government",
	"industries department", "state industrial development corporation",
}

// tagGovernment fills a government or PSU identity when the company is
// missing or a generic authority phrase.
func tagGovernment(rec model.InvestmentRecord, item model.DiscoveredItem, states *geo.Table) model.InvestmentRecord {
	out := rec.Clone()
	generic := out.Company != nil && textutil.ContainsAnyWord(*out.Company, authorityWords)
	if out.Company != nil && !generic {
		return out
	}
	if label := govtLabelFor(out, item, states); label != "" {
		out.Company = &label
		out.AddRationale("tagged government entity: " + label)
	}
	return out
}

// govtLabelFor derives the government or PSU label for a record. PSU names in
// the text win over generic government hints; state hints need a resolvable
// state. Returns "" when no rule matches.
func govtLabelFor(rec model.InvestmentRecord, item model.DiscoveredItem, states *geo.Table) string {
	full := item.FullText()
	if canonical, ok := lookupPSU(full); ok {
		return canonical
	}
	if textutil.ContainsAnyWord(full, centralHints) {
		return "Central Government"
	}
	if textutil.ContainsAnyWord(full, stateHints) {
		if st := stateFor(rec, item, states); st != "" {
			return governmentOfState(st)
		}
	}
	return ""
}

// lookupPSU matches the PSU dictionary against article text.
func lookupPSU(text string) (string, bool) {
	for _, p := range psus {
		for _, v := range p.variants {
			if textutil.WholeWordContains(text, v) {
				return p.canonical, true
			}
		}
	}
	return "", false
}

// stateFor resolves the state a record concerns: its own state field, then
// alias detection over the text, then the first query tag. Always canonical
// spelling.
func stateFor(rec model.InvestmentRecord, item model.DiscoveredItem, states *geo.Table) string {
	if rec.State != nil {
		if c, ok := states.Canonical(*rec.State); ok {
			return c
		}
	}
	if detected := states.DetectStates(item.FullText()); len(detected) > 0 {
		return detected[0]
	}
	for _, tag := range item.TaggedStates {
		if c, ok := states.Canonical(tag); ok {
			return c
		}
	}
	return ""
}

// governmentOfState names a state government, with the NCT special case.
func governmentOfState(state string) string {
	if state == "Delhi" {
		return "Government of NCT of Delhi"
	}
	return "Government of " + state
}

// isGovernmentLabel reports whether a company value is one of the canonical
// government or PSU labels, which are exempt from verbatim attestation.
func isGovernmentLabel(name string) bool {
	if name == "Central Government" || strings.HasPrefix(name, "Government of ") {
		return true
	}
	for _, p := range psus {
		if name == p.canonical {
			return true
		}
	}
	return false
}
