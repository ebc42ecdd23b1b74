package reconcile

import (
	"regexp"
	"strings"

	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/textutil"
)

const foxconnCanonical = "Foxconn (Hon Hai Precision Industry)"

// paraphraseWords flag company values that quote the article instead of
// naming a firm.
var paraphraseWords = []string{
	"as an investment", "investment", "investments", "crore", "lakh",
	"project", "projects", "proposal", "announcement", "plant", "hub",
	"facility", "factory",
}

// authorityWords mark generic government phrasing standing in for a name.
var authorityWords = []string{
	"government", "govt", "ministry", "minister", "cabinet", "authority",
	"department", "administration", "centre", "center", "municipal",
	"state",
}

var letterPattern = regexp.MustCompile(`[A-Za-z]`)

// conglomerates maps text variants to canonical company names, ordered so
// subsidiaries match before group-level names.
var conglomerates = []struct {
	canonical string
	variants  []string
}{
	{"Tata Motors", []string{"tata motors"}},
	{"Tata Steel", []string{"tata steel"}},
	{"Tata Power", []string{"tata power"}},
	{"Tata Electronics", []string{"tata electronics"}},
	{"Tata Consultancy Services", []string{"tata consultancy", "tcs"}},
	{"Tata Group", []string{"tata"}},
	{"Adani Ports & SEZ", []string{"adani ports"}},
	{"Adani Green Energy", []string{"adani green"}},
	{"Adani Power", []string{"adani power"}},
	{"Adani Enterprises", []string{"adani enterprises"}},
	{"Adani Group", []string{"adani"}},
	{"Reliance Jio", []string{"reliance jio", "jio"}},
	{"Reliance Industries", []string{"reliance", "ril"}},
	{"JSW Steel", []string{"jsw steel"}},
	{"JSW Energy", []string{"jsw energy"}},
	{"JSW Group", []string{"jsw"}},
	{"Vedanta", []string{"vedanta"}},
	{foxconnCanonical, []string{"foxconn", "hon hai"}},
	{"Maruti Suzuki", []string{"maruti"}},
	{"Hyundai Motor India", []string{"hyundai"}},
	{"Toyota Kirloskar Motor", []string{"toyota"}},
	{"Mahindra & Mahindra", []string{"mahindra"}},
	{"UltraTech Cement", []string{"ultratech"}},
	{"Larsen & Toubro", []string{"larsen & toubro", "larsen and toubro", "l&t"}},
	{"Infosys", []string{"infosys"}},
	{"Wipro", []string{"wipro"}},
	{"Micron Technology", []string{"micron"}},
	{"ArcelorMittal Nippon Steel India", []string{"arcelormittal", "amns"}},
}

// canonicalizeCompany replaces a paraphrase or unattested company value with
// a conglomerate dictionary match from the text, or nulls it. Canonical
// labels pass through untouched; surviving all-caps names are title-cased.
func canonicalizeCompany(rec model.InvestmentRecord, item model.DiscoveredItem) model.InvestmentRecord {
	out := rec.Clone()
	if out.Company == nil {
		return out
	}
	name := *out.Company
	if isCanonicalLabel(name) {
		return out
	}
	full := item.FullText()
	if badCompany(name) || !textutil.WholeWordContains(full, name) {
		if canonical, ok := lookupConglomerate(full); ok {
			out.Company = &canonical
			out.AddRationale("company canonicalized: " + canonical)
		} else {
			out.Company = nil
			out.AddRationale("dropped unusable company value")
		}
		return out
	}
	if canonical, ok := lookupConglomerate(name); ok && canonical != name {
		out.Company = &canonical
		out.AddRationale("company canonicalized: " + canonical)
		return out
	}
	if cased := textutil.TitleCase(name); cased != name {
		out.Company = &cased
		out.AddRationale("company title-cased")
	}
	return out
}

// badCompany reports whether a claimed company value is a paraphrase of the
// announcement rather than a name.
func badCompany(name string) bool {
	if textutil.ContainsAnyWord(name, paraphraseWords) {
		return true
	}
	if textutil.ContainsAnyWord(name, authorityWords) {
		return true
	}
	if len(strings.Fields(name)) > 7 {
		return true
	}
	if !letterPattern.MatchString(name) {
		return true
	}
	return false
}

// lookupConglomerate matches the dictionary against text, specific variants
// first.
func lookupConglomerate(text string) (string, bool) {
	for _, c := range conglomerates {
		for _, v := range c.variants {
			if textutil.WholeWordContains(text, v) {
				return c.canonical, true
			}
		}
	}
	return "", false
}

// isCanonicalLabel reports whether a name is a dictionary output, exempt from
// verbatim attestation.
func isCanonicalLabel(name string) bool {
	if isGovernmentLabel(name) {
		return true
	}
	for _, c := range conglomerates {
		if name == c.canonical {
			return true
		}
	}
	return false
}
