// Package heuristic infers record fields from raw article text with regex
// rules. It is the backstop when LLM extraction is unavailable or incomplete:
// it only ever fills nil fields, never overriding a value set by a
// higher-confidence source.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/growthlens/investscan/internal/amount"
	"github.com/growthlens/investscan/internal/model"
)

// maxCompanyLen rejects headline captures too long to be a company name.
const maxCompanyLen = 60

// titleCompanyPattern captures the leading noun phrase before an
// announcement verb in a headline.
var titleCompanyPattern = regexp.MustCompile(
	`^(.{2,80}?)\s+(?:signs?|invests?|inks?|commits?|announces?|plans?|proposes?|to\s+(?:invest|set\s+up|build|expand)|sets?\s+up|will\s+(?:invest|set\s+up|build))\b`)

// bodyCompanyPattern captures a capitalized token run ending in a corporate
// suffix anywhere in body text.
var bodyCompanyPattern = regexp.MustCompile(
	`\b((?:[A-Z][A-Za-z&.'-]*\s+){1,5}(?:Pvt\.?\s+Ltd\.?|Private\s+Limited|Ltd\.?|Limited|Corporation|Corp\.?|Inc\.?|Industries|Group|Enterprises))`)

// roleWords end a captured phrase at an executive or official title; the
// company is whatever precedes the role.
var roleWords = regexp.MustCompile(
	`(?i)\s+(?:chairman|chairperson|managing director|md|cmd|ceo|cfo|founder|president|chief minister|minister|secretary)\b.*$`)

var letterPattern = regexp.MustCompile(`[A-Za-z]`)

// statusTriggers maps keyword patterns to the status they imply, checked in
// order. The default status for any announcement is Announced.
var statusTriggers = []struct {
	pattern *regexp.Regexp
	status  model.Status
}{
	{regexp.MustCompile(`(?i)\b(?:mou|memorandum of understanding)\b`), model.StatusMoU},
	{regexp.MustCompile(`(?i)\b(?:operational|inaugurat\w*|commissioned|goes on stream)\b`), model.StatusOperational},
	{regexp.MustCompile(`(?i)\b(?:under construction|construction|groundbreaking|ground-breaking|bhoomi pujan|foundation stone)\b`), model.StatusConstruction},
	{regexp.MustCompile(`(?i)\b(?:approved|approval granted|cleared by|gets nod)\b`), model.StatusApproved},
}

// typeTriggers maps keyword patterns to the project type they imply.
var typeTriggers = []struct {
	pattern *regexp.Regexp
	ptype   model.ProjectType
}{
	{regexp.MustCompile(`(?i)\b(?:mou|memorandum of understanding)\b`), model.ProjectMoU},
	{regexp.MustCompile(`(?i)\b(?:expansion|expands?|debottleneck\w*)\b`), model.ProjectExpansion},
	{regexp.MustCompile(`(?i)\bgreenfield\b`), model.ProjectGreenfield},
	{regexp.MustCompile(`(?i)\bbrownfield\b`), model.ProjectBrownfield},
	{regexp.MustCompile(`(?i)\b(?:proposal|proposes?|proposed)\b`), model.ProjectProposal},
}

// sectorTable assigns the first matching sector family. Title is scanned
// before body; order matters.
var sectorTable = []struct {
	sector  string
	pattern *regexp.Regexp
}{
	{model.SectorSteel, regexp.MustCompile(`(?i)\bsteel\b`)},
	{model.SectorRenewable, regexp.MustCompile(`(?i)\b(?:solar|wind|renewable|green energy)\b`)},
	{model.SectorSemiconductor, regexp.MustCompile(`(?i)\b(?:semiconductor|chip|fab|wafer|osat)\b`)},
	{model.SectorTextiles, regexp.MustCompile(`(?i)\b(?:textile|garment|apparel|spinning)\b`)},
	{model.SectorFoodProc, regexp.MustCompile(`(?i)\b(?:food processing|food park|dairy|agro)\b`)},
	{model.SectorAutomobile, regexp.MustCompile(`(?i)\b(?:automobile|automotive|car plant|ev|electric vehicle|two-wheeler|auto component)\b`)},
	{model.SectorPharma, regexp.MustCompile(`(?i)\b(?:pharma|pharmaceutical|vaccine|formulation)\b`)},
	{model.SectorITDataCentre, regexp.MustCompile(`(?i)\b(?:data centre|data center|it park|software|it services)\b`)},
	{model.SectorChemicals, regexp.MustCompile(`(?i)\b(?:chemical|fertiliser|fertilizer|polymer)\b`)},
	{model.SectorCement, regexp.MustCompile(`(?i)\bcement\b`)},
	{model.SectorElectronics, regexp.MustCompile(`(?i)\b(?:electronics|electronic manufacturing|display|pcb)\b`)},
}

// Infer fills nil fields of rec from the item's title and text. Filled values
// are noted on the record's rationale.
func Infer(item model.DiscoveredItem, rec model.InvestmentRecord) model.InvestmentRecord {
	out := rec.Clone()
	full := item.FullText()

	if out.Company == nil {
		if name, from := inferCompany(item.Title, item.Text); name != "" {
			out.Company = &name
			out.AddRationale("company inferred from " + from)
		}
	}

	if out.AmountINRCrore == nil {
		if v := amount.MaxAmountCrore(full); v != nil {
			out.AmountINRCrore = v
			out.AddRationale("amount parsed from text")
		}
	}

	if out.Jobs == nil {
		if v := amount.MaxJobs(full); v != nil {
			out.Jobs = v
			out.AddRationale("jobs parsed from text")
		}
	}

	if out.ProjectType == nil {
		for _, t := range typeTriggers {
			if t.pattern.MatchString(full) {
				out.ProjectType = t.ptype.Ptr()
				out.AddRationale("project type inferred: " + string(t.ptype))
				break
			}
		}
	}

	if out.Status == nil {
		status := model.StatusAnnounced
		for _, t := range statusTriggers {
			if t.pattern.MatchString(full) {
				status = t.status
				out.AddRationale("status inferred: " + string(t.status))
				break
			}
		}
		out.Status = status.Ptr()
	}

	if out.Sector == nil {
		if s := inferSector(item.Title, item.Text); s != "" {
			out.Sector = &s
			out.AddRationale("sector inferred: " + s)
		}
	}

	if out.State == nil && len(item.TaggedStates) > 0 {
		out.State = model.String(item.TaggedStates[0])
	}

	if out.AnnouncementDate == nil && item.PublishedAt != nil && *item.PublishedAt != "" {
		out.AnnouncementDate = model.String(*item.PublishedAt)
	}

	return out
}

// inferCompany tries the headline verb pattern first, then a body suffix
// scan. Returns the cleaned name and which rule produced it, or "".
func inferCompany(title, text string) (string, string) {
	if m := titleCompanyPattern.FindStringSubmatch(title); m != nil {
		if name := cleanCompany(m[1]); name != "" {
			return name, "title pattern"
		}
	}
	if m := bodyCompanyPattern.FindStringSubmatch(text); m != nil {
		if name := cleanCompany(m[1]); name != "" {
			return name, "body suffix scan"
		}
	}
	return "", ""
}

// cleanCompany strips role suffixes, articles, and stray punctuation, and
// rejects captures too long or too empty to be a real name.
func cleanCompany(raw string) string {
	name := strings.TrimSpace(raw)
	name = roleWords.ReplaceAllString(name, "")
	name = strings.TrimPrefix(name, "The ")
	name = strings.Trim(name, " \t,:;.'\"-–")
	name = strings.Join(strings.Fields(name), " ")

	if name == "" || len(name) > maxCompanyLen || !letterPattern.MatchString(name) {
		return ""
	}
	return name
}

func inferSector(title, text string) string {
	for _, row := range sectorTable {
		if row.pattern.MatchString(title) {
			return row.sector
		}
	}
	for _, row := range sectorTable {
		if row.pattern.MatchString(text) {
			return row.sector
		}
	}
	return ""
}
