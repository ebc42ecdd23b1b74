package extract

import (
	"math"
	"strings"
	"time"

	"github.com/growthlens/investscan/internal/amount"
	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/textutil"
)

// maxCompanyLen rejects claimed company names too long to be a real name.
const maxCompanyLen = 60

// sectorFamilies maps each canonical sector label to the keywords that attest
// it. A claimed sector survives verification only when the article text
// contains at least one keyword of its family.
var sectorFamilies = []struct {
	label    string
	keywords []string
}{
	{model.SectorSteel, []string{"steel"}},
	{model.SectorRenewable, []string{"solar", "wind", "renewable", "green energy"}},
	{model.SectorSemiconductor, []string{"semiconductor", "chip", "fab", "wafer", "osat"}},
	{model.SectorTextiles, []string{"textile", "textiles", "garment", "apparel", "spinning"}},
	{model.SectorFoodProc, []string{"food processing", "food park", "dairy", "agro"}},
	{model.SectorAutomobile, []string{"automobile", "automotive", "car", "vehicle", "vehicles", "ev", "two-wheeler", "scooter", "motorcycle"}},
	{model.SectorPharma, []string{"pharma", "pharmaceutical", "pharmaceuticals", "vaccine", "formulation", "drug"}},
	{model.SectorITDataCentre, []string{"data centre", "data center", "it park", "software", "it services"}},
	{model.SectorChemicals, []string{"chemical", "chemicals", "fertiliser", "fertilizer", "polymer"}},
	{model.SectorCement, []string{"cement"}},
	{model.SectorElectronics, []string{"electronics", "electronic", "display", "pcb"}},
	{model.SectorDataCentre, []string{"data centre", "data center", "hyperscale"}},
	{model.SectorITSoftware, []string{"software", "it services", "tech park", "gcc"}},
	{model.SectorGreenHydrogen, []string{"green hydrogen", "hydrogen", "electrolyser", "electrolyzer"}},
	{model.SectorRefinery, []string{"refinery", "petrochemical", "petrochemicals", "cracker"}},
	{model.SectorGasPipelines, []string{"gas pipeline", "lng", "city gas", "cgd"}},
	{model.SectorOilGas, []string{"oil", "exploration", "drilling"}},
	{model.SectorPowerGen, []string{"power plant", "power project", "thermal", "hydel", "hydro"}},
	{model.SectorEMS, []string{"electronics manufacturing", "ems", "assembly"}},
}

// sectorLabels returns the canonical sector labels offered to the model.
func sectorLabels() []string {
	labels := make([]string, 0, len(sectorFamilies))
	seen := make(map[string]bool, len(sectorFamilies))
	for _, f := range sectorFamilies {
		if !seen[f.label] {
			labels = append(labels, f.label)
			seen[f.label] = true
		}
	}
	return labels
}

// verifyRecord re-checks every claimed field against the article title+text
// and nulls anything unattested, noting each drop on the rationale. The model
// must not assert facts absent from its source.
func verifyRecord(rec model.InvestmentRecord, item model.DiscoveredItem, states *geo.Table) model.InvestmentRecord {
	out := rec.Clone()
	full := item.FullText()

	if out.Company != nil {
		name := *out.Company
		if len(name) > maxCompanyLen || !textutil.WholeWordContains(full, name) {
			out.Company = nil
			out.AddRationale("dropped unattested company")
		}
	}

	if out.Sector != nil {
		label, keywords, known := sectorFamily(*out.Sector)
		switch {
		case !known:
			out.Sector = nil
			out.AddRationale("dropped unrecognized sector")
		case !textutil.ContainsAnyWord(full, keywords):
			out.Sector = nil
			out.AddRationale("dropped unattested sector")
		default:
			out.Sector = &label
		}
	}

	if out.AmountINRCrore != nil && !amountAttested(*out.AmountINRCrore, full) {
		out.AmountINRCrore = nil
		out.AddRationale("dropped unattested amount")
	}

	if out.Jobs != nil && !jobsAttested(*out.Jobs, full) {
		out.Jobs = nil
		out.AddRationale("dropped unattested jobs figure")
	}

	if out.State != nil {
		canonical, ok := states.Canonical(*out.State)
		switch {
		case !ok:
			out.State = nil
			out.AddRationale("dropped unrecognized state")
		case !stateDetected(canonical, full, states):
			out.State = nil
			out.AddRationale("dropped unattested state")
		default:
			out.State = &canonical
		}
	}

	if out.District != nil && !textutil.WholeWordContains(full, *out.District) {
		out.District = nil
		out.AddRationale("dropped unattested district")
	}

	if out.AnnouncementDate != nil && !dateAttested(*out.AnnouncementDate, item, full) {
		out.AnnouncementDate = nil
		out.AddRationale("dropped unattested date")
	}

	if out.ProjectType != nil && !model.ValidProjectType(*out.ProjectType) {
		out.ProjectType = nil
		out.AddRationale("dropped invalid project type")
	}

	if out.Status != nil && !model.ValidStatus(*out.Status) {
		out.Status = nil
		out.AddRationale("dropped invalid status")
	}

	return out
}

// amountAttested accepts a claimed crore figure only when the text itself
// parses to the same value. Positive finite values only.
func amountAttested(claimed float64, text string) bool {
	if claimed <= 0 || math.IsInf(claimed, 0) || math.IsNaN(claimed) {
		return false
	}
	for _, v := range amount.AllAmountsCrore(text) {
		if math.Abs(claimed-v) < 0.5 {
			return true
		}
	}
	return false
}

func jobsAttested(claimed int, text string) bool {
	if claimed <= 0 {
		return false
	}
	for _, v := range amount.AllJobs(text) {
		if v == claimed {
			return true
		}
	}
	return false
}

// stateDetected reports whether the canonical state is named in the text,
// directly or via an alias or known city.
func stateDetected(canonical, text string, states *geo.Table) bool {
	for _, s := range states.DetectStates(text) {
		if s == canonical {
			return true
		}
	}
	return false
}

// dateAttested accepts a claimed date when it is a valid calendar date and
// either matches the feed's published date or appears in the text.
func dateAttested(claimed string, item model.DiscoveredItem, text string) bool {
	if _, err := time.Parse("2006-01-02", claimed); err != nil {
		return false
	}
	if item.PublishedAt != nil && *item.PublishedAt == claimed {
		return true
	}
	return textutil.WholeWordContains(text, claimed)
}

func sectorFamily(claimed string) (string, []string, bool) {
	for _, f := range sectorFamilies {
		if strings.EqualFold(f.label, claimed) {
			return f.label, f.keywords, true
		}
	}
	return "", nil, false
}
