package reconcile

import (
	"strings"

	"github.com/growthlens/investscan/internal/model"
	"github.com/growthlens/investscan/internal/textutil"
)

// petroleumPSUs and powerUtilities drive company-aware sector overrides.
var petroleumPSUs = []string{
	"Indian Oil Corporation", "Bharat Petroleum", "Hindustan Petroleum",
	"Oil and Natural Gas Corporation", "GAIL (India)", "Numaligarh Refinery",
}

var powerUtilities = []string{
	"NTPC", "NHPC", "SJVN", "Tata Power", "Adani Power", "JSW Energy",
	"Power Grid Corporation of India",
}

// Keyword families shared between sector refinement and extraction repair.
var (
	refineryKeywords      = []string{"refinery", "petrochemical", "petrochemicals", "cracker"}
	vehicleKeywords       = []string{"automobile", "automotive", "vehicle", "vehicles", "car", "cars", "ev", "motor", "motors", "two-wheeler", "scooter", "motorcycle", "mobility"}
	semiconductorKeywords = []string{"semiconductor", "chip", "chips", "fab", "wafer", "osat", "atmp"}
	electronicsKeywords   = []string{"electronics", "electronic", "pcb", "display", "components"}
)

// sectorFamilyTable assigns a label to unlabeled records, first match wins.
var sectorFamilyTable = []struct {
	label    string
	keywords []string
}{
	{model.SectorCement, []string{"cement"}},
	{model.SectorDataCentre, []string{"data centre", "data center", "hyperscale"}},
	{model.SectorITSoftware, []string{"software", "it park", "it services", "tech park", "gcc"}},
	{model.SectorSemiconductor, semiconductorKeywords},
	{model.SectorElectronics, electronicsKeywords},
	{model.SectorSteel, []string{"steel"}},
	{model.SectorGreenHydrogen, []string{"green hydrogen", "electrolyser", "electrolyzer"}},
	{model.SectorRefinery, refineryKeywords},
	{model.SectorGasPipelines, []string{"gas pipeline", "lng", "city gas", "cgd"}},
	{model.SectorOilGas, []string{"oil", "exploration", "drilling"}},
	{model.SectorRenewable, []string{"solar", "wind", "renewable"}},
	{model.SectorPowerGen, []string{"power plant", "power project", "thermal", "hydel"}},
	{model.SectorAutomobile, vehicleKeywords},
}

// softwareCompanyHints mark company names that are clearly IT businesses.
var softwareCompanyHints = []string{
	"software", "infotech", "technologies", "tech mahindra", "infosys",
	"tcs", "consultancy services", "wipro", "hcl", "cognizant",
}

// refineSector runs the company-aware sector pass: PSU and utility overrides
// first, then the keyword family table for records still unlabeled, then
// explicit correction rules for known misclassifications.
func refineSector(rec model.InvestmentRecord, item model.DiscoveredItem) model.InvestmentRecord {
	out := rec.Clone()
	probe := item.FullText()
	if out.Company != nil {
		probe += "\n" + *out.Company
	}

	if out.Company != nil {
		switch {
		case inList(*out.Company, petroleumPSUs) && textutil.ContainsAnyWord(probe, refineryKeywords):
			setSector(&out, model.SectorRefinery)
		case inList(*out.Company, powerUtilities):
			setSector(&out, model.SectorPowerGen)
		}
	}

	if out.Sector == nil {
		for _, fam := range sectorFamilyTable {
			if textutil.ContainsAnyWord(probe, fam.keywords) {
				out.Sector = model.String(fam.label)
				out.AddRationale("sector refined: " + fam.label)
				break
			}
		}
	}

	if out.Sector != nil && *out.Sector == model.SectorSteel && textutil.WholeWordContains(probe, "cement") {
		setSector(&out, model.SectorCement)
	}
	if out.Sector != nil && *out.Sector == model.SectorAutomobile && out.Company != nil && isSoftwareCompany(*out.Company) {
		setSector(&out, model.SectorITSoftware)
	}
	return out
}

func setSector(rec *model.InvestmentRecord, label string) {
	if rec.Sector != nil && *rec.Sector == label {
		return
	}
	rec.Sector = model.String(label)
	rec.AddRationale("sector refined: " + label)
}

func inList(name string, list []string) bool {
	for _, l := range list {
		if name == l {
			return true
		}
	}
	return false
}

func isSoftwareCompany(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range softwareCompanyHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
