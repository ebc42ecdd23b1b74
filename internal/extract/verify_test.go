package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/model"
)

func verifyItem(title, text string) model.DiscoveredItem {
	item := model.NewDiscoveredItem(title, "https://example.com/v", "Example", "")
	item.Text = text
	return item
}

func TestVerifyRecord_AttestedFieldsSurvive(t *testing.T) {
	item := verifyItem(
		"Ultratech to set up cement unit",
		"Ultratech will spend ₹1,200 crore on a cement grinding unit in Pune, adding 800 jobs.",
	)
	rec := model.NewRecord(item.URL)
	rec.Company = model.String("Ultratech")
	rec.Sector = model.String("Cement")
	rec.AmountINRCrore = model.Float(1200)
	rec.Jobs = model.Int(800)
	rec.State = model.String("Maharashtra")
	rec.District = model.String("Pune")

	out := verifyRecord(rec, item, geo.DefaultTable())

	require.NotNil(t, out.Company)
	assert.Equal(t, "Ultratech", *out.Company)
	require.NotNil(t, out.Sector)
	require.NotNil(t, out.AmountINRCrore)
	require.NotNil(t, out.Jobs)
	require.NotNil(t, out.State)
	assert.Equal(t, "Maharashtra", *out.State) // Pune attests the state.
	require.NotNil(t, out.District)
	assert.Empty(t, out.Rationale)
}

func TestVerifyRecord_UnattestedCompanyNulled(t *testing.T) {
	item := verifyItem("New plant announced", "A large plant was announced today.")
	rec := model.NewRecord(item.URL)
	rec.Company = model.String("Reliance Industries")

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.Company)
	assert.Contains(t, out.Rationale, "dropped unattested company")
}

func TestVerifyRecord_CompanyLengthCap(t *testing.T) {
	long := "The Amalgamated Federation Of Industrial Producers And Exporters Limited"
	item := verifyItem("Announcement", long+" will invest here.")
	rec := model.NewRecord(item.URL)
	rec.Company = &long

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.Company)
}

func TestVerifyRecord_SectorUnknownLabel(t *testing.T) {
	item := verifyItem("Factory news", "A factory will be built.")
	rec := model.NewRecord(item.URL)
	rec.Sector = model.String("Aerospace")

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.Sector)
	assert.Contains(t, out.Rationale, "dropped unrecognized sector")
}

func TestVerifyRecord_SectorFamilyKeyword(t *testing.T) {
	item := verifyItem("New EV unit", "The EV facility will produce scooters.")
	rec := model.NewRecord(item.URL)
	rec.Sector = model.String("automobile") // case-folded label

	out := verifyRecord(rec, item, geo.DefaultTable())

	require.NotNil(t, out.Sector)
	assert.Equal(t, model.SectorAutomobile, *out.Sector)
}

func TestVerifyRecord_SectorWithoutKeywordNulled(t *testing.T) {
	item := verifyItem("New unit", "The facility will open next year.")
	rec := model.NewRecord(item.URL)
	rec.Sector = model.String("Steel")

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.Sector)
	assert.Contains(t, out.Rationale, "dropped unattested sector")
}

func TestVerifyRecord_AmountMustMatchText(t *testing.T) {
	item := verifyItem("Investment news", "The company will put in ₹400 crore.")
	rec := model.NewRecord(item.URL)
	rec.AmountINRCrore = model.Float(500)

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.AmountINRCrore)
	assert.Contains(t, out.Rationale, "dropped unattested amount")
}

func TestVerifyRecord_AmountLakhCroreAttested(t *testing.T) {
	item := verifyItem("Mega deal", "An outlay of ₹1.5 lakh crore was announced.")
	rec := model.NewRecord(item.URL)
	rec.AmountINRCrore = model.Float(150000)

	out := verifyRecord(rec, item, geo.DefaultTable())

	require.NotNil(t, out.AmountINRCrore)
	assert.InDelta(t, 150000, *out.AmountINRCrore, 1e-9)
}

func TestVerifyRecord_JobsMustMatchText(t *testing.T) {
	item := verifyItem("Hiring news", "The plant will create 5,000 jobs.")

	rec := model.NewRecord(item.URL)
	rec.Jobs = model.Int(5000)
	out := verifyRecord(rec, item, geo.DefaultTable())
	require.NotNil(t, out.Jobs)

	rec2 := model.NewRecord(item.URL)
	rec2.Jobs = model.Int(4000)
	out2 := verifyRecord(rec2, item, geo.DefaultTable())
	assert.Nil(t, out2.Jobs)
}

func TestVerifyRecord_StateAttestedViaCity(t *testing.T) {
	item := verifyItem("Plant coming up", "A new plant will come up in Bengaluru.")
	rec := model.NewRecord(item.URL)
	rec.State = model.String("karnataka")

	out := verifyRecord(rec, item, geo.DefaultTable())

	require.NotNil(t, out.State)
	assert.Equal(t, "Karnataka", *out.State)
}

func TestVerifyRecord_StateNotInText(t *testing.T) {
	item := verifyItem("Plant coming up", "A new plant will come up soon.")
	rec := model.NewRecord(item.URL)
	rec.State = model.String("Karnataka")

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.State)
	assert.Contains(t, out.Rationale, "dropped unattested state")
}

func TestVerifyRecord_DateFromFeedMetadata(t *testing.T) {
	item := verifyItem("Dated news", "The project was cleared.")
	item.PublishedAt = model.String("2025-02-10")

	rec := model.NewRecord(item.URL)
	rec.AnnouncementDate = model.String("2025-02-10")
	out := verifyRecord(rec, item, geo.DefaultTable())
	require.NotNil(t, out.AnnouncementDate)

	rec2 := model.NewRecord(item.URL)
	rec2.AnnouncementDate = model.String("2025-02-09")
	out2 := verifyRecord(rec2, item, geo.DefaultTable())
	assert.Nil(t, out2.AnnouncementDate)
}

func TestVerifyRecord_InvalidDateNulled(t *testing.T) {
	item := verifyItem("Dated news", "Announced on 2025-13-45 according to nobody.")
	rec := model.NewRecord(item.URL)
	rec.AnnouncementDate = model.String("2025-13-45")

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.AnnouncementDate)
}

func TestVerifyRecord_EnumValidation(t *testing.T) {
	item := verifyItem("News", "Some text.")
	rec := model.NewRecord(item.URL)
	pt := model.ProjectType("Mega")
	st := model.Status("Done")
	rec.ProjectType = &pt
	rec.Status = &st

	out := verifyRecord(rec, item, geo.DefaultTable())

	assert.Nil(t, out.ProjectType)
	assert.Nil(t, out.Status)
	assert.Contains(t, out.Rationale, "dropped invalid project type")
	assert.Contains(t, out.Rationale, "dropped invalid status")
}

func TestSectorLabels_UniqueAndNonEmpty(t *testing.T) {
	labels := sectorLabels()

	require.NotEmpty(t, labels)
	seen := map[string]bool{}
	for _, l := range labels {
		assert.False(t, seen[l], l)
		seen[l] = true
	}
	assert.Contains(t, labels, model.SectorSteel)
	assert.Contains(t, labels, model.SectorGreenHydrogen)
}
