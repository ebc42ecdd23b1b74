package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_HasIDAndSourceURL(t *testing.T) {
	r := NewRecord("https://example.com/story")

	require.NotEmpty(t, r.ID)
	assert.Equal(t, "https://example.com/story", r.SourceURL)
	assert.Nil(t, r.Company)
	assert.Nil(t, r.AmountINRCrore)
}

func TestNewRecord_UniqueIDs(t *testing.T) {
	a := NewRecord("https://a.example")
	b := NewRecord("https://a.example")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestClone_Independent(t *testing.T) {
	r := NewRecord("https://example.com/x")
	r.Company = String("Tata Steel")
	r.AmountINRCrore = Float(1200)
	r.Jobs = Int(500)
	r.Status = StatusAnnounced.Ptr()
	r.Rationale = []string{"initial"}

	c := r.Clone()
	*c.Company = "changed"
	*c.AmountINRCrore = 1
	*c.Jobs = 9
	*c.Status = StatusOperational
	c.Rationale = append(c.Rationale, "extra")

	assert.Equal(t, "Tata Steel", *r.Company)
	assert.Equal(t, float64(1200), *r.AmountINRCrore)
	assert.Equal(t, 500, *r.Jobs)
	assert.Equal(t, StatusAnnounced, *r.Status)
	assert.Equal(t, []string{"initial"}, r.Rationale)
}

func TestClone_NilFieldsStayNil(t *testing.T) {
	r := NewRecord("https://example.com/x")
	c := r.Clone()

	assert.Nil(t, c.Company)
	assert.Nil(t, c.Sector)
	assert.Nil(t, c.AmountINRCrore)
	assert.Nil(t, c.ProjectType)
}

func TestFilledFieldCount(t *testing.T) {
	r := NewRecord("https://example.com/x")
	assert.Equal(t, 0, r.FilledFieldCount())

	r.Company = String("Adani Green")
	r.State = String("Gujarat")
	r.AmountINRCrore = Float(300)
	assert.Equal(t, 3, r.FilledFieldCount())

	r.Status = StatusMoU.Ptr()
	r.ProjectType = ProjectGreenfield.Ptr()
	assert.Equal(t, 5, r.FilledFieldCount())
}

func TestAddRationale_AppendsAndSkipsEmpty(t *testing.T) {
	r := NewRecord("https://example.com/x")
	r.AddRationale("amount repaired from text")
	r.AddRationale("")
	r.AddRationale("company canonicalized")

	assert.Equal(t, []string{"amount repaired from text", "company canonicalized"}, r.Rationale)
}

func TestAmountAndJobCount_Defaults(t *testing.T) {
	r := NewRecord("https://example.com/x")
	assert.Zero(t, r.Amount())
	assert.Zero(t, r.JobCount())

	r.AmountINRCrore = Float(42.5)
	r.Jobs = Int(1200)
	assert.Equal(t, 42.5, r.Amount())
	assert.Equal(t, 1200, r.JobCount())
}

func TestValidProjectType(t *testing.T) {
	assert.True(t, ValidProjectType(ProjectGreenfield))
	assert.True(t, ValidProjectType(ProjectMoU))
	assert.False(t, ValidProjectType(ProjectType("Megaproject")))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusOperational))
	assert.False(t, ValidStatus(Status("Rumoured")))
}

func TestProjectTypeForCategory(t *testing.T) {
	want := map[Category]ProjectType{
		CategoryMoU:       ProjectMoU,
		CategoryExpansion: ProjectExpansion,
		CategoryProposal:  ProjectProposal,
		CategoryIntent:    ProjectAnnouncement,
		CategoryOther:     "",
	}
	for _, c := range AllCategories() {
		assert.Equal(t, want[c], ProjectTypeForCategory(c), "category %s", c)
	}
}
