package model

import "github.com/google/uuid"

// ProjectType categorizes the stage/shape of an announced project.
type ProjectType string

const (
	ProjectGreenfield   ProjectType = "Greenfield"
	ProjectBrownfield   ProjectType = "Brownfield"
	ProjectExpansion    ProjectType = "Expansion"
	ProjectMoU          ProjectType = "MoU"
	ProjectProposal     ProjectType = "Proposal"
	ProjectAnnouncement ProjectType = "Announcement"
)

// Ptr returns a pointer to the project type, for nullable record fields.
func (p ProjectType) Ptr() *ProjectType { return &p }

// ValidProjectType reports whether p is one of the defined project types.
func ValidProjectType(p ProjectType) bool {
	switch p {
	case ProjectGreenfield, ProjectBrownfield, ProjectExpansion, ProjectMoU, ProjectProposal, ProjectAnnouncement:
		return true
	}
	return false
}

// Status tracks how far along an announced investment is.
type Status string

const (
	StatusMoU          Status = "MoU"
	StatusAnnounced    Status = "Announced"
	StatusApproved     Status = "Approved"
	StatusConstruction Status = "Construction"
	StatusOperational  Status = "Operational"
)

// Ptr returns a pointer to the status, for nullable record fields.
func (s Status) Ptr() *Status { return &s }

// ValidStatus reports whether s is one of the defined statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusMoU, StatusAnnounced, StatusApproved, StatusConstruction, StatusOperational:
		return true
	}
	return false
}

// Canonical sector labels assigned by inference and refinement.
const (
	SectorSteel         = "Steel"
	SectorRenewable     = "Renewable Energy"
	SectorSemiconductor = "Semiconductor"
	SectorTextiles      = "Textiles"
	SectorFoodProc      = "Food Processing"
	SectorAutomobile    = "Automobile"
	SectorPharma        = "Pharmaceuticals"
	SectorITDataCentre  = "IT/Data Centre"
	SectorChemicals     = "Chemicals"
	SectorCement        = "Cement"
	SectorElectronics   = "Electronics"
	SectorDataCentre    = "Data Centre"
	SectorITSoftware    = "IT/Software"
	SectorGreenHydrogen = "Green Hydrogen"
	SectorRefinery      = "Refinery & Petrochemicals"
	SectorGasPipelines  = "Gas & Pipelines"
	SectorOilGas        = "Oil & Gas"
	SectorPowerGen      = "Power Generation"
	SectorEMS           = "Electronics/EMS"
)

// InvestmentRecord is the canonical structured output unit: one announced
// investment, attributed to a single state. Nullable fields are pointers;
// nil means the source text did not support a value.
type InvestmentRecord struct {
	ID               string       `json:"id"`
	Company          *string      `json:"company"`
	Sector           *string      `json:"sector"`
	AmountINRCrore   *float64     `json:"amount_in_inr_crore"`
	Jobs             *int         `json:"jobs"`
	State            *string      `json:"state"`
	District         *string      `json:"district"`
	ProjectType      *ProjectType `json:"project_type"`
	Status           *Status      `json:"status"`
	AnnouncementDate *string      `json:"announcement_date"`
	SourceURL        string       `json:"source_url"`
	SourceName       *string      `json:"source_name"`
	OpportunityScore int          `json:"opportunity_score"`
	Rationale        []string     `json:"rationale,omitempty"`
}

// NewRecord creates an empty record bound to its source URL with a fresh ID.
func NewRecord(sourceURL string) InvestmentRecord {
	return InvestmentRecord{ID: uuid.NewString(), SourceURL: sourceURL}
}

// Clone returns a deep copy. Repair passes operate on copies so records never
// share mutable state.
func (r InvestmentRecord) Clone() InvestmentRecord {
	out := r
	out.Company = cloneString(r.Company)
	out.Sector = cloneString(r.Sector)
	out.AmountINRCrore = cloneFloat(r.AmountINRCrore)
	out.Jobs = cloneInt(r.Jobs)
	out.State = cloneString(r.State)
	out.District = cloneString(r.District)
	if r.ProjectType != nil {
		p := *r.ProjectType
		out.ProjectType = &p
	}
	if r.Status != nil {
		s := *r.Status
		out.Status = &s
	}
	out.AnnouncementDate = cloneString(r.AnnouncementDate)
	out.SourceName = cloneString(r.SourceName)
	out.Rationale = append([]string(nil), r.Rationale...)
	return out
}

// AddRationale appends an audit note describing a repair or enrichment.
func (r *InvestmentRecord) AddRationale(note string) {
	if note == "" {
		return
	}
	r.Rationale = append(r.Rationale, note)
}

// FilledFieldCount counts non-nil nullable fields. Dedup tie-breaks prefer the
// record with more of them.
func (r InvestmentRecord) FilledFieldCount() int {
	n := 0
	if r.Company != nil {
		n++
	}
	if r.Sector != nil {
		n++
	}
	if r.AmountINRCrore != nil {
		n++
	}
	if r.Jobs != nil {
		n++
	}
	if r.State != nil {
		n++
	}
	if r.District != nil {
		n++
	}
	if r.ProjectType != nil {
		n++
	}
	if r.Status != nil {
		n++
	}
	if r.AnnouncementDate != nil {
		n++
	}
	if r.SourceName != nil {
		n++
	}
	return n
}

// Amount returns the amount or 0 when unset.
func (r InvestmentRecord) Amount() float64 {
	if r.AmountINRCrore == nil {
		return 0
	}
	return *r.AmountINRCrore
}

// JobCount returns the jobs figure or 0 when unset.
func (r InvestmentRecord) JobCount() int {
	if r.Jobs == nil {
		return 0
	}
	return *r.Jobs
}

// String returns a pointer to s, for nullable record fields.
func String(s string) *string { return &s }

// Float returns a pointer to f, for nullable record fields.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i, for nullable record fields.
func Int(i int) *int { return &i }

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
