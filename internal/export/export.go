// Package export serializes scan results as JSON, CSV, or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/growthlens/investscan/internal/model"
)

// Envelope is the serialized form of one scan: the records plus optional
// stage diagnostics.
type Envelope struct {
	Records     []model.InvestmentRecord `json:"records"`
	Counts      *model.StageCounts       `json:"counts,omitempty"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// columns defines the ordered tabular output columns shared by CSV and XLSX.
var columns = []string{
	"Company",
	"Sector",
	"Amount (INR Crore)",
	"Jobs",
	"State",
	"District",
	"Project Type",
	"Status",
	"Announcement Date",
	"Opportunity Score",
	"Source Name",
	"Source URL",
	"Rationale",
}

// Write serializes the envelope in the named format ("json", "csv", "xlsx").
func Write(w io.Writer, format string, env Envelope) error {
	switch format {
	case "json":
		return WriteJSON(w, env)
	case "csv":
		return WriteCSV(w, env.Records)
	case "xlsx":
		return WriteXLSX(w, env.Records)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// WriteJSON writes the envelope as indented JSON.
func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// ReadJSON parses a saved scan. Accepts either the envelope form or a bare
// record array.
func ReadJSON(r io.Reader) (*Envelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "export: read input")
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Records != nil {
		return &env, nil
	}

	var records []model.InvestmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "export: parse input")
	}
	return &Envelope{Records: records}, nil
}

// WriteCSV writes records as a CSV table with a header row.
func WriteCSV(w io.Writer, records []model.InvestmentRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, rec := range records {
		if err := cw.Write(buildRow(rec)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

// buildRow maps a record to a CSV row in column order.
func buildRow(rec model.InvestmentRecord) []string {
	return []string{
		strVal(rec.Company),
		strVal(rec.Sector),
		floatVal(rec.AmountINRCrore),
		intVal(rec.Jobs),
		strVal(rec.State),
		strVal(rec.District),
		projectTypeVal(rec.ProjectType),
		statusVal(rec.Status),
		strVal(rec.AnnouncementDate),
		fmt.Sprintf("%d", rec.OpportunityScore),
		strVal(rec.SourceName),
		rec.SourceURL,
		strings.Join(rec.Rationale, "; "),
	}
}

// WriteXLSX writes records as a single-sheet workbook with typed number
// cells so spreadsheet sorting works on amounts and scores.
func WriteXLSX(w io.Writer, records []model.InvestmentRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Investments")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		row.AddCell().SetString(strVal(rec.Company))
		row.AddCell().SetString(strVal(rec.Sector))
		if rec.AmountINRCrore != nil {
			row.AddCell().SetFloat(*rec.AmountINRCrore)
		} else {
			row.AddCell()
		}
		if rec.Jobs != nil {
			row.AddCell().SetInt(*rec.Jobs)
		} else {
			row.AddCell()
		}
		row.AddCell().SetString(strVal(rec.State))
		row.AddCell().SetString(strVal(rec.District))
		row.AddCell().SetString(projectTypeVal(rec.ProjectType))
		row.AddCell().SetString(statusVal(rec.Status))
		row.AddCell().SetString(strVal(rec.AnnouncementDate))
		row.AddCell().SetInt(rec.OpportunityScore)
		row.AddCell().SetString(strVal(rec.SourceName))
		row.AddCell().SetString(rec.SourceURL)
		row.AddCell().SetString(strings.Join(rec.Rationale, "; "))
	}

	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatVal(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%g", *p)
}

func intVal(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}

func projectTypeVal(p *model.ProjectType) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func statusVal(p *model.Status) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
