// Package table converts reports and provenance histories into rows for
// terminal tables.
package table

import (
	"fmt"
	"strconv"

	"github.com/agentstation/vstmap/internal/cmd/emoji"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/report"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ReportToTableData converts a report to table format. Status cells carry a
// symbol and stale cells show the version the source holds.
func ReportToTableData(rep *report.Report) Data {
	data := Data{Headers: rep.Header()}

	for _, row := range rep.Rows {
		cells := []string{row.Company, row.Software, row.Version, row.SDKVersion, row.Type}
		for _, s := range row.Sources {
			cells = append(cells, statusCell(s))
		}
		cells = append(cells, string(row.Collaboration), row.Remarks)
		data.Rows = append(data.Rows, cells)
	}

	for range data.Headers {
		data.ColumnAlignment = append(data.ColumnAlignment, AlignLeft)
	}
	return data
}

func statusCell(s report.SourceStatus) string {
	switch s.Status {
	case "Ok":
		return emoji.Success + " Ok"
	case "Missing":
		return emoji.Error + " Missing"
	case "Update":
		return fmt.Sprintf("%s Update (v%s)", emoji.Warning, s.OriginalVersion)
	default:
		return emoji.Unknown + " " + s.Status
	}
}

// ProvenanceToTableData converts provenance history to table format.
// Each record spans one row per observation; the record columns are only
// filled on its first row.
func ProvenanceToTableData(entries []provenance.Entry) Data {
	data := Data{
		Headers: []string{"Company", "Software", "Family", "Source", "Event", "Version", "SDK Version", "Line", "Was", "Reason"},
	}

	for _, entry := range entries {
		for i, obs := range entry.Observations {
			company, software, family := "", "", ""
			if i == 0 {
				company, software, family = entry.Company, entry.Software, entry.Family.String()
			}

			line := ""
			if obs.Line > 0 {
				line = strconv.Itoa(obs.Line)
			}

			was := ""
			if obs.Event == provenance.EventNewer || obs.Event == provenance.EventOlder {
				was = obs.Canonical
			}

			data.Rows = append(data.Rows, []string{
				company, software, family,
				string(obs.Source), string(obs.Event),
				obs.Version, obs.SDKVersion, line, was, obs.Reason,
			})
		}
	}

	data.ColumnAlignment = make([]Align, len(data.Headers))
	data.ColumnAlignment[7] = AlignRight
	return data
}
