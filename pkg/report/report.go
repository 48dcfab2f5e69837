// Package report projects merged records into the tabular report: one row per
// plugin with a status column per source, the overall collaboration verdict
// and remarks naming every stale source.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agentstation/utc"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/reconciler"
	"github.com/agentstation/vstmap/pkg/sources"
)

// Verdict is the overall readiness of a plugin across all sources.
type Verdict string

const (
	// VerdictYes means every source holds the canonical version.
	VerdictYes Verdict = "Yes"
	// VerdictNo means at least one source lacks the plugin.
	VerdictNo Verdict = "No"
	// VerdictCheck means every source has the plugin but some are stale.
	VerdictCheck Verdict = "Check version"
)

// SourceStatus is one source cell of a report row.
type SourceStatus struct {
	Source          sources.ID `json:"source" yaml:"source"`
	Status          string     `json:"status" yaml:"status"`
	OriginalVersion string     `json:"original_version,omitempty" yaml:"original_version,omitempty"`
}

// Row is one plugin in the report.
type Row struct {
	Company       string         `json:"company" yaml:"company"`
	Software      string         `json:"software" yaml:"software"`
	Version       string         `json:"version" yaml:"version"`
	SDKVersion    string         `json:"sdk_version" yaml:"sdk_version"`
	Type          string         `json:"type" yaml:"type"`
	Sources       []SourceStatus `json:"sources" yaml:"sources"`
	Collaboration Verdict        `json:"collaboration_material" yaml:"collaboration_material"`
	Remarks       string         `json:"remarks,omitempty" yaml:"remarks,omitempty"`
}

// Report is the projected, ordered result of a merge.
type Report struct {
	Sources     []sources.ID `json:"sources" yaml:"sources"`
	Rows        []Row        `json:"rows" yaml:"rows"`
	Warnings    []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt utc.Time     `json:"generated_at" yaml:"generated_at"`
}

// New projects and orders every record of a merge result.
func New(result *reconciler.Result) *Report {
	records := result.List()
	Order(records)

	rep := &Report{
		Sources:     append([]sources.ID(nil), result.Sources...),
		Rows:        make([]Row, 0, len(records)),
		GeneratedAt: utc.Now(),
	}
	for _, rec := range records {
		rep.Rows = append(rep.Rows, Project(rec, result.Sources))
	}
	for _, w := range result.Warnings {
		rep.Warnings = append(rep.Warnings, w.String())
	}
	return rep
}

// statusOf returns the status of a source, reading an unset status as Missing.
func statusOf(rec *reconciler.Record, id sources.ID) reconciler.Status {
	st := rec.Status(id)
	if st.Kind == reconciler.StatusUnset {
		return reconciler.Missing()
	}
	return st
}

// VerdictOf derives the collaboration verdict of a record over the given
// sources: No if any is Missing, else Check version if any is Update, else Yes.
// A source with no recorded status counts as Missing.
func VerdictOf(rec *reconciler.Record, srcs []sources.ID) Verdict {
	for _, id := range srcs {
		if rec.Status(id).Kind == reconciler.StatusUnset {
			return VerdictNo
		}
	}
	switch {
	case rec.HasMissing():
		return VerdictNo
	case rec.HasUpdate():
		return VerdictCheck
	default:
		return VerdictYes
	}
}

// RemarksOf lists every stale source with the version it held, in source
// order, after the canonical version. It is empty when no source is stale.
func RemarksOf(rec *reconciler.Record, srcs []sources.ID) string {
	var stale []string
	for _, id := range srcs {
		if st := statusOf(rec, id); st.IsUpdate() {
			stale = append(stale, fmt.Sprintf("%s: v%s", id, st.OriginalVersion))
		}
	}
	if len(stale) == 0 {
		return ""
	}
	return fmt.Sprintf("Current: v%s; %s", rec.Version, strings.Join(stale, "; "))
}

// Project builds the report row of one record.
func Project(rec *reconciler.Record, srcs []sources.ID) Row {
	row := Row{
		Company:       rec.Company,
		Software:      rec.Software,
		Version:       rec.Version,
		SDKVersion:    rec.SDKVersion,
		Type:          rec.Type,
		Sources:       make([]SourceStatus, 0, len(srcs)),
		Collaboration: VerdictOf(rec, srcs),
		Remarks:       RemarksOf(rec, srcs),
	}
	for _, id := range srcs {
		st := statusOf(rec, id)
		row.Sources = append(row.Sources, SourceStatus{
			Source:          id,
			Status:          st.String(),
			OriginalVersion: st.OriginalVersion,
		})
	}
	return row
}

// Order sorts records by company, then software, ignoring case. The sort is
// stable, so records equal under that comparison keep their input order.
func Order(records []*reconciler.Record) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(records, func(i, j int) bool {
		if o := c.CompareString(records[i].Company, records[j].Company); o != 0 {
			return o < 0
		}
		return c.CompareString(records[i].Software, records[j].Software) < 0
	})
}

// Header returns the report columns: inventory columns, one column per
// source, then the verdict and remarks.
func (r *Report) Header() []string {
	header := constants.InventoryColumns()
	for _, id := range r.Sources {
		header = append(header, id.String())
	}
	return append(header, constants.ColumnCollaboration, constants.ColumnRemarks)
}

// Records returns the report body in column order.
func (r *Report) Records() [][]string {
	records := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := []string{row.Company, row.Software, row.Version, row.SDKVersion, row.Type}
		for _, st := range row.Sources {
			rec = append(rec, st.Status)
		}
		rec = append(rec, string(row.Collaboration), row.Remarks)
		records = append(records, rec)
	}
	return records
}

// Tally counts rows per verdict.
func (r *Report) Tally() map[Verdict]int {
	tally := make(map[Verdict]int, 3)
	for _, row := range r.Rows {
		tally[row.Collaboration]++
	}
	return tally
}

// WriteCSV writes the header and every row.
func (r *Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(r.Header()); err != nil {
		return err
	}
	if err := writer.WriteAll(r.Records()); err != nil {
		return err
	}
	return writer.Error()
}
