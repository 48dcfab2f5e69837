package reconciler

import (
	"fmt"
	"sort"
	"time"

	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/sources"
)

// Result represents the outcome of a merge.
type Result struct {
	// Records holds one entry per canonical key.
	Records map[inventory.Key]*Record

	// Sources lists every source attempted, in merge order. It is the column
	// order of the report.
	Sources []sources.ID

	// Skipped lists the additional sources that could not be used.
	Skipped []sources.ID

	// Checksums identifies the content merged from each loaded source.
	Checksums map[sources.ID]uint64

	// Issues
	Warnings []Warning

	// Provenance tracking
	Provenance provenance.Map

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the merge.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics contains statistics about the merge.
type ResultStatistics struct {
	RowsProcessed    int
	RecordsCreated   int
	CanonicalUpdates int
	SourcesSkipped   int
}

// Warning is a recoverable problem found while merging. Line is set for
// row-level warnings.
type Warning struct {
	Source  sources.ID
	Path    string
	Line    int
	Message string
	Err     error
}

// String renders the warning for logs and reports. Source-level messages
// already name their source.
func (w Warning) String() string {
	if w.Line == 0 {
		return w.Message
	}
	where := w.Source.String()
	if w.Path != "" {
		where = w.Path
	}
	return fmt.Sprintf("%s:%d: %s", where, w.Line, w.Message)
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Records:    make(map[inventory.Key]*Record),
		Sources:    []sources.ID{},
		Checksums:  make(map[sources.ID]uint64),
		Warnings:   []Warning{},
		Provenance: make(provenance.Map),
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.SourcesSkipped = len(r.Skipped)
}

// List returns the records sorted by company, software and family. The order
// is total, so later stable sorts stay deterministic across runs.
func (r *Result) List() []*Record {
	list := make([]*Record, 0, len(r.Records))
	for _, rec := range r.Records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.Software != b.Software {
			return a.Software < b.Software
		}
		return a.Family < b.Family
	})
	return list
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	summary := fmt.Sprintf("Merged %d sources: %d records from %d rows, %d canonical updates",
		len(r.Sources), len(r.Records), s.RowsProcessed, s.CanonicalUpdates)
	if len(r.Skipped) > 0 {
		summary += fmt.Sprintf(", %d skipped", len(r.Skipped))
	}
	if len(r.Warnings) > 0 {
		summary += fmt.Sprintf(", %d warnings", len(r.Warnings))
	}
	return summary
}
