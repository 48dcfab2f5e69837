package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/logging"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/sources"
	"github.com/agentstation/vstmap/pkg/versions"
)

// merge is the working state of one Merge call. It is never shared.
type merge struct {
	result  *Result
	tracker provenance.Tracker
}

// source merges every row of one validated source, then marks the source
// Missing on every record it did not report.
func (m *merge) source(ctx context.Context, src sources.Loaded) error {
	ctx = logging.WithSource(ctx, src.ID.String())
	logger := logging.FromContext(ctx)

	known := append([]sources.ID(nil), m.result.Sources...)
	seen := make(map[inventory.Key]bool)

	for _, row := range src.Table.Rows {
		m.result.Metadata.Stats.RowsProcessed++

		if strings.TrimSpace(row.SDKVersion) == "" {
			m.result.Warnings = append(m.result.Warnings, Warning{
				Source:  src.ID,
				Path:    src.Path,
				Line:    row.Line,
				Message: "empty SDK Version for " + row.Company + " / " + row.Software + ", compared as the oldest version",
			})
			logging.FromContext(logging.WithPlugin(ctx, row.Company, row.Software)).Warn().
				Int("line", row.Line).
				Msg("Empty SDK version")
		}

		key := inventory.KeyOf(row)
		rec, exists := m.result.Records[key]
		if !exists {
			m.result.Records[key] = newRecord(row, src.ID, known)
			m.result.Metadata.Stats.RecordsCreated++
			m.track(key, src.ID, provenance.EventCreate, row, "", "", "")
			seen[key] = true
			continue
		}

		if err := m.observe(rec, row, src.ID, seen[key]); err != nil {
			logger.Error().Err(err).
				Str("key", key.String()).
				Int("line", row.Line).
				Msg("Version family mismatch within one key")
			return err
		}
		seen[key] = true
	}

	m.result.Sources = append(m.result.Sources, src.ID)
	m.result.Checksums[src.ID] = src.Checksum

	missing := 0
	for _, rec := range m.result.Records {
		if _, ok := rec.Statuses[src.ID]; !ok {
			rec.Statuses[src.ID] = Missing()
			missing++
		}
	}

	logger.Debug().
		Int("rows", src.Table.Len()).
		Int("missing", missing).
		Msg("Merged source")

	return nil
}

// observe compares a row against the record sharing its key and updates the
// record. seenThisPass is true when the same source already reported the key.
func (m *merge) observe(rec *Record, row inventory.Row, id sources.ID, seenThisPass bool) error {
	key := rec.Key()
	prevVersion, prevSDK := rec.Version, rec.SDKVersion

	ord, err := versions.ComparePlugin(row.SDKVersion, row.Version, rec.SDKVersion, rec.Version)
	if err != nil {
		return err
	}

	switch ord {
	case versions.Equal:
		rec.Statuses[id] = Ok()
		m.track(key, id, provenance.EventConfirm, row, prevVersion, prevSDK, "")

	case versions.Greater:
		for other, st := range rec.Statuses {
			if other != id && st.IsOk() {
				rec.Statuses[other] = Update(prevVersion, prevSDK)
			}
		}
		rec.canonical(row)
		rec.Statuses[id] = Ok()
		m.result.Metadata.Stats.CanonicalUpdates++
		m.track(key, id, provenance.EventNewer, row, prevVersion, prevSDK, "")

	case versions.Less:
		current := rec.Statuses[id]
		switch {
		case seenThisPass && current.IsOk():
			m.track(key, id, provenance.EventOlder, row, prevVersion, prevSDK,
				"source already reported the current version")

		case seenThisPass && current.IsUpdate():
			newer, err := versions.ComparePlugin(row.SDKVersion, row.Version,
				current.OriginalSDKVersion, current.OriginalVersion)
			if err != nil {
				return err
			}
			if newer == versions.Greater {
				rec.Statuses[id] = Update(row.Version, row.SDKVersion)
			}
			m.track(key, id, provenance.EventOlder, row, prevVersion, prevSDK,
				"source reported the plugin more than once")

		default:
			rec.Statuses[id] = Update(row.Version, row.SDKVersion)
			m.track(key, id, provenance.EventOlder, row, prevVersion, prevSDK, "")
		}
	}

	return nil
}

// skip registers an unusable additional source: it gets a column, every record
// reads Missing for it, and a warning explains why.
func (m *merge) skip(ctx context.Context, src sources.Loaded, err error) {
	logging.FromContext(ctx).Warn().
		Err(err).
		Str("source", src.ID.String()).
		Str("path", src.Path).
		Msg("Skipping source")

	m.result.Warnings = append(m.result.Warnings, Warning{
		Source:  src.ID,
		Path:    src.Path,
		Message: "skipped " + src.ID.String() + ": " + err.Error(),
		Err:     err,
	})
	m.result.Skipped = append(m.result.Skipped, src.ID)
	m.result.Sources = append(m.result.Sources, src.ID)

	for key, rec := range m.result.Records {
		rec.Statuses[src.ID] = Missing()
		m.tracker.Track(key, provenance.Observation{
			Source: src.ID,
			Event:  provenance.EventSkip,
			Reason: err.Error(),
		})
	}
}

func (m *merge) track(key inventory.Key, id sources.ID, event provenance.Event, row inventory.Row, canonical, canonicalSDK, reason string) {
	m.tracker.Track(key, provenance.Observation{
		Source:       id,
		Event:        event,
		Version:      row.Version,
		SDKVersion:   row.SDKVersion,
		Line:         row.Line,
		Canonical:    canonical,
		CanonicalSDK: canonicalSDK,
		Reason:       reason,
	})
}
