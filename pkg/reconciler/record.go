package reconciler

import (
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/sources"
	"github.com/agentstation/vstmap/pkg/versions"
)

// Record is one reconciled plugin. Version and SDKVersion are canonical: they
// belong to the newest row observed for the record's key. Statuses holds one
// entry for every source processed so far.
type Record struct {
	Company    string
	Software   string
	Version    string
	SDKVersion string
	Type       string
	Family     versions.Family

	// Origin is the source that created the record.
	Origin sources.ID

	Statuses map[sources.ID]Status
}

// newRecord seeds a record from the row that introduced its key. Every source
// known before the current one is Missing.
func newRecord(row inventory.Row, src sources.ID, known []sources.ID) *Record {
	r := &Record{
		Company:    row.Company,
		Software:   row.Software,
		Version:    row.Version,
		SDKVersion: row.SDKVersion,
		Type:       row.Type,
		Family:     row.Family(),
		Origin:     src,
		Statuses:   make(map[sources.ID]Status, len(known)+1),
	}
	for _, id := range known {
		r.Statuses[id] = Missing()
	}
	r.Statuses[src] = Ok()
	return r
}

// Key returns the record's canonical key.
func (r *Record) Key() inventory.Key {
	return inventory.Key{Software: r.Software, Company: r.Company, Family: r.Family}
}

// Status returns the status of one source, StatusUnset if it has none.
func (r *Record) Status(id sources.ID) Status {
	return r.Statuses[id]
}

// HasMissing reports whether any source lacks the plugin.
func (r *Record) HasMissing() bool {
	for _, s := range r.Statuses {
		if s.IsMissing() {
			return true
		}
	}
	return false
}

// HasUpdate reports whether any source holds a stale version.
func (r *Record) HasUpdate() bool {
	for _, s := range r.Statuses {
		if s.IsUpdate() {
			return true
		}
	}
	return false
}

// canonical replaces the canonical fields with the row's.
func (r *Record) canonical(row inventory.Row) {
	r.Version = row.Version
	r.SDKVersion = row.SDKVersion
	r.Type = row.Type
}
