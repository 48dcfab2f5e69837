// Package provenance records how each reconciled plugin record reached its
// final state: which source created it, which sources confirmed it, raised it
// or lagged behind it, in the order the sources were merged.
package provenance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/sources"
	"github.com/agentstation/vstmap/pkg/versions"
)

// Event classifies one observation of a record by a source.
type Event string

const (
	// EventCreate means the source introduced the record.
	EventCreate Event = "create"
	// EventConfirm means the source reported the canonical version.
	EventConfirm Event = "confirm"
	// EventNewer means the source reported a newer version and became canonical.
	EventNewer Event = "newer"
	// EventOlder means the source reported an older version.
	EventOlder Event = "older"
	// EventSkip means the source was unusable and left the record Missing.
	EventSkip Event = "skip"
)

// Observation is one source's contribution to one record.
type Observation struct {
	Source     sources.ID `yaml:"source"`
	Event      Event      `yaml:"event"`
	Version    string     `yaml:"version,omitempty"`
	SDKVersion string     `yaml:"sdk_version,omitempty"`
	Line       int        `yaml:"line,omitempty"`

	// Canonical is the record's canonical version before this observation.
	Canonical    string `yaml:"canonical,omitempty"`
	CanonicalSDK string `yaml:"canonical_sdk,omitempty"`

	Reason    string    `yaml:"reason,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Map holds the observation history of every record.
type Map map[inventory.Key][]Observation

// Tracker records observations during a merge.
type Tracker interface {
	// Track appends an observation for a record.
	Track(key inventory.Key, obs Observation)

	// FindByKey returns the history of one record.
	FindByKey(key inventory.Key) []Observation

	// FindBySource returns every record history the source contributed to.
	FindBySource(id sources.ID) Map

	// Map returns a copy of the complete history.
	Map() Map

	// Clear removes all history.
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	history Map
	enabled bool
}

// NewTracker creates a tracker. A disabled tracker drops every observation.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		history: make(Map),
		enabled: enabled,
	}
}

// Track appends an observation for a record.
func (p *tracker) Track(key inventory.Key, obs Observation) {
	if !p.enabled {
		return
	}
	if obs.Timestamp.IsZero() {
		obs.Timestamp = time.Now().UTC()
	}
	p.history[key] = append(p.history[key], obs)
}

// FindByKey returns the history of one record.
func (p *tracker) FindByKey(key inventory.Key) []Observation {
	if !p.enabled {
		return nil
	}
	return p.history[key]
}

// FindBySource returns every record history the source contributed to.
func (p *tracker) FindBySource(id sources.ID) Map {
	if !p.enabled {
		return nil
	}

	result := make(Map)
	for key, history := range p.history {
		for _, obs := range history {
			if obs.Source == id {
				result[key] = append([]Observation{}, history...)
				break
			}
		}
	}
	return result
}

// Map returns a copy of the complete history.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	result := make(Map, len(p.history))
	for k, v := range p.history {
		result[k] = append([]Observation{}, v...)
	}
	return result
}

// Clear removes all history.
func (p *tracker) Clear() {
	p.history = make(Map)
}

// Entry is the history of one record in file form.
type Entry struct {
	Company      string          `yaml:"company"`
	Software     string          `yaml:"software"`
	Family       versions.Family `yaml:"family"`
	Observations []Observation   `yaml:"observations"`
}

// Key returns the record key of the entry.
func (e Entry) Key() inventory.Key {
	return inventory.Key{Software: e.Software, Company: e.Company, Family: e.Family}
}

// Entries flattens the map into entries sorted by company, software and family.
func (m Map) Entries() []Entry {
	entries := make([]Entry, 0, len(m))
	for key, history := range m {
		entries = append(entries, Entry{
			Company:      key.Company,
			Software:     key.Software,
			Family:       key.Family,
			Observations: history,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.Software != b.Software {
			return a.Software < b.Software
		}
		return a.Family < b.Family
	})
	return entries
}

// String renders the history for humans, one record per block.
func (m Map) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	for _, entry := range m.Entries() {
		sb.WriteString(fmt.Sprintf("%s: %s (%s)\n", entry.Company, entry.Software, entry.Family))
		sb.WriteString(strings.Repeat("-", 40))
		sb.WriteString("\n")
		for _, obs := range entry.Observations {
			sb.WriteString(fmt.Sprintf("  - %s %s v%s (SDK %s)", obs.Source, obs.Event, obs.Version, obs.SDKVersion))
			if obs.Canonical != "" && obs.Event != EventCreate && obs.Event != EventConfirm {
				sb.WriteString(fmt.Sprintf(", was v%s", obs.Canonical))
			}
			if obs.Reason != "" {
				sb.WriteString(fmt.Sprintf(": %s", obs.Reason))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// File represents a provenance file stored on disk.
type File struct {
	GeneratedAt utc.Time     `yaml:"generated_at"`
	Sources     []sources.ID `yaml:"sources"`
	Entries     []Entry      `yaml:"provenance"`
}

// Map rebuilds the keyed history from the file entries.
func (f *File) Map() Map {
	m := make(Map, len(f.Entries))
	for _, e := range f.Entries {
		m[e.Key()] = e.Observations
	}
	return m
}

// NewFile builds a file for the given merge order and history.
func NewFile(srcs []sources.ID, m Map) *File {
	return &File{
		GeneratedAt: utc.Now(),
		Sources:     srcs,
		Entries:     m.Entries(),
	}
}

// Save writes the file as YAML, creating parent directories as needed.
func Save(path string, f *File) error {
	data, err := yaml.MarshalWithOptions(f, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return fmt.Errorf("failed to marshal provenance: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return fmt.Errorf("failed to create provenance directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return fmt.Errorf("failed to write provenance file: %w", err)
	}
	return nil
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read provenance file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse provenance file: %w", err)
	}

	return &f, nil
}
