// Package inventory defines plugin inventory rows, their canonical identity,
// and the tabular (CSV) encoding shared by every source and by the exporter.
package inventory

import (
	"fmt"
	"strings"

	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/versions"
)

// Row is one plugin observation from one source. Rows are never mutated after
// they are read.
type Row struct {
	Company    string `json:"company" yaml:"company"`
	Software   string `json:"software" yaml:"software"`
	Version    string `json:"version" yaml:"version"`
	SDKVersion string `json:"sdk_version" yaml:"sdk_version"`
	Type       string `json:"type" yaml:"type"`

	// Line is the 1-based record position in the source file; 0 when unknown.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// Family returns the numbering family of the row's SDK version.
func (r Row) Family() versions.Family {
	return versions.FamilyOf(r.SDKVersion)
}

// Table is the complete parsed row set of one source.
type Table struct {
	Header []string
	Rows   []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// MissingColumns returns the entries of required that do not appear in header.
// Header names are compared after trimming surrounding whitespace.
func MissingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateHeader returns a *errors.SourceFormatError listing every required
// column missing from header, or nil when all are present.
func ValidateHeader(header, required []string) error {
	missing := MissingColumns(header, required)
	if len(missing) == 0 {
		return nil
	}
	return &errors.SourceFormatError{Missing: missing}
}

// Key identifies one logical plugin across sources. The SDK version family is
// part of the identity, so a legacy and a current build of the same plugin are
// tracked as two independent records. Key is comparable and used directly as
// a map key.
type Key struct {
	Software string          `json:"software" yaml:"software"`
	Company  string          `json:"company" yaml:"company"`
	Family   versions.Family `json:"family" yaml:"family"`
}

// KeyOf derives the canonical key of a row.
func KeyOf(row Row) Key {
	return Key{
		Software: row.Software,
		Company:  row.Company,
		Family:   row.Family(),
	}
}

// String renders the key for logs. It is not an identity; compare Keys directly.
func (k Key) String() string {
	return fmt.Sprintf("%s / %s (%s)", k.Company, k.Software, k.Family)
}
