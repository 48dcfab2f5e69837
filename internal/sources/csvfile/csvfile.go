// Package csvfile implements an inventory source backed by a CSV file on disk.
package csvfile

import (
	"bytes"
	"context"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/sources"
)

// Source loads one inventory CSV file.
type Source struct {
	id   sources.ID
	path string
}

var _ sources.Source = (*Source)(nil)

// Option configures a CSV source.
type Option func(*Source)

// WithID overrides the source ID derived from the file name.
func WithID(id sources.ID) Option {
	return func(s *Source) {
		s.id = id
	}
}

// New creates a source for the file at path.
func New(path string, opts ...Option) *Source {
	s := &Source{
		id:   sources.IDFromPath(path),
		path: path,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromPaths creates one source per path, in order, with unique IDs.
func FromPaths(paths []string) []sources.Source {
	ids := sources.AssignIDs(paths)
	srcs := make([]sources.Source, len(paths))
	for i, path := range paths {
		srcs[i] = New(path, WithID(ids[i]))
	}
	return srcs
}

// ID returns the source name.
func (s *Source) ID() sources.ID {
	return s.id
}

// Path returns the file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads the whole file, checksums it and parses it. Header validation is
// left to the reconciler.
func (s *Source) Load(_ context.Context) (*inventory.Table, uint64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, 0, errors.WrapIO("read", s.path, err)
	}

	sum := xxhash.Sum64(data)

	table, err := inventory.ReadCSV(bytes.NewReader(data))
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) {
			perr.File = s.path
		}
		var ferr *errors.SourceFormatError
		if errors.As(err, &ferr) {
			ferr.Source = s.id.String()
			ferr.Path = s.path
		}
		return nil, sum, err
	}

	return table, sum, nil
}
