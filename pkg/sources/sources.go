// Package sources defines the inventory sources fed to the reconciler and the
// loading step that reads them.
//
// A source is one named origin of plugin rows: the main inventory or one of
// the additional inventories. Its ID is the file name stem and becomes the
// source's column in the report, so IDs within one run are unique.
//
// Example usage:
//
//	srcs := csvfile.FromPaths(paths)
//	loaded := sources.LoadAll(ctx, srcs, 4)
//	result, err := r.Merge(ctx, loaded[0], loaded[1:])
package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/logging"
)

// ID names a source. It is the header of the source's status column.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Source is anything that can produce one inventory table.
type Source interface {
	// ID returns the source name used in reports.
	ID() ID

	// Path returns where the source is read from, for diagnostics.
	Path() string

	// Load reads and parses the source. The checksum identifies the raw
	// content that was parsed.
	Load(ctx context.Context) (*inventory.Table, uint64, error)
}

// Loaded is the outcome of loading one source. Exactly one of Table and Err
// is set.
type Loaded struct {
	ID       ID
	Path     string
	Table    *inventory.Table
	Checksum uint64
	Err      error
}

// Failed reports whether the source could not be loaded.
func (l Loaded) Failed() bool {
	return l.Err != nil || l.Table == nil
}

// IDFromPath returns the file name of path without its extension.
func IDFromPath(path string) ID {
	base := filepath.Base(path)
	return ID(strings.TrimSuffix(base, filepath.Ext(base)))
}

// AssignIDs derives one ID per path, in order. A stem already taken by an
// earlier path gets " (2)", " (3)" and so on appended.
func AssignIDs(paths []string) []ID {
	ids := make([]ID, len(paths))
	taken := make(map[ID]bool, len(paths))
	for i, path := range paths {
		id := IDFromPath(path)
		for n := 2; taken[id]; n++ {
			id = ID(fmt.Sprintf("%s (%d)", IDFromPath(path), n))
		}
		taken[id] = true
		ids[i] = id
	}
	return ids
}

// LoadAll loads every source exactly once with at most concurrency loads in
// flight and returns the outcomes in argument order. Load failures are
// reported per source rather than aborting the batch.
func LoadAll(ctx context.Context, srcs []Source, concurrency int) []Loaded {
	if concurrency <= 0 {
		concurrency = constants.DefaultLoadConcurrency
	}

	logger := logging.FromContext(ctx)
	results := make([]Loaded, len(srcs))

	p := pool.New().WithMaxGoroutines(concurrency)
	for i, src := range srcs {
		p.Go(func() {
			results[i] = load(ctx, src)
		})
	}
	p.Wait()

	for _, r := range results {
		if r.Err != nil {
			logger.Debug().Err(r.Err).Str("source", r.ID.String()).Msg("Source failed to load")
			continue
		}
		logger.Debug().
			Str("source", r.ID.String()).
			Str("path", r.Path).
			Int("rows", r.Table.Len()).
			Str("checksum", fmt.Sprintf("%016x", r.Checksum)).
			Msg("Loaded source")
	}

	return results
}

func load(ctx context.Context, src Source) Loaded {
	loaded := Loaded{ID: src.ID(), Path: src.Path()}
	if err := ctx.Err(); err != nil {
		loaded.Err = err
		return loaded
	}
	loaded.Table, loaded.Checksum, loaded.Err = src.Load(ctx)
	if loaded.Err != nil {
		loaded.Table = nil
	}
	return loaded
}
