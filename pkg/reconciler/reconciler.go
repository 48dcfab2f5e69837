// Package reconciler merges plugin inventories from several sources into one
// set of records, tracking for every source whether it holds the newest
// version of each plugin.
//
// Sources are merged strictly in order: the main source first, then every
// additional source in the order given. Later sources are compared against the
// state left by earlier ones, so the order is part of the result.
package reconciler

import (
	"context"

	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/logging"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/sources"
)

// Reconciler merges loaded sources.
type Reconciler interface {
	// Merge reconciles the main source and the additional sources, in order.
	// An unusable main source is fatal; an unusable additional source is
	// skipped with a warning and reads Missing on every record. Source IDs
	// must be unique.
	Merge(ctx context.Context, main sources.Loaded, additional []sources.Loaded) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	tracking bool
	tracker  provenance.Tracker
	required []string
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		tracking: options.tracking,
		tracker:  options.tracker,
		required: options.required,
	}, nil
}

// Merge performs the merge one source at a time.
func (r *reconciler) Merge(ctx context.Context, main sources.Loaded, additional []sources.Loaded) (*Result, error) {
	logger := logging.FromContext(ctx)

	tracker := r.tracker
	if tracker == nil {
		tracker = provenance.NewTracker(r.tracking)
	}

	if err := uniqueIDs(main, additional); err != nil {
		return nil, err
	}

	m := &merge{
		result:  NewResult(),
		tracker: tracker,
	}

	// Step 1: the main source must be usable
	if err := r.validate(main); err != nil {
		logger.Error().Err(err).Str("source", main.ID.String()).Msg("Main source is unusable")
		return nil, err
	}

	logger.Info().
		Str("main", main.ID.String()).
		Int("additional", len(additional)).
		Msg("Starting merge")

	// Step 2: merge the main source
	if err := m.source(ctx, main); err != nil {
		return nil, err
	}

	// Step 3: merge every additional source in order
	for _, src := range additional {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := r.validate(src); err != nil {
			m.skip(ctx, src, err)
			continue
		}
		if err := m.source(ctx, src); err != nil {
			return nil, err
		}
	}

	// Step 4: build result
	result := m.result
	result.Provenance = tracker.Map()
	result.Finalize()

	logger.Info().
		Int("records", len(result.Records)).
		Int("rows", result.Metadata.Stats.RowsProcessed).
		Int("skipped", len(result.Skipped)).
		Int("warnings", len(result.Warnings)).
		Dur("duration", result.Metadata.Duration).
		Msg("Merge completed")

	return result, nil
}

// validate checks that a loaded source can be merged. Every failure is a
// *errors.SourceFormatError naming the source.
func (r *reconciler) validate(src sources.Loaded) error {
	if src.Err != nil {
		var ferr *errors.SourceFormatError
		if errors.As(src.Err, &ferr) {
			if ferr.Source == "" {
				ferr.Source = src.ID.String()
			}
			if ferr.Path == "" {
				ferr.Path = src.Path
			}
			return ferr
		}
		return errors.NewSourceFormatError(src.ID.String(), src.Path, "", src.Err)
	}

	if src.Table == nil {
		return errors.NewSourceFormatError(src.ID.String(), src.Path, "no data", nil)
	}

	if err := inventory.ValidateHeader(src.Table.Header, r.required); err != nil {
		var ferr *errors.SourceFormatError
		if errors.As(err, &ferr) {
			ferr.Source = src.ID.String()
			ferr.Path = src.Path
			return ferr
		}
		return err
	}

	return nil
}

// uniqueIDs rejects a source list in which an ID repeats. Statuses are keyed
// by source ID, so two sources sharing one would overwrite each other.
func uniqueIDs(main sources.Loaded, additional []sources.Loaded) error {
	seen := make(map[sources.ID]bool, len(additional)+1)
	for _, src := range append([]sources.Loaded{main}, additional...) {
		if seen[src.ID] {
			return errors.NewValidationError("source id", src.ID.String(), "must be unique across sources")
		}
		seen[src.ID] = true
	}
	return nil
}
