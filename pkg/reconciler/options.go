package reconciler

import (
	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/provenance"
)

// options configures a reconciler.
type options struct {
	tracking bool
	tracker  provenance.Tracker // shared tracker; nil means one per merge
	required []string
}

func defaultOptions() *options {
	return &options{
		tracking: true,
		required: constants.RequiredColumns(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithProvenance enables observation tracking.
func WithProvenance(enabled bool) Option {
	return func(r *options) error {
		r.tracking = enabled
		return nil
	}
}

// WithTracker records observations into the given tracker instead of a fresh
// one per merge. The tracker accumulates across merges until cleared.
func WithTracker(tracker provenance.Tracker) Option {
	return func(r *options) error {
		if tracker == nil {
			return &errors.ValidationError{
				Field:   "tracker",
				Message: "cannot be nil",
			}
		}
		r.tracker = tracker
		r.tracking = true
		return nil
	}
}

// WithRequiredColumns overrides the header columns every source must declare.
func WithRequiredColumns(columns ...string) Option {
	return func(r *options) error {
		if len(columns) == 0 {
			return &errors.ValidationError{
				Field:   "required columns",
				Message: "at least one column is required",
			}
		}
		r.required = columns
		return nil
	}
}
