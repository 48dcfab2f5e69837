package vstmap

import (
	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/errors"
)

// config holds the client settings.
type config struct {
	concurrency     int
	provenanceFile  string
	requiredColumns []string
}

func defaultConfig() *config {
	return &config{
		concurrency:     constants.DefaultLoadConcurrency,
		requiredColumns: constants.RequiredColumns(),
	}
}

// Option is a function that configures a Client.
type Option func(*config) error

// WithConcurrency bounds how many inventory files are read at once.
// Merging is always sequential.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: "must be at least 1",
			}
		}
		c.concurrency = n
		return nil
	}
}

// WithProvenanceFile records every merge observation and saves the history
// as YAML to path after each Combine.
func WithProvenanceFile(path string) Option {
	return func(c *config) error {
		c.provenanceFile = path
		return nil
	}
}

// WithRequiredColumns overrides the header columns every inventory must declare.
func WithRequiredColumns(columns ...string) Option {
	return func(c *config) error {
		if len(columns) == 0 {
			return &errors.ValidationError{
				Field:   "required columns",
				Message: "at least one column is required",
			}
		}
		c.requiredColumns = columns
		return nil
	}
}
