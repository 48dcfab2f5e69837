// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/vstmap"
)

// Interface defines the application context that commands need.
// The App struct from cmd/vstmap/app implements it; commands accept the
// interface so they can be tested with Mock.
type Interface interface {
	// Client returns a vstmap client built from the application config,
	// with opts applied on top.
	Client(opts ...vstmap.Option) (vstmap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// DBPath returns the plugin database path from config or environment,
	// or "" when none is configured.
	DBPath() string

	// NoColor reports whether colored terminal output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
