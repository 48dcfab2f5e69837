// Package app provides the application context and dependency management
// for the vstmap CLI. It centralizes configuration, logging and client
// construction so commands only depend on appcontext.Interface.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/vstmap"
	"github.com/agentstation/vstmap/internal/appcontext"
	"github.com/agentstation/vstmap/pkg/errors"
)

// App represents the vstmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("config", "failed to load configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// DBPath returns the plugin database path from config or environment.
func (a *App) DBPath() string {
	return a.config.DBPath
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Client returns a new client built from the configuration; opts are
// applied after the configured defaults so command flags win.
func (a *App) Client(opts ...vstmap.Option) (vstmap.Client, error) {
	return vstmap.New(append(a.clientOptions(), opts...)...)
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []vstmap.Option {
	var opts []vstmap.Option

	if a.config.Concurrency > 0 {
		opts = append(opts, vstmap.WithConcurrency(a.config.Concurrency))
	}
	if a.config.ProvenanceFile != "" {
		opts = append(opts, vstmap.WithProvenanceFile(a.config.ProvenanceFile))
	}

	return opts
}

// Shutdown releases application resources. Clients hold no background
// work, so there is nothing to stop.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
