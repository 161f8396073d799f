// Package app provides the application context and dependency management
// for the courseatlas CLI. Configuration, logging, and lifecycle wiring live
// here so commands receive their dependencies rather than reaching for
// globals.
package app

import (
	"github.com/rs/zerolog"

	"github.com/courseatlas/courseatlas/pkg/errors"
)

// App represents the courseatlas application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Version returns the version string.
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

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// District returns the configured district identifier.
func (a *App) District() string {
	return a.config.District
}

// URL returns the configured public catalog URL.
func (a *App) URL() string {
	return a.config.URL
}

// SourcesDir returns the configured source-document directory.
func (a *App) SourcesDir() string {
	return a.config.SourcesDir
}

// CatalogPath returns the configured catalog file path.
func (a *App) CatalogPath() string {
	return a.config.CatalogPath
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
