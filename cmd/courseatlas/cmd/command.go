// Package cmd implements the courseatlas subcommands. Commands receive
// their dependencies through the App interface so they stay testable and
// free of import cycles with the app package.
package cmd

import (
	"github.com/rs/zerolog"
)

// App is the dependency surface commands need from the application.
type App interface {
	// Logger returns the application logger.
	Logger() *zerolog.Logger

	// District returns the configured district identifier.
	District() string

	// URL returns the configured public catalog URL.
	URL() string

	// SourcesDir returns the configured source-document directory.
	SourcesDir() string

	// CatalogPath returns the configured catalog file path.
	CatalogPath() string
}
