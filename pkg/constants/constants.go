// Package constants provides shared constants used throughout the courseatlas codebase.
// This includes file permissions, limits, and pipeline defaults that should be
// consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Catalog constants define canonical catalog values
const (
	// NA is the sentinel for "value intentionally unknown". It is a valid,
	// meaningful value and distinct from the empty string, which never
	// appears in catalog output.
	NA = "n/a"

	// FullYearTerm is the term literal assigned to a consolidated
	// full-year course after its two semester halves are collapsed.
	FullYearTerm = "Fall and Spring Semester"

	// CatalogFileName is the default name of the canonical catalog snapshot.
	CatalogFileName = "catalog.json"
)

// Limit constants define various limits and capacities
const (
	// MinContainmentLength is the minimum normalized-name length eligible
	// for substring containment matching during prerequisite resolution.
	// Shorter tokens are too generic to match on.
	MinContainmentLength = 3

	// MinOverlapWords is the number of significant words that must all
	// appear in a candidate name for the word-overlap heuristic to accept.
	MinOverlapWords = 2

	// SignificantWordLength is the minimum length of a word counted as
	// significant by the word-overlap heuristic.
	SignificantWordLength = 3
)
