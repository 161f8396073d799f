package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Success indicates if reconciliation completed successfully
	Success bool

	// Catalog is the reconciled catalog (if successful)
	Catalog *catalogs.Catalog

	// Errors contains any errors that occurred
	Errors []error

	// Warnings contains non-critical issues
	Warnings []string

	// Metadata about the reconciliation
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime utc.Time

	// EndTime when reconciliation completed
	EndTime utc.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Sources that were reconciled, in processing order
	Sources []string

	// Stats about the reconciliation
	Stats MergeStats
}

// IsSuccess returns true if the reconciliation was successful.
func (r *Result) IsSuccess() bool {
	return r.Success && len(r.Errors) == 0
}

// HasErrors returns true if there were errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there were warnings.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.Success {
		return fmt.Sprintf("Reconciliation failed with %d errors", len(r.Errors))
	}
	return fmt.Sprintf("Reconciliation successful: %d sources merged, %d skipped, %d courses added, %d merged",
		r.Metadata.Stats.SourcesMerged,
		r.Metadata.Stats.SourcesSkipped,
		r.Metadata.Stats.CoursesAdded,
		r.Metadata.Stats.CoursesMerged)
}

// ResultBuilder helps construct Result objects.
type ResultBuilder struct {
	result *Result
}

// NewResultBuilder creates a new ResultBuilder.
func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		result: &Result{
			Success:  true,
			Errors:   []error{},
			Warnings: []string{},
			Metadata: ResultMetadata{
				StartTime: utc.Now(),
				Sources:   []string{},
			},
		},
	}
}

// WithCatalog sets the reconciled catalog.
func (b *ResultBuilder) WithCatalog(catalog *catalogs.Catalog) *ResultBuilder {
	b.result.Catalog = catalog
	return b
}

// WithError adds an error.
func (b *ResultBuilder) WithError(err error) *ResultBuilder {
	if err != nil {
		b.result.Success = false
		b.result.Errors = append(b.result.Errors, err)
	}
	return b
}

// WithWarning adds a warning.
func (b *ResultBuilder) WithWarning(warning string) *ResultBuilder {
	b.result.Warnings = append(b.result.Warnings, warning)
	return b
}

// WithSource appends a source that was processed.
func (b *ResultBuilder) WithSource(source string) *ResultBuilder {
	b.result.Metadata.Sources = append(b.result.Metadata.Sources, source)
	return b
}

// WithStats sets the merge statistics.
func (b *ResultBuilder) WithStats(stats MergeStats) *ResultBuilder {
	b.result.Metadata.Stats = stats
	return b
}

// Build finalizes and returns the Result.
func (b *ResultBuilder) Build() *Result {
	b.result.Metadata.EndTime = utc.Now()
	b.result.Metadata.Duration = b.result.Metadata.EndTime.Sub(b.result.Metadata.StartTime)
	return b.result
}
