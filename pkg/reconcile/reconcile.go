// Package reconcile merges many per-source course collections into one
// catalog with unique course codes. The merge is expressed as an explicit
// fold over an ordered source sequence; because scalar conflicts resolve
// first-non-empty in processing order, the caller must present sources in a
// deterministic order (the pipeline uses lexical filename order) to keep
// output reproducible run-to-run.
package reconcile

import (
	"context"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/logging"
)

// Reconciler folds source documents into a catalog accumulator.
type Reconciler struct {
	district string
	url      string
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithDistrict sets the district identity stamped on the output catalog.
func WithDistrict(district string) Option {
	return func(r *Reconciler) {
		r.district = district
	}
}

// WithURL sets the source URL stamped on the output catalog.
func WithURL(url string) Option {
	return func(r *Reconciler) {
		r.url = url
	}
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile folds the given source documents, in order, into the prior
// catalog. A nil prior starts from an empty accumulator. The prior catalog
// is not mutated; the fold runs on a copy, keeping each run's input snapshot
// intact.
func (r *Reconciler) Reconcile(ctx context.Context, prior *catalogs.Catalog, docs []*SourceDocument) *Result {
	log := logging.FromContext(ctx)
	builder := NewResultBuilder()

	var acc *catalogs.Catalog
	if prior != nil {
		acc = prior.Copy()
	} else {
		acc = catalogs.New()
	}
	if r.district != "" || r.url != "" {
		acc.SetSource(catalogs.Source{District: r.district, URL: r.url})
	}

	merger := NewMerger()
	for _, doc := range docs {
		if !doc.HasCourses() {
			builder.WithWarning("source " + doc.Name + " has no courses array, skipped")
			log.Warn().
				Str("source", doc.Name).
				Msg("Source document has no courses array, skipping")
		}
		acc = merger.Merge(acc, doc)
		builder.WithSource(doc.Name)
	}

	stats := merger.Stats()
	log.Info().
		Int("sources_merged", stats.SourcesMerged).
		Int("sources_skipped", stats.SourcesSkipped).
		Int("courses_added", stats.CoursesAdded).
		Int("courses_merged", stats.CoursesMerged).
		Msg("Merged source documents")

	return builder.
		WithCatalog(acc).
		WithStats(stats).
		Build()
}
