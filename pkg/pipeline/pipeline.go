// Package pipeline runs the full catalog reconciliation sequence: source
// merge, semester-pair collapse, grade-point recalculation, prerequisite
// resolution, validation, and the atomic catalog rewrite.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/courseatlas/courseatlas/internal/validation"
	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/errors"
	"github.com/courseatlas/courseatlas/pkg/logging"
	"github.com/courseatlas/courseatlas/pkg/prereq"
	"github.com/courseatlas/courseatlas/pkg/reconcile"
	"github.com/courseatlas/courseatlas/pkg/semester"
)

// Config carries everything one run needs. There are no ambient defaults;
// the caller names the district, the source directory, and the catalog path
// explicitly.
type Config struct {
	// District identifies the school district the catalog describes.
	District string

	// URL is the public catalog URL recorded in the output's source block.
	URL string

	// SourcesDir holds the per-source extraction documents (*.json).
	SourcesDir string

	// CatalogPath is the canonical catalog file, read as the prior snapshot
	// and atomically rewritten at the end of the run.
	CatalogPath string

	// DryRun executes every stage but skips the final write.
	DryRun bool
}

// Validate checks the config before any work starts.
func (c *Config) Validate() error {
	if c.SourcesDir == "" {
		return errors.NewConfigError("pipeline", "sources directory is required", nil)
	}
	if c.CatalogPath == "" {
		return errors.NewConfigError("pipeline", "catalog path is required", nil)
	}
	return nil
}

// Summary reports what one run did.
type Summary struct {
	StartTime utc.Time
	EndTime   utc.Time
	Duration  time.Duration

	Sources     []string
	Merge       reconcile.MergeStats
	Collapse    semester.Stats
	Prereqs     prereq.Stats
	Unmatched   []prereq.ReportEntry
	CourseCount int
	Warnings    []string
	Written     bool
}

// String renders a short human-readable account of the run.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reconciled %d sources into %d courses in %s\n",
		s.Merge.SourcesMerged, s.CourseCount, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  courses: %d added, %d merged\n", s.Merge.CoursesAdded, s.Merge.CoursesMerged)
	fmt.Fprintf(&b, "  semester pairs: %d collapsed, %d partial halves kept\n",
		s.Collapse.PairsCollapsed, s.Collapse.PartialsKept)
	fmt.Fprintf(&b, "  prerequisites: %d rewritten, %d unmatched\n",
		s.Prereqs.Updated, s.Prereqs.Unmatched)
	if !s.Written {
		b.WriteString("  catalog not written\n")
	}
	return b.String()
}

// Run executes the pipeline. A validation failure or unreadable required
// input aborts before the catalog file is touched; the prior snapshot is
// never modified in place.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	summary := &Summary{StartTime: utc.Now()}

	prior, err := loadPrior(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	docs, sources, warnings, err := loadSources(ctx, cfg.SourcesDir)
	if err != nil {
		return nil, err
	}
	summary.Sources = sources
	summary.Warnings = append(summary.Warnings, warnings...)

	reconciler := reconcile.New(
		reconcile.WithDistrict(cfg.District),
		reconcile.WithURL(cfg.URL),
	)
	result := reconciler.Reconcile(ctx, prior, docs)
	if !result.IsSuccess() {
		return nil, fmt.Errorf("reconciliation failed: %w", result.Errors[0])
	}
	summary.Merge = result.Metadata.Stats
	summary.Warnings = append(summary.Warnings, result.Warnings...)

	collapsed, collapseStats := semester.Collapse(result.Catalog)
	summary.Collapse = collapseStats

	// Names and tags may have changed during merge and collapse; rederive
	// every grade-point weight so the field is a pure function of the
	// course again.
	for _, course := range collapsed.Courses().List() {
		course.RecalculateGPA()
	}

	resolver := prereq.NewResolver(collapsed)
	summary.Prereqs = resolver.Apply(collapsed)
	summary.Unmatched = resolver.Report().Entries()

	report := validation.ValidateCatalog(collapsed)
	for _, issue := range report.Warnings() {
		log.Warn().Str("course_code", issue.Code).Str("field", issue.Field).
			Msg(issue.Message)
	}
	if err := report.Err(); err != nil {
		for _, issue := range report.Errors() {
			log.Error().Str("course_code", issue.Code).Str("field", issue.Field).
				Msg(issue.Message)
		}
		return nil, err
	}

	summary.CourseCount = collapsed.Courses().Len()

	if !cfg.DryRun {
		if err := collapsed.Save(cfg.CatalogPath); err != nil {
			return nil, err
		}
		summary.Written = true
	}

	summary.EndTime = utc.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)

	log.Info().
		Int("sources", len(summary.Sources)).
		Int("courses", summary.CourseCount).
		Int("pairs_collapsed", summary.Collapse.PairsCollapsed).
		Int("prereqs_updated", summary.Prereqs.Updated).
		Bool("written", summary.Written).
		Dur("duration", summary.Duration).
		Msg("Pipeline run complete")

	return summary, nil
}

// loadPrior reads the existing catalog when it exists. A missing file means
// a first run and yields an empty catalog; any other failure is fatal.
func loadPrior(path string) (*catalogs.Catalog, error) {
	cat, err := catalogs.Load(path)
	if err == nil {
		return cat, nil
	}
	if stderrors.Is(err, os.ErrNotExist) {
		return catalogs.New(), nil
	}
	return nil, err
}

// loadSources reads every source document under dir in lexical filename
// order. A malformed document is skipped with a warning; a missing or empty
// directory is a fatal missing-input condition.
func loadSources(ctx context.Context, dir string) ([]*reconcile.SourceDocument, []string, []string, error) {
	log := logging.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil, nil, errors.NewMissingInputError(dir, "extraction")
		}
		return nil, nil, nil, errors.WrapIO("read", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, nil, nil, errors.NewMissingInputError(dir, "extraction")
	}

	var docs []*reconcile.SourceDocument
	var sources []string
	var warnings []string
	for _, path := range paths {
		doc, err := reconcile.LoadSource(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped %s: %v", path, err))
			log.Warn().Str("source", path).Err(err).Msg("Skipping malformed source document")
			continue
		}
		docs = append(docs, doc)
		sources = append(sources, doc.Name)
	}
	return docs, sources, warnings, nil
}
