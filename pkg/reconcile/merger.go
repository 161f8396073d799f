package reconcile

import (
	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/logging"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

// Merger folds per-source course collections into an accumulator catalog.
//
// Scalar conflict policy is first-non-empty in source-processing order: the
// existing value wins unless it is the NA sentinel. This makes the merge
// order-dependent, which is why the reconciler consumes sources in a fixed,
// reproducible order.
type Merger struct {
	stats MergeStats
}

// MergeStats counts what one or more Merge calls did.
type MergeStats struct {
	SourcesMerged  int
	SourcesSkipped int
	CoursesAdded   int
	CoursesMerged  int
	SchoolsHealed  int
}

// NewMerger creates a Merger with zeroed stats.
func NewMerger() *Merger {
	return &Merger{}
}

// Stats returns counts accumulated so far.
func (m *Merger) Stats() MergeStats {
	return m.stats
}

// Merge is the fold step: it merges one source document into the accumulator
// and returns the accumulator, so callers can express the whole merge as an
// explicit reduction over an ordered source sequence. A document missing its
// courses array is skipped and counted; the caller owns the warning for it.
func (m *Merger) Merge(acc *catalogs.Catalog, doc *SourceDocument) *catalogs.Catalog {
	if !doc.HasCourses() {
		m.stats.SourcesSkipped++
		return acc
	}

	sourceSchool := normalize.Text(doc.School)

	for i := range *doc.Courses {
		raw := &(*doc.Courses)[i]
		incoming := raw.Normalize()
		if incoming.Code == "" {
			logging.Warn().
				Str("source", doc.Name).
				Str("course_name", incoming.Name).
				Msg("Course record has no course code, skipping")
			continue
		}

		// Seed the contributing source's school unless an equivalent
		// name is already present.
		if len(incoming.Schools) == 0 {
			m.stats.SchoolsHealed++
		}
		if sourceSchool != normalize.NA && !incoming.HasSchool(sourceSchool) {
			incoming.AddSchool(sourceSchool)
		}

		existing, ok := acc.Courses().Get(incoming.Code)
		if !ok {
			_ = acc.Courses().Set(incoming.Code, incoming)
			m.stats.CoursesAdded++
			continue
		}

		mergeCourse(existing, incoming)
		m.stats.CoursesMerged++
	}

	m.stats.SourcesMerged++
	return acc
}

// mergeCourse merges an incoming course into the existing entry for the same
// code. Scalars follow first-non-empty-wins; tags, grades, and schools are
// set unions (schools under normalized-name equivalence with canonical
// upgrade).
func mergeCourse(existing, incoming *catalogs.Course) {
	existing.Name = mergeScalar(existing.Name, incoming.Name)
	existing.Subject = mergeScalar(existing.Subject, incoming.Subject)
	existing.Term = mergeScalar(existing.Term, incoming.Term)
	existing.Prerequisite = mergeScalar(existing.Prerequisite, incoming.Prerequisite)
	existing.Corequisite = mergeScalar(existing.Corequisite, incoming.Corequisite)
	existing.EnrollmentNotes = mergeScalar(existing.EnrollmentNotes, incoming.EnrollmentNotes)
	existing.Description = mergeScalar(existing.Description, incoming.Description)

	if existing.Credits == 0 {
		existing.Credits = incoming.Credits
	}

	existing.AddTags(incoming.Tags...)
	existing.AddGrades(incoming.EligibleGrades...)
	existing.AddSchools(incoming.Schools...)

	// Name or tags may have changed; the cached weight must follow.
	existing.RecalculateGPA()
}

// mergeScalar keeps the existing value unless it is empty or the NA
// sentinel.
func mergeScalar(existing, incoming string) string {
	if existing != "" && existing != normalize.NA {
		return existing
	}
	if incoming == "" {
		return normalize.NA
	}
	return incoming
}
