// Package validation checks a reconciled catalog for structural problems
// before it is written to disk.
package validation

import (
	"fmt"
	"strings"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/errors"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

// Issue is one problem found in a catalog, tied to the course it was found
// on. Warnings describe data-quality oddities; everything else blocks a
// write.
type Issue struct {
	Code    string
	Field   string
	Message string
	Warning bool
}

func (i Issue) String() string {
	sev := "error"
	if i.Warning {
		sev = "warning"
	}
	return fmt.Sprintf("%s: course %q field %q: %s", sev, i.Code, i.Field, i.Message)
}

// Report collects the issues from one validation pass.
type Report struct {
	Issues []Issue
}

// Valid reports whether the catalog can be written.
func (r *Report) Valid() bool {
	for _, issue := range r.Issues {
		if !issue.Warning {
			return false
		}
	}
	return true
}

// Errors returns only the blocking issues.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if !issue.Warning {
			out = append(out, issue)
		}
	}
	return out
}

// Warnings returns only the non-blocking issues.
func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Warning {
			out = append(out, issue)
		}
	}
	return out
}

// Err converts a failed report into a single error, nil when the report is
// clean enough to write.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	return errors.NewValidationError("catalog", nil,
		fmt.Sprintf("%d validation errors, first: %s", len(errs), errs[0]))
}

func (r *Report) add(code, field, message string) {
	r.Issues = append(r.Issues, Issue{Code: code, Field: field, Message: message})
}

func (r *Report) warn(code, field, message string) {
	r.Issues = append(r.Issues, Issue{Code: code, Field: field, Message: message, Warning: true})
}

// ValidateCatalog runs every structural check over the catalog in
// deterministic course order. Course-code uniqueness is enforced at the
// decode boundary (catalogs.Load rejects repeated codes); an in-memory
// catalog cannot hold two entries for one code.
func ValidateCatalog(cat *catalogs.Catalog) *Report {
	report := &Report{}
	if cat == nil {
		report.add("", "", "catalog is nil")
		return report
	}

	for _, course := range cat.Courses().List() {
		validateCourse(report, course)
	}
	return report
}

func validateCourse(report *Report, course *catalogs.Course) {
	if strings.TrimSpace(course.Code) == "" {
		report.add(course.Code, "courseCode", "must not be empty")
	}
	if course.Name == "" {
		report.add(course.Code, "courseName", "must not be empty")
	}
	if course.Credits < 0 {
		report.add(course.Code, "credits",
			fmt.Sprintf("must not be negative, got %g", course.Credits))
	}
	if !course.GPA.Valid() {
		report.add(course.Code, "gpa",
			fmt.Sprintf("unknown weight %g", float64(course.GPA)))
	}

	// Scalars carry the explicit placeholder rather than an empty string
	// once normalization has run.
	scalars := []struct {
		field string
		value string
	}{
		{"subject", course.Subject},
		{"term", course.Term},
		{"prerequisite", course.Prerequisite},
		{"corequisite", course.Corequisite},
		{"enrollmentNotes", course.EnrollmentNotes},
		{"description", course.Description},
	}
	for _, s := range scalars {
		if s.value == "" {
			report.warn(course.Code, s.field, "empty instead of "+normalize.NA)
		}
	}

	if course.Tags == nil || course.EligibleGrades == nil || course.Schools == nil {
		report.add(course.Code, "arrays", "list fields must be present, not null")
	}

	validateSchools(report, course)
}

// validateSchools flags school lists that still contain two spellings of
// the same school, which the merge should have collapsed.
func validateSchools(report *Report, course *catalogs.Course) {
	seen := make(map[string]string, len(course.Schools))
	for _, school := range course.Schools {
		key := normalize.SchoolKey(school)
		if key == "" {
			report.warn(course.Code, "schools", "blank school name")
			continue
		}
		if prior, ok := seen[key]; ok {
			report.add(course.Code, "schools",
				fmt.Sprintf("duplicate school %q and %q", prior, school))
			continue
		}
		seen[key] = school
	}
}
