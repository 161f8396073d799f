package reconcile

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/errors"
	"github.com/courseatlas/courseatlas/pkg/gpa"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

// SourceDocument is one organizational unit's independently produced course
// collection, as delivered by the extraction layer. Courses is a pointer so
// a document missing its courses array entirely can be told apart from one
// with zero courses; the former is skipped with a warning.
type SourceDocument struct {
	Name    string       `json:"name"`
	School  string       `json:"school"`
	Courses *[]RawCourse `json:"courses"`
}

// HasCourses reports whether the document carried a courses array at all.
func (d *SourceDocument) HasCourses() bool {
	return d.Courses != nil
}

// LoadSource reads and decodes one source document from disk. The document
// name falls back to the file path when the payload does not carry one.
func LoadSource(path string) (*SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var doc SourceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParseError("json", path, "invalid source document", err)
	}
	if doc.Name == "" {
		doc.Name = path
	}
	return &doc, nil
}

// RawCourse is the per-course input contract from the extraction layer.
// Numeric and list-valued fields tolerate the loose shapes real extractors
// emit: credits as string or number, eligibleGrades as string or list.
type RawCourse struct {
	Code            string     `json:"courseCode"`
	Name            string     `json:"courseName"`
	Credits         FlexNumber `json:"credits"`
	Tags            []string   `json:"tags"`
	Schools         []string   `json:"schools"`
	Subject         string     `json:"subject"`
	Term            string     `json:"term"`
	EligibleGrades  FlexList   `json:"eligibleGrades"`
	Prerequisite    string     `json:"prerequisite"`
	Corequisite     string     `json:"corequisite"`
	EnrollmentNotes string     `json:"enrollmentNotes"`
	Description     string     `json:"courseDescription"`
}

// FlexNumber decodes a JSON number or a numeric-ish string.
type FlexNumber struct {
	Raw string
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f.Raw = n.String()
		return nil
	}
	return errors.NewParseError("json", "", "credits must be a string or number", nil)
}

// Value extracts the numeric value using the field normalizer.
func (f FlexNumber) Value() float64 {
	return normalize.Credits(f.Raw)
}

// FlexList decodes a JSON array of strings or a single comma-separated string.
type FlexList []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = normalize.Grades(s)
		return nil
	}
	return errors.NewParseError("json", "", "expected a string or list of strings", nil)
}

// Normalize materializes a canonical Course from the raw record. Unspecified
// optional fields become the NA sentinel; grade labels are trimmed tokens;
// the grade-point weight cache is seeded immediately (later passes rederive
// it whenever name or tags change).
func (r *RawCourse) Normalize() *catalogs.Course {
	course := &catalogs.Course{
		Code:            strings.TrimSpace(r.Code),
		Name:            normalize.Text(r.Name),
		Credits:         r.Credits.Value(),
		Subject:         normalize.Text(r.Subject),
		Term:            normalize.Text(r.Term),
		Prerequisite:    normalize.Text(r.Prerequisite),
		Corequisite:     normalize.Text(r.Corequisite),
		EnrollmentNotes: normalize.Text(r.EnrollmentNotes),
		Description:     normalize.Description(r.Description),
	}
	course.EnsureArrays()
	course.AddTags(r.Tags...)
	for _, grade := range r.EligibleGrades {
		if token := strings.TrimSpace(grade); token != "" {
			course.AddGrades(token)
		}
	}
	course.AddSchools(r.Schools...)
	course.GPA = gpa.Calculate(course.Name, course.Tags)
	return course
}
