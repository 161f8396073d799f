package catalogs

import (
	"slices"

	"github.com/courseatlas/courseatlas/pkg/gpa"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

// Course is the canonical catalog entity, keyed by its course code. The code
// is globally unique within a catalog and immutable once assigned by the
// source extractor.
type Course struct {
	Code            string     `json:"courseCode" yaml:"courseCode"`
	Name            string     `json:"courseName" yaml:"courseName"`
	Credits         float64    `json:"credits" yaml:"credits"`
	Tags            []string   `json:"tags" yaml:"tags"`
	GPA             gpa.Weight `json:"gpa" yaml:"gpa"`
	Subject         string     `json:"subject" yaml:"subject"`
	Term            string     `json:"term" yaml:"term"`
	Prerequisite    string     `json:"prerequisite" yaml:"prerequisite"`
	Corequisite     string     `json:"corequisite" yaml:"corequisite"`
	EnrollmentNotes string     `json:"enrollmentNotes" yaml:"enrollmentNotes"`
	Description     string     `json:"courseDescription" yaml:"courseDescription"`
	EligibleGrades  []string   `json:"eligibleGrades" yaml:"eligibleGrades"`
	Schools         []string   `json:"schools" yaml:"schools"`
}

// EnsureArrays replaces nil slices with empty ones so the persisted form
// always carries arrays. A record arriving without a schools array is
// self-healed here rather than rejected.
func (c *Course) EnsureArrays() {
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.EligibleGrades == nil {
		c.EligibleGrades = []string{}
	}
	if c.Schools == nil {
		c.Schools = []string{}
	}
}

// HasTag reports case-sensitive tag membership.
func (c *Course) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// AddTags appends tags not already present, preserving case sensitivity.
func (c *Course) AddTags(tags ...string) {
	for _, tag := range tags {
		if !slices.Contains(c.Tags, tag) {
			c.Tags = append(c.Tags, tag)
		}
	}
}

// AddGrades appends grade labels not already present.
func (c *Course) AddGrades(grades ...string) {
	for _, grade := range grades {
		if !slices.Contains(c.EligibleGrades, grade) {
			c.EligibleGrades = append(c.EligibleGrades, grade)
		}
	}
}

// HasSchool reports membership under normalized-name equivalence.
func (c *Course) HasSchool(name string) bool {
	key := normalize.SchoolKey(name)
	for _, school := range c.Schools {
		if normalize.SchoolKey(school) == key {
			return true
		}
	}
	return false
}

// AddSchool unions a school name into the set under normalized-name
// equivalence. When the incoming name is equivalent to an existing entry, the
// canonical spelling of the pair replaces the existing one, so the spaced
// form wins over a compact one instead of duplicating it.
func (c *Course) AddSchool(name string) {
	key := normalize.SchoolKey(name)
	if key == "" {
		return
	}
	for i, school := range c.Schools {
		if normalize.SchoolKey(school) != key {
			continue
		}
		c.Schools[i] = normalize.CanonicalSchool(key, []string{school, name})
		return
	}
	c.Schools = append(c.Schools, name)
}

// AddSchools unions several school names.
func (c *Course) AddSchools(names ...string) {
	for _, name := range names {
		c.AddSchool(name)
	}
}

// RecalculateGPA rederives the cached grade-point weight from the current
// name and tags. Safe to call any number of times.
func (c *Course) RecalculateGPA() {
	c.GPA = gpa.Calculate(c.Name, c.Tags)
}

// Copy returns a deep copy of the course.
func (c *Course) Copy() *Course {
	dup := *c
	dup.Tags = slices.Clone(c.Tags)
	dup.EligibleGrades = slices.Clone(c.EligibleGrades)
	dup.Schools = slices.Clone(c.Schools)
	return &dup
}
