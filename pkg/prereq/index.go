// Package prereq rewrites free-text prerequisite references into canonical
// course codes using a layered fuzzy-matching strategy over the resolved
// catalog. Each matching stage is a named rule in an ordered, inspectable
// rule table, so tests can target one rule at a time and new rules can be
// appended without touching prior ones.
package prereq

import (
	"strings"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
)

// entry is one catalog name prepared for matching.
type entry struct {
	Name  string
	Lower string
	Norm  string
	Code  string
}

// Index is the lookup universe for resolution: the set of all course codes
// and a name-to-code index built by scanning the catalog once.
type Index struct {
	codes   map[string]struct{}
	byName  map[string]string
	byLower map[string]string
	byNorm  map[string]string
	entries []entry
}

// BuildIndex scans the catalog once, in lexical code order so the index is
// deterministic. The first code seen per distinct course name wins, which
// handles A/B duplicates sharing a name before collapse.
func BuildIndex(cat *catalogs.Catalog) *Index {
	idx := &Index{
		codes:   make(map[string]struct{}),
		byName:  make(map[string]string),
		byLower: make(map[string]string),
		byNorm:  make(map[string]string),
	}

	for _, course := range cat.Courses().List() {
		idx.codes[course.Code] = struct{}{}

		lower := strings.ToLower(course.Name)
		norm := Normalize(course.Name)

		if _, seen := idx.byName[course.Name]; !seen {
			idx.byName[course.Name] = course.Code
			idx.entries = append(idx.entries, entry{
				Name:  course.Name,
				Lower: lower,
				Norm:  norm,
				Code:  course.Code,
			})
		}
		if _, seen := idx.byLower[lower]; !seen {
			idx.byLower[lower] = course.Code
		}
		if _, seen := idx.byNorm[norm]; !seen {
			idx.byNorm[norm] = course.Code
		}
	}

	return idx
}

// HasCode reports whether code is an existing course code.
func (idx *Index) HasCode(code string) bool {
	_, ok := idx.codes[code]
	return ok
}

// Len returns the number of distinct course names indexed.
func (idx *Index) Len() int {
	return len(idx.entries)
}
