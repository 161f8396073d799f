package semester

import (
	"testing"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/constants"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

func course(code, name string, credits float64) *catalogs.Course {
	c := &catalogs.Course{
		Code:            code,
		Name:            name,
		Credits:         credits,
		Subject:         normalize.NA,
		Term:            "Fall Semester",
		Prerequisite:    normalize.NA,
		Corequisite:     normalize.NA,
		EnrollmentNotes: normalize.NA,
		Description:     normalize.NA,
	}
	c.EnsureArrays()
	return c
}

func newCatalog(courses ...*catalogs.Course) *catalogs.Catalog {
	cat := catalogs.New()
	for _, c := range courses {
		_ = cat.Courses().Set(c.Code, c)
	}
	return cat
}

func TestCollapseCompletePair(t *testing.T) {
	a := course("0100A", "Art 1 A (High School Credit)", 0.5)
	a.Subject = "Fine Arts"
	a.AddSchool("Seven Lakes High School")
	b := course("0100B", "Art 1 B (High School Credit)", 0.5)
	b.Prerequisite = "Art 1 A"
	b.AddSchool("Tompkins High School")

	out, stats := Collapse(newCatalog(a, b))

	if stats.PairsCollapsed != 1 {
		t.Fatalf("expected 1 collapsed pair, got %+v", stats)
	}
	if out.Courses().Len() != 1 {
		t.Fatalf("expected 1 output course, got %d", out.Courses().Len())
	}

	merged, ok := out.Courses().Get("0100")
	if !ok {
		t.Fatal("consolidated entry should be keyed by the base code")
	}
	if merged.Name != "Art 1 (High School Credit)" {
		t.Errorf("unexpected name: %q", merged.Name)
	}
	if merged.Credits != 1.0 {
		t.Errorf("credits should sum: %v", merged.Credits)
	}
	if merged.Term != constants.FullYearTerm {
		t.Errorf("unexpected term: %q", merged.Term)
	}
	if merged.Subject != "Fine Arts" {
		t.Errorf("A's scalar should win: %q", merged.Subject)
	}
	if merged.Prerequisite != "Art 1 A" {
		t.Errorf("B's scalar should fill A's NA: %q", merged.Prerequisite)
	}
	if len(merged.Schools) != 2 {
		t.Errorf("schools should union: %v", merged.Schools)
	}
}

func TestCollapsePartialPairKeepsOriginalCode(t *testing.T) {
	a := course("0200A", "Biology A", 0.5)

	out, stats := Collapse(newCatalog(a))

	if stats.PartialsKept != 1 {
		t.Fatalf("expected 1 partial, got %+v", stats)
	}
	kept, ok := out.Courses().Get("0200A")
	if !ok {
		t.Fatal("partial must keep its original code")
	}
	if kept.Name != "Biology" {
		t.Errorf("cosmetic strip should still apply: %q", kept.Name)
	}
	if kept.Credits != 0.5 || kept.Term != "Fall Semester" {
		t.Errorf("credits and term must not change for a partial: %+v", kept)
	}
}

func TestCollapseNonPairPassesThrough(t *testing.T) {
	c := course("0300", "Choir 1", 1.0)

	out, stats := Collapse(newCatalog(c))

	if stats.PassedThrough != 1 {
		t.Fatalf("expected 1 pass-through, got %+v", stats)
	}
	if _, ok := out.Courses().Get("0300"); !ok {
		t.Error("non-pair entries must survive unchanged")
	}
}

func TestCollapseCardinality(t *testing.T) {
	out, _ := Collapse(newCatalog(
		course("0100A", "Art 1 A", 0.5),
		course("0100B", "Art 1 B", 0.5),
		course("0200A", "Biology A", 0.5),
		course("0300", "Choir 1", 1.0),
	))

	// input_count - pairs_fully_collapsed = 4 - 1 = 3
	if out.Courses().Len() != 3 {
		t.Errorf("expected 3 output entries, got %d", out.Courses().Len())
	}
}

func TestCollapseInputNotMutated(t *testing.T) {
	a := course("0100A", "Art 1 A", 0.5)
	b := course("0100B", "Art 1 B", 0.5)
	in := newCatalog(a, b)

	Collapse(in)

	if in.Courses().Len() != 2 {
		t.Error("the input catalog must not be mutated")
	}
	if a.Name != "Art 1 A" {
		t.Error("input courses must not be mutated")
	}
}

func TestGroupKind(t *testing.T) {
	a := course("0100A", "Art 1 A", 0.5)
	b := course("0100B", "Art 1 B", 0.5)

	tests := []struct {
		name  string
		group Group
		want  Kind
	}{
		{"complete", Group{A: a, B: b}, Complete},
		{"partial A", Group{A: a}, PartialA},
		{"partial B", Group{B: b}, PartialB},
		{"ambiguous", Group{A: a, B: b, Extras: []*catalogs.Course{a}}, Ambiguous},
	}

	for _, tt := range tests {
		if got := tt.group.Kind(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCollapseDuplicateSuffixPreserved(t *testing.T) {
	// 0100A and 0100a share base 0100 and suffix A; the second arrival is
	// ambiguous and must survive as its own entry.
	a1 := course("0100A", "Art 1 A", 0.5)
	b := course("0100B", "Art 1 B", 0.5)
	dup := course("0100a", "Art 1 A (Second Listing)", 0.5)

	out, stats := Collapse(newCatalog(a1, b, dup))

	if stats.PairsCollapsed != 1 {
		t.Errorf("the true pair should still collapse: %+v", stats)
	}
	if stats.DuplicatesKept != 1 {
		t.Errorf("expected 1 preserved duplicate, got %+v", stats)
	}
	if _, ok := out.Courses().Get("0100"); !ok {
		t.Error("consolidated entry missing")
	}
	if _, ok := out.Courses().Get("0100a"); !ok {
		t.Error("duplicate must be preserved under its own code")
	}
	// 3 inputs, 1 full pair collapsed: 2 outputs.
	if out.Courses().Len() != 2 {
		t.Errorf("expected 2 output entries, got %d", out.Courses().Len())
	}
}

func TestCollapseFoldsPairIntoExistingBaseEntry(t *testing.T) {
	// A previous run already produced the full-year entry; a later run
	// re-merges the A/B halves alongside it. The established entry wins so
	// repeated runs converge.
	full := course("0100", "Art 1", 1.0)
	full.Term = constants.FullYearTerm
	full.Subject = "Fine Arts"
	full.AddSchool("Seven Lakes High School")
	a := course("0100A", "Art 1 A", 0.5)
	b := course("0100B", "Art 1 B", 0.5)
	b.AddSchool("Tompkins High School")

	out, stats := Collapse(newCatalog(full, a, b))

	if stats.PairsCollapsed != 1 {
		t.Errorf("the pair still counts as collapsed: %+v", stats)
	}
	if out.Courses().Len() != 1 {
		t.Fatalf("expected 1 output entry, got %d", out.Courses().Len())
	}
	merged, _ := out.Courses().Get("0100")
	if merged.Subject != "Fine Arts" || merged.Credits != 1.0 || merged.Term != constants.FullYearTerm {
		t.Errorf("established values must win: %+v", merged)
	}
	if len(merged.Schools) != 2 {
		t.Errorf("schools should still union: %v", merged.Schools)
	}
}

func TestStripMarker(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Art 1 A", "Art 1"},
		{"Art 1 B", "Art 1"},
		{"Art 1A", "Art 1"},
		{"Art 1 A (High School Credit)", "Art 1 (High School Credit)"},
		{"Art 1A (High School Credit)", "Art 1 (High School Credit)"},
		{"Choir 1", "Choir 1"},
		// A trailing capital in a word is not a semester marker.
		{"ALGEBRA", "ALGEBRA"},
		{"Band", "Band"},
	}

	for _, tt := range tests {
		if got := StripMarker(tt.input); got != tt.want {
			t.Errorf("StripMarker(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
