// Package semester fuses twinned half-year course entries (codes suffixed A
// and B) into single full-year entries. Group membership is modeled as a
// tagged variant per base code so every branch of the collapse is explicit:
// a complete pair collapses, a partial pair survives under its original code,
// and ambiguous duplicates are preserved as independent entries with a
// warning, never silently dropped or merged.
package semester

import (
	"regexp"
	"strings"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/constants"
	"github.com/courseatlas/courseatlas/pkg/logging"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

var (
	// pairCodePattern matches course codes ending in a semester suffix.
	// The suffix match is case-insensitive, which is how two distinct codes
	// (0100A, 0100a) can land on the same base code and suffix.
	pairCodePattern = regexp.MustCompile(`^(\w+)([ABab])$`)

	// trailingParenPattern captures a trailing parenthetical such as
	// "(High School Credit)" so it can be preserved across the marker strip.
	trailingParenPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

	// spacedMarkerPattern matches a standalone trailing semester letter
	// preceded by whitespace.
	spacedMarkerPattern = regexp.MustCompile(`\s+[AB]$`)

	// abuttingMarkerPattern matches a semester letter directly following a
	// digit, as in "Art 1A".
	abuttingMarkerPattern = regexp.MustCompile(`\d[AB]$`)
)

// Kind tags a base-code group by its membership.
type Kind int

// The four possible group shapes.
const (
	// Complete means both an A and a B entry exist.
	Complete Kind = iota
	// PartialA means only the A half exists.
	PartialA
	// PartialB means only the B half exists.
	PartialB
	// Ambiguous means extra same-suffix entries exist beyond a pair.
	Ambiguous
)

// Group collects the catalog entries sharing one base code.
type Group struct {
	Base   string
	A      *catalogs.Course
	B      *catalogs.Course
	Extras []*catalogs.Course
}

// Kind classifies the group.
func (g *Group) Kind() Kind {
	switch {
	case len(g.Extras) > 0:
		return Ambiguous
	case g.A != nil && g.B != nil:
		return Complete
	case g.A != nil:
		return PartialA
	default:
		return PartialB
	}
}

// Stats counts what one Collapse pass did.
type Stats struct {
	PairsCollapsed int
	PartialsKept   int
	DuplicatesKept int
	PassedThrough  int
}

// Collapse builds a new catalog in which every complete semester pair is
// consolidated under its base code. All other entries are preserved 1:1, so
// output cardinality is input count minus fully collapsed pairs. The input
// catalog is not mutated.
func Collapse(cat *catalogs.Catalog) (*catalogs.Catalog, Stats) {
	out := catalogs.New(catalogs.WithSource(cat.Source().District, cat.Source().URL))
	stats := Stats{}

	groups := make(map[string]*Group)
	var order []string

	for _, course := range cat.Courses().List() {
		m := pairCodePattern.FindStringSubmatch(course.Code)
		if m == nil {
			// Not a semester-suffixed code: pass through with the
			// cosmetic marker strip only.
			kept := course.Copy()
			kept.Name = StripMarker(kept.Name)
			_ = out.Courses().Set(kept.Code, kept)
			stats.PassedThrough++
			continue
		}

		base, suffix := m[1], strings.ToUpper(m[2])
		group, ok := groups[base]
		if !ok {
			group = &Group{Base: base}
			groups[base] = group
			order = append(order, base)
		}

		switch {
		case suffix == "A" && group.A == nil:
			group.A = course
		case suffix == "B" && group.B == nil:
			group.B = course
		default:
			// A second entry sharing the same suffix cannot be
			// disambiguated safely; it stays its own entry.
			group.Extras = append(group.Extras, course)
		}
	}

	for _, base := range order {
		group := groups[base]

		for _, extra := range group.Extras {
			logging.Warn().
				Str("course_code", extra.Code).
				Str("base_code", base).
				Msg("Duplicate semester pair member preserved as separate entry")
			kept := extra.Copy()
			kept.Name = StripMarker(kept.Name)
			_ = out.Courses().Set(kept.Code, kept)
			stats.DuplicatesKept++
		}

		switch group.Kind() {
		case Complete, Ambiguous:
			if group.A != nil && group.B != nil {
				fused := consolidate(base, group.A, group.B)
				if existing, ok := out.Courses().Get(base); ok {
					// The base code already has a full-year entry, left
					// over from a previous run's collapse. Fold the fresh
					// pair into it; the existing fields win so repeated
					// runs converge.
					logging.Warn().
						Str("base_code", base).
						Msg("Base code already present, folding pair into existing entry")
					foldInto(existing, fused)
				} else {
					_ = out.Courses().Set(base, fused)
				}
				stats.PairsCollapsed++
				continue
			}
			// Ambiguous group with an incomplete pair: the surviving
			// halves are kept like partials.
			if group.A != nil {
				keepPartial(out, group.A, &stats)
			}
			if group.B != nil {
				keepPartial(out, group.B, &stats)
			}
		case PartialA:
			keepPartial(out, group.A, &stats)
		case PartialB:
			keepPartial(out, group.B, &stats)
		}
	}

	return out, stats
}

// keepPartial preserves a lone pair half under its original code with the
// cosmetic marker strip but no credit or term change.
func keepPartial(out *catalogs.Catalog, course *catalogs.Course, stats *Stats) {
	kept := course.Copy()
	kept.Name = StripMarker(kept.Name)
	_ = out.Courses().Set(kept.Code, kept)
	stats.PartialsKept++
}

// consolidate fuses the two halves of a complete pair into one full-year
// entry keyed by the base code.
func consolidate(base string, a, b *catalogs.Course) *catalogs.Course {
	merged := a.Copy()
	merged.Code = base
	merged.Name = StripMarker(a.Name)
	merged.Credits = a.Credits + b.Credits
	merged.Term = constants.FullYearTerm

	// A's value wins for scalars unless it is the NA sentinel.
	merged.Subject = scalarAElseB(a.Subject, b.Subject)
	merged.Prerequisite = scalarAElseB(a.Prerequisite, b.Prerequisite)
	merged.Corequisite = scalarAElseB(a.Corequisite, b.Corequisite)
	merged.EnrollmentNotes = scalarAElseB(a.EnrollmentNotes, b.EnrollmentNotes)
	merged.Description = scalarAElseB(a.Description, b.Description)

	merged.AddTags(b.Tags...)
	merged.AddGrades(b.EligibleGrades...)
	merged.AddSchools(b.Schools...)

	// GPA carries A's value here; the classifier pass rederives it anyway.
	merged.GPA = a.GPA
	return merged
}

// foldInto merges a freshly consolidated pair into an entry that already
// owns the base code. Existing values win; the incoming entry only fills the
// NA sentinel, zero credits, and set-valued fields.
func foldInto(existing, incoming *catalogs.Course) {
	existing.Name = scalarAElseB(existing.Name, incoming.Name)
	if existing.Credits == 0 {
		existing.Credits = incoming.Credits
	}
	existing.Term = scalarAElseB(existing.Term, incoming.Term)
	existing.Subject = scalarAElseB(existing.Subject, incoming.Subject)
	existing.Prerequisite = scalarAElseB(existing.Prerequisite, incoming.Prerequisite)
	existing.Corequisite = scalarAElseB(existing.Corequisite, incoming.Corequisite)
	existing.EnrollmentNotes = scalarAElseB(existing.EnrollmentNotes, incoming.EnrollmentNotes)
	existing.Description = scalarAElseB(existing.Description, incoming.Description)
	existing.AddTags(incoming.Tags...)
	existing.AddGrades(incoming.EligibleGrades...)
	existing.AddSchools(incoming.Schools...)
}

func scalarAElseB(a, b string) string {
	if a != "" && a != normalize.NA {
		return a
	}
	if b == "" {
		return normalize.NA
	}
	return b
}

// StripMarker removes a trailing semester letter from a course name. The
// marker is either preceded by whitespace (whitespace and letter removed) or
// directly abuts a digit (only the letter removed). A trailing parenthetical
// is preserved after the strip.
func StripMarker(name string) string {
	paren := ""
	body := name
	if loc := trailingParenPattern.FindStringIndex(name); loc != nil {
		paren = strings.TrimSpace(name[loc[0]:loc[1]])
		body = strings.TrimRight(name[:loc[0]], " \t")
	}

	if loc := spacedMarkerPattern.FindStringIndex(body); loc != nil {
		body = body[:loc[0]]
	} else if abuttingMarkerPattern.MatchString(body) {
		body = body[:len(body)-1]
	}

	if paren != "" {
		return body + " " + paren
	}
	return body
}
