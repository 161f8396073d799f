// Package normalize cleans and coerces raw extracted course fields into
// their canonical scalar forms. Every textual field in the catalog is either
// meaningful text or the NA sentinel, never an empty string.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/courseatlas/courseatlas/pkg/constants"
)

// NA is the canonical "value intentionally unknown" sentinel.
const NA = constants.NA

var creditsPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// stripJunk removes Unicode replacement characters and C0/C1 control
// characters after canonical (NFC) composition.
var stripJunk = transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isJunk)))

func isJunk(r rune) bool {
	if r == '�' {
		return true
	}
	// C0 and C1 control blocks
	return r < 0x20 || (r >= 0x7F && r < 0xA0)
}

// Text collapses empty, whitespace-only, "n/a" (any case), and "-" values to
// the NA sentinel. Anything else is trimmed and returned unchanged.
func Text(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" || strings.EqualFold(trimmed, NA) {
		return NA
	}
	return trimmed
}

// Credits extracts the first decimal or integer numeric token found in the
// text. Absent a match it returns 0.
func Credits(s string) float64 {
	match := creditsPattern.FindString(s)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}

// Grades splits a comma-separated grade list into trimmed tokens. Text that
// normalizes to NA yields an empty slice, never ["n/a"].
func Grades(s string) []string {
	if Text(s) == NA {
		return []string{}
	}

	parts := strings.Split(s, ",")
	grades := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			grades = append(grades, token)
		}
	}
	return grades
}

// Description applies Unicode canonical normalization, strips replacement and
// control characters, collapses internal whitespace runs to single spaces,
// and trims. An empty result maps to NA.
func Description(s string) string {
	cleaned, _, err := transform.String(stripJunk, s)
	if err != nil {
		cleaned = s
	}

	cleaned = strings.Join(strings.FieldsFunc(cleaned, unicode.IsSpace), " ")
	if cleaned == "" {
		return NA
	}
	return cleaned
}
