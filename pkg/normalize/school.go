package normalize

import (
	"strings"
	"unicode"
)

// SchoolKey reduces a school name to its identity key: all whitespace
// stripped, lowercased. Two names denote the same organizational unit iff
// their keys match.
func SchoolKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// CanonicalSchool returns the best-formatted candidate equivalent to key.
// Among equivalent candidates the first one containing a space wins
// ("Seven Lakes High School" over "SevenLakesHighSchool"); otherwise the
// first equivalent candidate. Returns "" when none match.
func CanonicalSchool(key string, candidates []string) string {
	first := ""
	for _, candidate := range candidates {
		if SchoolKey(candidate) != key {
			continue
		}
		if strings.Contains(candidate, " ") {
			return candidate
		}
		if first == "" {
			first = candidate
		}
	}
	return first
}
