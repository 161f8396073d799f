package prereq

import (
	"regexp"
	"strings"

	"github.com/courseatlas/courseatlas/pkg/constants"
)

// Rule is one named stage of the resolution strategy. Apply returns the
// resolved course code and whether this rule matched.
type Rule struct {
	Name  string
	Apply func(idx *Index, text string) (string, bool)
}

// abbreviationTable expands domain shorthand into the course-name fragment
// it stands for, before containment matching repeats.
var abbreviationTable = map[string]string{
	"alg":  "algebra",
	"bio":  "biology",
	"chem": "chemistry",
	"eng":  "english",
	"geo":  "geometry",
	"hist": "history",
	"prin": "principles",
	"sci":  "science",
	"tech": "technology",
}

var trailingSequence = regexp.MustCompile(`\s+\d+$`)

// DefaultRules returns the resolution stages in evaluation order. The first
// rule to match wins.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "exact-code", Apply: exactCode},
		{Name: "exact-name", Apply: exactName},
		{Name: "name-case-insensitive", Apply: nameCaseInsensitive},
		{Name: "normalized-name", Apply: normalizedName},
		{Name: "containment", Apply: containment},
		{Name: "abbreviation", Apply: abbreviation},
		{Name: "base-name", Apply: baseName},
		{Name: "word-overlap", Apply: wordOverlap},
		{Name: "prefix-fallback", Apply: prefixFallback},
	}
}

// exactCode: the text already is a course code, a fixed point.
func exactCode(idx *Index, text string) (string, bool) {
	if idx.HasCode(text) {
		return text, true
	}
	return "", false
}

// exactName: the text equals a course name verbatim.
func exactName(idx *Index, text string) (string, bool) {
	if code, ok := idx.byName[text]; ok {
		return code, true
	}
	return "", false
}

// nameCaseInsensitive: the text equals a course name ignoring case.
func nameCaseInsensitive(idx *Index, text string) (string, bool) {
	if code, ok := idx.byLower[strings.ToLower(text)]; ok {
		return code, true
	}
	return "", false
}

// normalizedName: the text equals a course name after both sides pass
// through the full normalization pipeline.
func normalizedName(idx *Index, text string) (string, bool) {
	if code, ok := idx.byNorm[Normalize(text)]; ok {
		return code, true
	}
	return "", false
}

// containment: normalized prefix/substring match in either direction, with a
// minimum-length guard so generic short tokens never match.
func containment(idx *Index, text string) (string, bool) {
	return containsMatch(idx, Normalize(text))
}

func containsMatch(idx *Index, norm string) (string, bool) {
	if len(norm) < constants.MinContainmentLength {
		return "", false
	}
	for _, e := range idx.entries {
		if len(e.Norm) < constants.MinContainmentLength {
			continue
		}
		if strings.Contains(e.Norm, norm) || strings.Contains(norm, e.Norm) {
			return e.Code, true
		}
	}
	return "", false
}

// abbreviation: expand domain shorthand, then repeat containment matching.
func abbreviation(idx *Index, text string) (string, bool) {
	norm := Normalize(text)
	words := strings.Fields(norm)
	expanded := false
	for i, word := range words {
		if full, ok := abbreviationTable[word]; ok {
			words[i] = full
			expanded = true
		}
	}
	if !expanded {
		return "", false
	}
	return containsMatch(idx, strings.Join(words, " "))
}

// baseName: strip a trailing sequence-number token ("Journalism 3" ->
// "Journalism") and retry containment on the base.
func baseName(idx *Index, text string) (string, bool) {
	norm := Normalize(text)
	base := trailingSequence.ReplaceAllString(norm, "")
	if base == norm {
		return "", false
	}
	return containsMatch(idx, base)
}

// wordOverlap: split the normalized text into significant words; a candidate
// whose normalized name contains every one of at least two such words is
// accepted.
func wordOverlap(idx *Index, text string) (string, bool) {
	var significant []string
	for _, word := range strings.Fields(Normalize(text)) {
		if len(word) >= constants.SignificantWordLength {
			significant = append(significant, word)
		}
	}
	if len(significant) < constants.MinOverlapWords {
		return "", false
	}

	for _, e := range idx.entries {
		all := true
		for _, word := range significant {
			if !strings.Contains(e.Norm, word) {
				all = false
				break
			}
		}
		if all {
			return e.Code, true
		}
	}
	return "", false
}

// prefixFallback: last-resort case-insensitive prefix match in either
// direction against the raw names.
func prefixFallback(idx *Index, text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if len(lower) < constants.MinContainmentLength {
		return "", false
	}
	for _, e := range idx.entries {
		if strings.HasPrefix(e.Lower, lower) || strings.HasPrefix(lower, e.Lower) {
			return e.Code, true
		}
	}
	return "", false
}
