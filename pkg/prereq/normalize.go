package prereq

import (
	"regexp"
	"strings"
)

// typoTable is a small fixed substitution table for misspellings that
// actually occur in extracted prerequisite text.
var typoTable = map[string]string{
	"algrebra":      "algebra",
	"algerbra":      "algebra",
	"prinicples":    "principles",
	"principels":    "principles",
	"enviornmental": "environmental",
	"goverment":     "government",
	"journlism":     "journalism",
}

// romanTable converts standalone Roman numerals to Arabic sequence numbers.
var romanTable = map[string]string{
	"i":   "1",
	"ii":  "2",
	"iii": "3",
	"iv":  "4",
}

var (
	parenPattern   = regexp.MustCompile(`\(([^)]*)\)`)
	virtualPattern = regexp.MustCompile(`(?i)\s*[-–]?\s*virtual\s*$`)
	trailingLetter = regexp.MustCompile(`\s+[A-Za-z]$`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Normalize reduces prerequisite text (or a catalog course name) to its
// comparison form. Steps, in order: typo correction, Roman-numeral
// conversion for standalone numerals, parenthetical removal (a KAP marker
// inside parentheses is retained), virtual-suffix stripping, trailing
// single-letter semester-marker stripping, "&" to "and", whitespace
// collapse, lowercase.
func Normalize(s string) string {
	// Parentheticals drop, except a KAP marker survives the removal.
	s = parenPattern.ReplaceAllStringFunc(s, func(m string) string {
		if strings.Contains(strings.ToUpper(m), "KAP") {
			return " KAP "
		}
		return " "
	})

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ToLower(s)
	s = virtualPattern.ReplaceAllString(s, "")

	words := strings.Fields(s)
	for i, word := range words {
		if fixed, ok := typoTable[word]; ok {
			words[i] = fixed
		}
		if arabic, ok := romanTable[words[i]]; ok {
			words[i] = arabic
		}
	}
	s = strings.Join(words, " ")

	// Numeral conversion has already run, so a surviving trailing single
	// letter is a semester marker, not a Roman numeral.
	s = trailingLetter.ReplaceAllString(s, "")

	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), " ")
}

// bareNumeralPattern matches text that is nothing but an Arabic or Roman
// sequence numeral. Such text is not a course reference on its own.
var bareNumeralPattern = regexp.MustCompile(`(?i)^\s*(\d+|i{1,3}|iv)\s*$`)

// IsBareNumeral reports whether the text is a standalone numeral.
func IsBareNumeral(s string) bool {
	return bareNumeralPattern.MatchString(s)
}
