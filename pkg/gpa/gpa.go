// Package gpa derives grade-point weights from course name and tag evidence.
// Classification is a pure function of its inputs, so the weight stored on a
// course is a cache that can be recomputed at any time; recomputation is
// idempotent and re-runnable.
package gpa

import "strings"

// Weight is a grade-point value from the fixed weighting enumeration.
type Weight float64

// The three recognized grade-point weights.
const (
	// Standard is the default on-level weight.
	Standard Weight = 4.0
	// DualCredit is the weight for dual-credit courses.
	DualCredit Weight = 4.5
	// Advanced is the weight for AP and KAP courses.
	Advanced Weight = 5.0
)

// Valid reports whether w is one of the recognized weights.
func (w Weight) Valid() bool {
	switch w {
	case Standard, DualCredit, Advanced:
		return true
	}
	return false
}

// Calculate classifies a course by name and tag evidence. Rules are checked
// in order and the first match wins:
//
//  1. Name contains "AP" or "KAP", or tags contain "AP" or "KAP" -> Advanced.
//  2. Name contains "Dual Credit", or tags contain "DC" -> DualCredit.
//  3. Otherwise -> Standard.
//
// A course flagged both AP and dual credit resolves to Advanced.
func Calculate(courseName string, tags []string) Weight {
	upperName := strings.ToUpper(courseName)

	if strings.Contains(upperName, "AP") || strings.Contains(upperName, "KAP") ||
		hasTag(tags, "AP") || hasTag(tags, "KAP") {
		return Advanced
	}

	if strings.Contains(upperName, "DUAL CREDIT") || hasTag(tags, "DC") {
		return DualCredit
	}

	return Standard
}

// hasTag reports exact case-insensitive membership.
func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}
