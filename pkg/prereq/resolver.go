package prereq

import (
	"regexp"
	"strings"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/logging"
	"github.com/courseatlas/courseatlas/pkg/normalize"
)

// qualifierPattern detects non-course qualifying text inside a compound
// clause: credit-hour or grade-level phrases.
var qualifierPattern = regexp.MustCompile(`(?i)\b(credit|credits|hour|hours|grade|gpa|average)\b`)

// Resolver rewrites prerequisite free text into canonical course codes.
type Resolver struct {
	idx    *Index
	rules  []Rule
	report *Report
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRules replaces the default rule table.
func WithRules(rules []Rule) ResolverOption {
	return func(r *Resolver) {
		r.rules = rules
	}
}

// NewResolver builds a resolver whose lookup universe is the given catalog.
func NewResolver(cat *catalogs.Catalog, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		idx:    BuildIndex(cat),
		rules:  DefaultRules(),
		report: NewReport(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report returns the unmatched-prerequisite report accumulated so far.
func (r *Resolver) Report() *Report {
	return r.report
}

// Resolve rewrites one prerequisite string. Compound handling precedes
// per-token resolution: " or " clauses resolve independently and rejoin with
// " or "; " and "/"&" clauses resolve independently and rejoin with " or "
// when every resolved clause is a bona fide course code and no original
// clause carried qualifying text, otherwise " and " is preserved. The
// returned bool reports whether anything changed.
func (r *Resolver) Resolve(text string) (string, bool) {
	if text == "" || text == normalize.NA {
		return text, false
	}

	if containsToken(text, " or ") {
		return r.resolveOr(text)
	}
	if containsToken(text, " and ") || strings.Contains(text, "&") {
		return r.resolveAnd(text)
	}

	resolved, ok := r.resolveToken(text)
	if !ok {
		r.report.Record(text)
		return text, false
	}
	return resolved, resolved != text
}

// resolveOr splits on " or ", resolves each clause independently, drops
// clauses that are bare numerals, and rejoins with " or ".
func (r *Resolver) resolveOr(text string) (string, bool) {
	clauses := splitToken(text, " or ")
	var resolved []string
	for _, clause := range clauses {
		if IsBareNumeral(clause) {
			continue
		}
		if code, ok := r.resolveToken(clause); ok {
			resolved = append(resolved, code)
		} else {
			// Unresolvable clauses survive as literal text.
			r.report.Record(clause)
			resolved = append(resolved, clause)
		}
	}
	if len(resolved) == 0 {
		return text, false
	}
	joined := strings.Join(resolved, " or ")
	return joined, joined != text
}

// resolveAnd splits on " and "/"&" and resolves each clause. The domain
// treats an "and" of interchangeable course codes as alternative
// satisfaction, so a compound whose every clause resolved to a code and
// whose original clauses carried no qualifying text rejoins with " or ".
func (r *Resolver) resolveAnd(text string) (string, bool) {
	normalized := strings.ReplaceAll(text, "&", " and ")
	clauses := splitToken(normalized, " and ")

	allCodes := true
	hasQualifier := false
	var resolved []string
	for _, clause := range clauses {
		if qualifierPattern.MatchString(clause) {
			hasQualifier = true
		}
		code, ok := r.resolveToken(clause)
		if !ok {
			r.report.Record(clause)
			resolved = append(resolved, clause)
			allCodes = false
			continue
		}
		resolved = append(resolved, code)
		if !r.idx.HasCode(code) {
			allCodes = false
		}
	}

	joiner := " and "
	if allCodes && !hasQualifier {
		joiner = " or "
	}
	joined := strings.Join(resolved, joiner)
	return joined, joined != text
}

// resolveToken applies the rule table to a single clause. Bare numerals are
// not course references and never resolve.
func (r *Resolver) resolveToken(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == normalize.NA {
		return text, false
	}
	if IsBareNumeral(text) {
		return "", false
	}

	for _, rule := range r.rules {
		if code, ok := rule.Apply(r.idx, text); ok {
			logging.Debug().
				Str("rule", rule.Name).
				Str("prerequisite", text).
				Str("course_code", code).
				Msg("Resolved prerequisite")
			return code, true
		}
	}
	return "", false
}

// Stats counts the outcome of one Apply pass.
type Stats struct {
	Updated   int
	Unchanged int
	Unmatched int
}

// Apply resolves the prerequisite field of every course in the catalog,
// mutating courses in place. Unresolvable prerequisites keep their original
// text and are aggregated into the report; they never block completion.
func (r *Resolver) Apply(cat *catalogs.Catalog) Stats {
	stats := Stats{}
	before := r.report.Total()

	for _, course := range cat.Courses().List() {
		resolved, changed := r.Resolve(course.Prerequisite)
		if changed {
			course.Prerequisite = resolved
			stats.Updated++
		} else {
			stats.Unchanged++
		}
	}

	stats.Unmatched = r.report.Total() - before
	return stats
}

// containsToken reports a case-insensitive occurrence of token.
func containsToken(text, token string) bool {
	return strings.Contains(strings.ToLower(text), token)
}

// splitToken splits case-insensitively on token, trimming each clause.
func splitToken(text, token string) []string {
	lower := strings.ToLower(text)
	var clauses []string
	for {
		i := strings.Index(lower, token)
		if i < 0 {
			break
		}
		clauses = append(clauses, strings.TrimSpace(text[:i]))
		text = text[i+len(token):]
		lower = lower[i+len(token):]
	}
	clauses = append(clauses, strings.TrimSpace(text))
	return clauses
}
