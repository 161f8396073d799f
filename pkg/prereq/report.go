package prereq

import (
	"fmt"
	"sort"
	"strings"
)

// Report aggregates prerequisites that could not be resolved, ranked by how
// often each one occurred, for manual follow-up.
type Report struct {
	counts map[string]int
	total  int
}

// ReportEntry is one unmatched prerequisite and its occurrence count.
type ReportEntry struct {
	Text  string
	Count int
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{counts: make(map[string]int)}
}

// Record notes one unresolvable prerequisite occurrence.
func (r *Report) Record(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	r.counts[text]++
	r.total++
}

// Total returns the number of recorded occurrences.
func (r *Report) Total() int {
	return r.total
}

// Len returns the number of distinct unmatched prerequisites.
func (r *Report) Len() int {
	return len(r.counts)
}

// Entries returns the unmatched prerequisites sorted by descending count,
// ties broken lexically for a stable report.
func (r *Report) Entries() []ReportEntry {
	entries := make([]ReportEntry, 0, len(r.counts))
	for text, count := range r.counts {
		entries = append(entries, ReportEntry{Text: text, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Text < entries[j].Text
	})
	return entries
}

// String renders the report for diagnostics.
func (r *Report) String() string {
	if r.Len() == 0 {
		return "All prerequisites resolved"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Unmatched prerequisites (%d distinct, %d total):\n", r.Len(), r.total)
	for _, entry := range r.Entries() {
		fmt.Fprintf(&b, "  %4d  %s\n", entry.Count, entry.Text)
	}
	return b.String()
}
