package reconcile

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/logging"
)

func TestReconcileFold(t *testing.T) {
	ctx := context.Background()
	r := New(WithDistrict("Katy ISD"), WithURL("https://example.com/catalog"))

	docs := []*SourceDocument{
		doc("a_shs.json", "Seven Lakes High School", rawCourse("0100", "Art 1"), rawCourse("0200", "Biology")),
		doc("b_ths.json", "Tompkins High School", rawCourse("0100", "Art 1")),
		{Name: "c_broken.json", School: "Taylor High School"},
	}

	result := r.Reconcile(ctx, nil, docs)

	if !result.IsSuccess() {
		t.Fatalf("expected success: %v", result.Errors)
	}
	if result.Catalog.Source().District != "Katy ISD" {
		t.Errorf("district not stamped: %+v", result.Catalog.Source())
	}
	if result.Catalog.Courses().Len() != 2 {
		t.Errorf("expected 2 unique courses, got %d", result.Catalog.Courses().Len())
	}

	stats := result.Metadata.Stats
	if stats.SourcesMerged != 2 || stats.SourcesSkipped != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if !result.HasWarnings() {
		t.Error("a skipped source should surface a warning")
	}

	// Course codes are pairwise distinct by construction.
	codes := result.Catalog.Courses().Codes()
	seen := map[string]bool{}
	for _, code := range codes {
		if seen[code] {
			t.Fatalf("duplicate code %s in output", code)
		}
		seen[code] = true
	}
}

func TestReconcileWarnsOncePerSkippedSource(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	ctx := logging.WithLogger(context.Background(), &logger)

	r := New()
	result := r.Reconcile(ctx, nil, []*SourceDocument{
		{Name: "broken.json", School: "Taylor High School"},
		doc("shs.json", "Seven Lakes High School", rawCourse("0100", "Art 1")),
	})

	if len(result.Warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %v", result.Warnings)
	}
	if got := strings.Count(buf.String(), "no courses array"); got != 1 {
		t.Errorf("the skipped source should be logged exactly once, got %d:\n%s", got, buf.String())
	}
}

func TestReconcilePriorNotMutated(t *testing.T) {
	prior := catalogs.New()
	course := &catalogs.Course{Code: "0100", Name: "Art 1"}
	course.EnsureArrays()
	_ = prior.Courses().Add(course)

	r := New()
	result := r.Reconcile(context.Background(), prior, []*SourceDocument{
		doc("a.json", "Seven Lakes High School", rawCourse("0300", "Choir 1")),
	})

	if prior.Courses().Len() != 1 {
		t.Error("the prior snapshot must stay intact")
	}
	if result.Catalog.Courses().Len() != 2 {
		t.Errorf("fold output should contain prior plus new, got %d", result.Catalog.Courses().Len())
	}
}

func TestReconcileDeterministicOrder(t *testing.T) {
	a := rawCourse("0100", "Art 1")
	a.Subject = "Fine Arts"
	b := rawCourse("0100", "Art 1")
	b.Subject = "Visual Arts"

	r := New()
	first := r.Reconcile(context.Background(), nil, []*SourceDocument{
		doc("a.json", "Seven Lakes High School", a),
		doc("b.json", "Tompkins High School", b),
	})

	// Same order, same result: the contract is deterministic ordering,
	// not commutativity.
	second := r.Reconcile(context.Background(), nil, []*SourceDocument{
		doc("a.json", "Seven Lakes High School", a),
		doc("b.json", "Tompkins High School", b),
	})

	c1, _ := first.Catalog.Courses().Get("0100")
	c2, _ := second.Catalog.Courses().Get("0100")
	if c1.Subject != c2.Subject {
		t.Errorf("identical source order must reproduce identical output: %q vs %q", c1.Subject, c2.Subject)
	}
	if c1.Subject != "Fine Arts" {
		t.Errorf("first source in processing order should win, got %q", c1.Subject)
	}
}
