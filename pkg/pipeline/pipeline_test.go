package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/constants"
	"github.com/courseatlas/courseatlas/pkg/errors"
	"github.com/courseatlas/courseatlas/pkg/gpa"
)

const sourceNorth = `{
	"name": "north",
	"school": "North High School",
	"courses": [
		{
			"courseCode": "0100A",
			"courseName": "Art 1 A (High School Credit)",
			"credits": "0.5",
			"subject": "Fine Arts",
			"term": "Fall Semester",
			"eligibleGrades": "9, 10",
			"prerequisite": "n/a"
		},
		{
			"courseCode": "0100B",
			"courseName": "Art 1 B (High School Credit)",
			"credits": 0.5,
			"subject": "Fine Arts",
			"term": "Spring Semester",
			"eligibleGrades": ["9", "10"],
			"prerequisite": "n/a"
		},
		{
			"courseCode": "2200",
			"courseName": "AP Biology",
			"credits": "1",
			"subject": "Science",
			"prerequisite": "Biology"
		}
	]
}`

const sourceSouth = `{
	"name": "south",
	"school": "South High School",
	"courses": [
		{
			"courseCode": "2100",
			"courseName": "Biology",
			"credits": "1 credit",
			"subject": "Science"
		},
		{
			"courseCode": "2200",
			"courseName": "AP Biology",
			"credits": "1",
			"subject": "Science",
			"courseDescription": "College-level biology."
		}
	]
}`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	sources := filepath.Join(dir, "sources")
	if err := os.Mkdir(sources, constants.DirPermissions); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"north.json": sourceNorth,
		"south.json": sourceSouth,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(sources, name), []byte(body), constants.FilePermissions); err != nil {
			t.Fatal(err)
		}
	}
	return sources, filepath.Join(dir, constants.CatalogFileName)
}

func testConfig(sources, catalog string) Config {
	return Config{
		District:    "Example ISD",
		URL:         "https://example.org/catalog",
		SourcesDir:  sources,
		CatalogPath: catalog,
	}
}

func TestRunFullPipeline(t *testing.T) {
	sources, catalogPath := writeFixtures(t)

	summary, err := Run(context.Background(), testConfig(sources, catalogPath))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Written {
		t.Fatal("catalog should have been written")
	}
	if summary.Merge.SourcesMerged != 2 {
		t.Errorf("sources merged = %d, want 2", summary.Merge.SourcesMerged)
	}
	if summary.Collapse.PairsCollapsed != 1 {
		t.Errorf("pairs collapsed = %d, want 1", summary.Collapse.PairsCollapsed)
	}

	cat, err := catalogs.Load(catalogPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The A/B pair consolidates under the base code.
	art, ok := cat.Courses().Get("0100")
	if !ok {
		t.Fatal("collapsed course 0100 missing")
	}
	if art.Name != "Art 1 (High School Credit)" {
		t.Errorf("collapsed name = %q", art.Name)
	}
	if art.Credits != 1.0 {
		t.Errorf("collapsed credits = %g, want 1", art.Credits)
	}
	if art.Term != constants.FullYearTerm {
		t.Errorf("collapsed term = %q", art.Term)
	}

	// The AP course got the advanced weight and a resolved prerequisite.
	ap, ok := cat.Courses().Get("2200")
	if !ok {
		t.Fatal("course 2200 missing")
	}
	if ap.GPA != gpa.Advanced {
		t.Errorf("gpa = %g, want %g", float64(ap.GPA), float64(gpa.Advanced))
	}
	if ap.Prerequisite != "2100" {
		t.Errorf("prerequisite = %q, want resolved code 2100", ap.Prerequisite)
	}
	if ap.Description != "College-level biology." {
		t.Errorf("description from second source should fill the gap, got %q", ap.Description)
	}

	if summary.CourseCount != cat.Courses().Len() {
		t.Errorf("summary count %d != catalog count %d", summary.CourseCount, cat.Courses().Len())
	}
}

func TestRunIsRepeatable(t *testing.T) {
	sources, catalogPath := writeFixtures(t)
	cfg := testConfig(sources, catalogPath)

	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(catalogPath)
	if err != nil {
		t.Fatal(err)
	}

	// The second run folds the same sources into the prior snapshot.
	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(catalogPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("re-running over the produced catalog must be a no-op")
	}
}

func TestRunDryRun(t *testing.T) {
	sources, catalogPath := writeFixtures(t)
	cfg := testConfig(sources, catalogPath)
	cfg.DryRun = true

	summary, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Written {
		t.Error("dry run must not report a write")
	}
	if _, err := os.Stat(catalogPath); !os.IsNotExist(err) {
		t.Error("dry run must not create the catalog file")
	}
}

func TestRunMissingSourcesDir(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(filepath.Join(dir, "nope"), filepath.Join(dir, "catalog.json"))

	_, err := Run(context.Background(), cfg)
	if !errors.IsMissingInput(err) {
		t.Fatalf("expected missing-input error, got %v", err)
	}
}

func TestRunSkipsMalformedSource(t *testing.T) {
	sources, catalogPath := writeFixtures(t)
	if err := os.WriteFile(filepath.Join(sources, "broken.json"), []byte("{"), constants.FilePermissions); err != nil {
		t.Fatal(err)
	}

	summary, err := Run(context.Background(), testConfig(sources, catalogPath))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Warnings) == 0 {
		t.Error("malformed source should surface as a warning")
	}
	if summary.Merge.SourcesMerged != 2 {
		t.Errorf("sources merged = %d, want 2", summary.Merge.SourcesMerged)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{CatalogPath: "catalog.json"}
	if err := cfg.Validate(); err == nil {
		t.Error("missing sources dir must fail validation")
	}
	cfg = Config{SourcesDir: "sources"}
	if err := cfg.Validate(); err == nil {
		t.Error("missing catalog path must fail validation")
	}
}
