package catalogs

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/courseatlas/courseatlas/pkg/errors"
)

// catalogFile is the on-disk persisted form of a catalog: one structured
// document read and rewritten wholesale each run.
type catalogFile struct {
	Source  Source    `json:"source"`
	Courses []*Course `json:"courses"`
}

// Load reads a catalog snapshot from path. A missing file surfaces as an
// IOError wrapping the underlying not-exist error so callers can decide
// whether absence is fatal for their stage. Course codes must be pairwise
// distinct; a snapshot carrying repeated codes is rejected with every
// conflicting code listed, never silently collapsed last-wins.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	cat := New(WithSource(file.Source.District, file.Source.URL))
	var duplicates []string
	for _, course := range file.Courses {
		course.EnsureArrays()
		if cat.Courses().Exists(course.Code) {
			if !slices.Contains(duplicates, course.Code) {
				duplicates = append(duplicates, course.Code)
			}
			continue
		}
		if err := cat.Courses().Set(course.Code, course); err != nil {
			return nil, errors.WrapResource("load", "course", course.Code, err)
		}
	}
	if len(duplicates) > 0 {
		return nil, errors.NewMergeError(path, "catalog", duplicates, errors.ErrInvalidInput)
	}
	return cat, nil
}
