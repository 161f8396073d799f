package catalogs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/courseatlas/courseatlas/pkg/constants"
	"github.com/courseatlas/courseatlas/pkg/errors"
)

// Save writes the catalog snapshot to path atomically: the document is
// written to a temporary file in the same directory and renamed into place,
// so a failed run never leaves a partial catalog behind. Courses are written
// in lexical code order with all arrays present.
func (c *Catalog) Save(path string) error {
	courses := c.courses.List()
	for _, course := range courses {
		course.EnsureArrays()
	}

	file := catalogFile{
		Source:  c.source,
		Courses: courses,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
