package catalogs

import (
	"github.com/goccy/go-yaml"
)

// FormatYAML renders the course as YAML for human inspection. The JSON form
// in the catalog file stays canonical; this is a display convenience for the
// inspect command.
func (c *Course) FormatYAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
