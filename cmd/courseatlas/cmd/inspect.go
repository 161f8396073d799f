package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/errors"
)

// NewInspectCommand creates the inspect command, which renders one course
// from the catalog as YAML.
func NewInspectCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CODE",
		Short: "Show one course as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cat, err := catalogs.Load(app.CatalogPath())
			if err != nil {
				return err
			}

			code := args[0]
			course, ok := cat.Courses().Get(code)
			if !ok {
				return errors.NewNotFoundError("course", code)
			}

			out, err := course.FormatYAML()
			if err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), out)
			return nil
		},
	}
}
