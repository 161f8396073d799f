package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courseatlas/courseatlas/internal/validation"
	"github.com/courseatlas/courseatlas/pkg/catalogs"
)

// NewValidateCommand creates the validate command, which runs structural
// validation over an existing catalog file without modifying it.
func NewValidateCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the structure of a catalog file",
		RunE: func(c *cobra.Command, _ []string) error {
			path := app.CatalogPath()
			cat, err := catalogs.Load(path)
			if err != nil {
				return err
			}

			report := validation.ValidateCatalog(cat)
			for _, issue := range report.Issues {
				fmt.Fprintln(c.OutOrStdout(), issue)
			}
			if !report.Valid() {
				return report.Err()
			}

			fmt.Fprintf(c.OutOrStdout(), "%s: %d courses, %d warnings, no errors\n",
				path, cat.Courses().Len(), len(report.Warnings()))
			return nil
		},
	}
}
