package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courseatlas/courseatlas/pkg/catalogs"
	"github.com/courseatlas/courseatlas/pkg/prereq"
)

// NewPrereqsCommand creates the prereqs command, which re-resolves every
// prerequisite in the catalog without writing anything and prints the
// frequency-ranked report of texts that match no course. Prerequisites
// already rewritten to course codes are fixed points and stay silent.
func NewPrereqsCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "prereqs",
		Short: "Report prerequisites that resolve to no course",
		RunE: func(c *cobra.Command, _ []string) error {
			cat, err := catalogs.Load(app.CatalogPath())
			if err != nil {
				return err
			}

			resolver := prereq.NewResolver(cat)
			for _, course := range cat.Courses().List() {
				resolver.Resolve(course.Prerequisite)
			}

			fmt.Fprintln(c.OutOrStdout(), resolver.Report())
			return nil
		},
	}
}
