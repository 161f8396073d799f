package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courseatlas/courseatlas/pkg/logging"
	"github.com/courseatlas/courseatlas/pkg/pipeline"
)

// NewReconcileCommand creates the reconcile command, which runs the full
// pipeline: merge sources, collapse semester pairs, classify grade points,
// resolve prerequisites, validate, and rewrite the catalog.
func NewReconcileCommand(app App) *cobra.Command {
	var (
		sourcesDir string
		district   string
		url        string
		dryRun     bool
	)

	c := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile source documents into the canonical catalog",
		Long: `Reconcile folds every per-school source document into the prior catalog
snapshot in lexical filename order, then runs the consolidation passes and
atomically rewrites the catalog file. No partial catalog is ever written.`,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := pipeline.Config{
				District:    district,
				URL:         url,
				SourcesDir:  sourcesDir,
				CatalogPath: app.CatalogPath(),
				DryRun:      dryRun,
			}
			if cfg.District == "" {
				cfg.District = app.District()
			}
			if cfg.URL == "" {
				cfg.URL = app.URL()
			}
			if cfg.SourcesDir == "" {
				cfg.SourcesDir = app.SourcesDir()
			}

			ctx := logging.WithLogger(c.Context(), app.Logger())
			summary, err := pipeline.Run(ctx, cfg)
			if err != nil {
				return err
			}

			fmt.Fprint(c.OutOrStdout(), summary.String())
			if len(summary.Unmatched) > 0 {
				fmt.Fprintf(c.OutOrStdout(), "  unmatched prerequisites: %d distinct (see 'courseatlas prereqs')\n",
					len(summary.Unmatched))
			}
			return nil
		},
	}

	c.Flags().StringVar(&sourcesDir, "sources", "", "directory of per-source documents")
	c.Flags().StringVar(&district, "district", "", "district identifier for the catalog source block")
	c.Flags().StringVar(&url, "url", "", "public catalog URL for the catalog source block")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "run every stage but skip the final write")

	return c
}
