package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/courseatlas/courseatlas/cmd/courseatlas/cmd"
)

// Execute runs the courseatlas CLI with the given arguments. This is the
// main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "courseatlas",
		Short:   "Course catalog reconciliation CLI",
		Version: a.version,
		Long: `Courseatlas reconciles per-school course catalog extractions into one
canonical, deduplicated catalog: it normalizes raw fields, merges sources by
course code, collapses A/B semester pairs into full-year entries, classifies
grade-point weights, and resolves free-text prerequisites to course codes.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.courseatlas.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.CatalogPath, "catalog", a.config.CatalogPath, "catalog file path")

	rootCmd.SetVersionTemplate("courseatlas {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(c *cobra.Command, _ []string) error {
	verbose := mustGetBool(c, "verbose")
	quiet := mustGetBool(c, "quiet")
	noColor := mustGetBool(c, "no-color")
	logLevel := mustGetString(c, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(cmd.NewReconcileCommand(a))
	rootCmd.AddCommand(cmd.NewValidateCommand(a))
	rootCmd.AddCommand(cmd.NewInspectCommand(a))
	rootCmd.AddCommand(cmd.NewPrereqsCommand(a))
}

// Ensure App satisfies the command dependency interface at compile time.
var _ cmd.App = (*App)(nil)

// ExitOnError prints an error and exits with status 1. Meant for top-level
// error handling in main.go.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetBool(c *cobra.Command, name string) bool {
	val, err := c.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetString(c *cobra.Command, name string) string {
	val, err := c.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
