// Package cli maps the foodstock subcommands onto the food service.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/abgdnv/foodstock/internal/config"
	"github.com/abgdnv/foodstock/internal/food/app"
	"github.com/abgdnv/foodstock/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Execute loads the configuration, runs the command given by args and
// returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		reportError(stdout, err)
		return 1
	}
	return Run(ctx, cfg, args, stdout, stderr)
}

// Run executes args against an already loaded configuration.
// A failed command reports the error on stdout and yields exit code 1.
func Run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(stdout, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "An error occurred: %v\n", err)
}

// NewRootCmd builds the command tree. Global flags default to the values in
// cfg and write back into it.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	var deps *app.Dependencies

	root := &cobra.Command{
		Use:           "foodstock",
		Short:         "Restaurant food inventory manager",
		Long:          "foodstock keeps a restaurant's food items (name, stock, price) in a flat comma-separated file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			ctx := logger.WithCommand(logger.WithRunID(cmd.Context()), cmd.Name())
			cmd.SetContext(ctx)
			log.DebugContext(ctx, "Configuration loaded", "config", cfg.String())

			deps = app.SetupDependencies(cfg, log, cmd.OutOrStdout())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfg.Data.File, "data-file", "d", cfg.Data.File, "path of the inventory data file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "report lines of the data file that could not be parsed")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	flags.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format: text or json")

	get := func() *app.Dependencies { return deps }
	root.AddCommand(
		newAddCmd(get),
		newEditCmd(get),
		newListCmd(get),
		newRemoveCmd(get),
		newSearchCmd(get),
	)
	return root
}
