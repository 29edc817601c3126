// Package commands implements the CLI commands for parcel-query.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/jdot274/parcel/internal/app"
	"github.com/jdot274/parcel/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for parcel-query.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Stats(ctx context.Context, w io.Writer, opts app.Options) error
	Requests(ctx context.Context, w io.Writer, opts app.Options, typeNames []string) error
	Request(ctx context.Context, w io.Writer, opts app.Options, contentKey string) error
	Bundles(ctx context.Context, w io.Writer, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "parcel-query",
		Short:         "Inspect a Parcel build cache without running a build",
		Long:          "parcel-query reads the request graph and the most recent asset and bundle graphs\nfrom a build cache directory. Without a subcommand it prints the cache overview.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Stats(cmd.Context(), cmd.OutOrStdout(), c.options(cmd))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("cache-dir", "d", "", "Cache directory to inspect (default \".parcel-cache\")")
	flags.StringP("backend", "b", "", "Small-blob backend: auto, fs, badger or sqlite")
	flags.StringP("config", "c", "", "Path to a parcel-query.yaml file")
	flags.Bool("json-logs", false, "Write logs as JSON")
	flags.Bool("trace", false, "Report the duration of every loading stage")
	flags.Int("result-cache-size", 0, "Number of decoded embedded results kept in memory")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newRequestsCmd())
	rootCmd.AddCommand(c.newRequestCmd())
	rootCmd.AddCommand(c.newBundlesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// options collects the persistent flags into app.Options.
func (c *CLI) options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	cacheDir, _ := flags.GetString("cache-dir")
	backend, _ := flags.GetString("backend")
	configPath, _ := flags.GetString("config")
	jsonLogs, _ := flags.GetBool("json-logs")
	trace, _ := flags.GetBool("trace")
	resultCacheSize, _ := flags.GetInt("result-cache-size")

	return app.Options{
		ConfigPath:      configPath,
		CacheDir:        cacheDir,
		Backend:         backend,
		JSONLogs:        jsonLogs,
		Trace:           trace,
		ResultCacheSize: resultCacheSize,
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
