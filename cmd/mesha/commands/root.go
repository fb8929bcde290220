// Package commands implements the CLI commands for mesha.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mesha/internal/app"
	"go.trai.ch/mesha/internal/build"
	"go.trai.ch/mesha/internal/core/ports"
)

// CLI represents the command line interface for mesha.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command

	configPath string
	jsonLogs   bool
	quiet      bool
}

// Application represents the application logic interface.
type Application interface {
	Analyze(ctx context.Context, opts app.AnalyzeOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Features(ctx context.Context, opts app.FeaturesOptions) error
}

// logSettings is implemented by loggers that can change format and verbosity.
type logSettings interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// New creates a new CLI instance with the given app. The logger may be nil.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mesha",
		Short:         "Classify mesh topology and geometry features",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
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

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "Path to mesha.yaml (default: discovered from the working directory)")
	pf.BoolVar(&c.jsonLogs, "json-logs", false, "Write log records as JSON")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if s, ok := c.logger.(logSettings); ok {
			s.SetJSON(c.jsonLogs)
			s.SetQuiet(c.quiet)
		}
	}

	rootCmd.AddCommand(c.newAnalyzeCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newFeaturesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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
