package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mesha/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var opts app.WatchOptions

	cmd := &cobra.Command{
		Use:   "watch [objects...]",
		Short: "Re-analyze the scene whenever it or the configuration changes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "linear"
			if ci {
				opts.OutputMode = "linear"
			}
			opts.ConfigPath = c.configPath
			opts.Objects = append(opts.Objects, args...)
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.ScenePath, "scene", "s", app.DefaultScenePath, "Scene file to watch")
	cmd.Flags().StringArrayVarP(&opts.Objects, "object", "O", nil, "Object to analyze (repeatable, default: every mesh object)")
	cmd.Flags().StringArrayVarP(&opts.Features, "feature", "f", nil, "Feature to query (repeatable, default: enabled features)")
	cmd.Flags().StringVarP(&opts.OutputMode, "output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}
