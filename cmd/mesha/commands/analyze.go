package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mesha/internal/app"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	var opts app.AnalyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [objects...]",
		Short: "Analyze scene objects once and print a report",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = c.configPath
			opts.Objects = append(opts.Objects, args...)
			return c.app.Analyze(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.ScenePath, "scene", "s", app.DefaultScenePath, "Scene file to analyze")
	cmd.Flags().StringArrayVarP(&opts.Objects, "object", "O", nil, "Object to analyze (repeatable, default: every mesh object)")
	cmd.Flags().StringArrayVarP(&opts.Features, "feature", "f", nil, "Feature to query (repeatable, default: enabled features)")
	cmd.Flags().StringVar(&opts.Format, "format", app.FormatText, "Report format: text or json")
	return cmd
}
