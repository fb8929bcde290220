package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mesha/internal/app"
)

func (c *CLI) newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the available features and their configured state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Features(cmd.Context(), app.FeaturesOptions{ConfigPath: c.configPath})
		},
	}
}
