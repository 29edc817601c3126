package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBundlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundles",
		Short: "List the bundles written by the last build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Bundles(cmd.Context(), cmd.OutOrStdout(), c.options(cmd))
		},
	}
}
