package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"ls"},
		Short:   "List the request nodes of the request graph",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, _ := cmd.Flags().GetStringSlice("type")
			return c.app.Requests(cmd.Context(), cmd.OutOrStdout(), c.options(cmd), types)
		},
	}

	cmd.Flags().StringSliceP("type", "t", nil, "Only list requests of this type (repeatable)")

	return cmd
}

func (c *CLI) newRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "request <content-key>",
		Aliases: []string{"show"},
		Short:   "Show one request with its subrequests, invalidations and embedded result",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Request(cmd.Context(), cmd.OutOrStdout(), c.options(cmd), args[0])
		},
	}
}
