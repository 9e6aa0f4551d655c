package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func usageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show today's metered usage",
		Example: `  apulse usage --token $APULSE_TOKEN
  apulse usage --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			u, err := c.Usage(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(u)
			}
			return printUsageDetail(u)
		},
	}
}
