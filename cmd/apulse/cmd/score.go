package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	score "github.com/viraladmedia/amzpulse/pkg/scorer"
)

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <asin>",
		Short: "Show the deterministic opportunity score",
		Long: "Compute the composite opportunity score for a catalog product from\n" +
			"its rank, fee margin, competition, reviews, trend, and risk flags.\n" +
			"Unlike analyze, this never calls a model and is not metered.",
		Example: `  apulse score B0B3C7Q2MJ
  apulse score B0B3C7Q2MJ --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			b, err := c.Score(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(b)
			}
			return printScoreDetail(b)
		},
	}
}

func printScoreDetail(b *score.Breakdown) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Total:\t%d/100\n", b.Total)
	tw.writef("Demand:\t%.0f\n", b.Demand)
	tw.writef("Margin:\t%.0f\n", b.Margin)
	tw.writef("Competition:\t%.0f\n", b.Competition)
	tw.writef("Proof:\t%.0f\n", b.Proof)
	tw.writef("Momentum:\t%.0f\n", b.Momentum)
	tw.writef("Risk:\t%.0f\n", b.Risk)
	return tw.finish()
}
