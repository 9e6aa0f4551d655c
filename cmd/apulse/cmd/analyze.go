package cmd

import (
	"context"

	"github.com/spf13/cobra"

	apiclient "github.com/viraladmedia/amzpulse/internal/api/client"
)

func financialFlags(cmd *cobra.Command, fin *apiclient.FinancialInputs) {
	cmd.Flags().Float64Var(&fin.BuyCost, "buy-cost", 0, "per-unit purchase cost")
	cmd.Flags().Float64Var(&fin.PrepCost, "prep-cost", 0, "per-unit prep cost")
	cmd.Flags().Float64Var(&fin.InboundShipping, "inbound-shipping", 0, "per-unit inbound shipping cost")
	cmd.Flags().Float64Var(&fin.OutboundShipping, "outbound-shipping", 0, "per-unit outbound shipping cost")
	cmd.Flags().StringVar(&fin.Fulfillment, "fulfillment", "", "fulfillment mode (FBA, FBM)")
	cmd.Flags().Float64Var(&fin.SalePrice, "sale-price", 0, "sale price override")
}

func analyzeCmd() *cobra.Command {
	var fin apiclient.FinancialInputs

	cmd := &cobra.Command{
		Use:   "analyze <asin>",
		Short: "Run an AI sell-potential assessment",
		Long: "Request an AI assessment of a catalog product's sell potential.\n" +
			"Optional cost flags give the model your sourcing economics. Counts\n" +
			"against the daily quota on the free plan.",
		Example: `  apulse analyze B0B3C7Q2MJ --token $APULSE_TOKEN
  apulse analyze B0B3C7Q2MJ --buy-cost 42.50 --prep-cost 1.25 --fulfillment FBA`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			a, err := c.Analyze(context.Background(), args[0], &fin)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(a)
			}
			return printAnalysisDetail(a)
		},
	}

	financialFlags(cmd, &fin)
	return cmd
}

func profitCmd() *cobra.Command {
	var fin apiclient.FinancialInputs

	cmd := &cobra.Command{
		Use:   "profit <asin>",
		Short: "Run the fee and ROI calculator",
		Example: `  apulse profit B0B3C7Q2MJ --buy-cost 42.50 --token $APULSE_TOKEN
  apulse profit B0B3C7Q2MJ --buy-cost 42.50 --fulfillment FBM --outbound-shipping 4.80`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			r, err := c.Profit(context.Background(), args[0], fin)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(r)
			}
			return printProfitDetail(r)
		},
	}

	financialFlags(cmd, &fin)
	return cmd
}
