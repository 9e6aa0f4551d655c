package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/viraladmedia/amzpulse/internal/api/client"
)

func batchCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "batch <asin> [asin...]",
		Short: "Resolve a list of ASINs in one request",
		Long: "Resolve a list of ASINs in a single request. Products already in the\n" +
			"catalog are served from it; the rest are fetched from the marketplace\n" +
			"source. Items that could not be fetched live carry a warning.",
		Example: `  apulse batch B0B3C7Q2MJ B08N5WRWNW --token $APULSE_TOKEN
  apulse batch B0B3C7Q2MJ B08N5WRWNW --csv results.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			result, err := c.BatchAnalyze(context.Background(), args)
			if err != nil {
				return err
			}
			if csvPath != "" {
				if err := writeBatchCSV(csvPath, result.Products); err != nil {
					return err
				}
				fmt.Printf("Wrote %d products to %s\n", len(result.Products), csvPath)
				if result.Warning != "" {
					fmt.Println("Warning:", result.Warning)
				}
				return nil
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			if err := printBatchTable(result.Products); err != nil {
				return err
			}
			if result.Warning != "" {
				fmt.Println("Warning:", result.Warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write results to a CSV file")
	return cmd
}

func printBatchTable(records []apiclient.ProductRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ASIN\tNAME\tPRICE\tBSR\tWARNING\n")
	for i := range records {
		r := &records[i]
		warning := "-"
		if r.Warning != "" {
			warning = truncate(r.Warning, 40)
		}
		tw.writef("%s\t%s\t$%.2f\t%d\t%s\n",
			r.ASIN,
			truncate(r.Name, 40),
			r.Price,
			r.Rank,
			warning,
		)
	}
	return tw.finish()
}

func writeBatchCSV(path string, records []apiclient.ProductRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"asin", "name", "brand", "category", "price", "bsr",
		"rating", "reviews", "estimated_sales", "referral_fee",
		"fulfillment_fee", "storage_fee", "warning",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		row := []string{
			r.ASIN,
			r.Name,
			r.Brand,
			r.Category,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.Itoa(r.Rank),
			strconv.FormatFloat(r.Rating, 'f', 1, 64),
			strconv.Itoa(r.Reviews),
			strconv.Itoa(r.EstimatedSales),
			strconv.FormatFloat(r.ReferralFee, 'f', 2, 64),
			strconv.FormatFloat(r.FulfillmentFee, 'f', 2, 64),
			strconv.FormatFloat(r.StorageFee, 'f', 2, 64),
			r.Warning,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
