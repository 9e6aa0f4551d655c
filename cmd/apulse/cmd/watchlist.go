package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func watchlistCmd() *cobra.Command {
	watchlistRoot := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage your saved products",
		Long: "Manage the watchlist of saved products. Watched products are\n" +
			"refreshed on the background schedule and appear in the watchlist\n" +
			"catalog view.",
	}

	watchlistRoot.AddCommand(
		watchlistListCmd(),
		watchlistAddCmd(),
		watchlistRemoveCmd(),
	)

	return watchlistRoot
}

func watchlistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved products",
		Example: `  apulse watchlist list --token $APULSE_TOKEN
  apulse watchlist list --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			w, err := c.ListWatchlist(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(w)
			}
			if len(w.Items) == 0 {
				fmt.Println("Watchlist is empty.")
				return nil
			}
			return printWatchlistTable(w)
		},
	}
}

func watchlistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <asin>",
		Short:   "Save a product to the watchlist",
		Example: `  apulse watchlist add B0B3C7Q2MJ --token $APULSE_TOKEN`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			item, err := c.AddWatch(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(item)
			}
			fmt.Printf("Added %s to the watchlist.\n", args[0])
			return nil
		},
	}
}

func watchlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <asin>",
		Short:   "Remove a product from the watchlist",
		Example: `  apulse watchlist remove B0B3C7Q2MJ --token $APULSE_TOKEN`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.RemoveWatch(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed %s from the watchlist.\n", args[0])
			return nil
		},
	}
}
