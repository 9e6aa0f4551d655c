package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		Long: "Browse and filter the product catalog. Listing runs the server-side\n" +
			"filter engine; get looks up a single ASIN, fetching it from the\n" +
			"marketplace source if it is not already in the catalog.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		view        string
		category    string
		subCategory string
		minPrice    float64
		maxPrice    float64
		search      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Example: `  apulse products list
  apulse products list --category Electronics --min-price 50 --max-price 200
  apulse products list --view watchlist --token $APULSE_TOKEN
  apulse products list --search headphones --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			criteria := domain.FilterCriteria{
				Category:    category,
				SubCategory: subCategory,
				MinPrice:    minPrice,
				MaxPrice:    maxPrice,
				Search:      search,
			}
			products, err := c.ListProducts(context.Background(), domain.View(view), criteria)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(products)
			}
			if len(products) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			return printProductsTable(products)
		},
	}

	cmd.Flags().StringVar(&view, "view", "research", "catalog view (dashboard, research, watchlist)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&subCategory, "sub-category", "", "filter by sub-category")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&search, "search", "", "search name, ASIN, brand, or category")
	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <asin>",
		Short: "Show product details",
		Example: `  apulse products get B0B3C7Q2MJ
  apulse products get B0B3C7Q2MJ --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			rec, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rec)
			}
			return printProductDetail(rec)
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List marketplace categories",
		Example: `  apulse categories
  apulse categories --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			categories, tree, err := c.Categories(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(map[string]any{"categories": categories, "tree": tree})
			}
			for _, cat := range categories {
				fmt.Println(cat)
				for _, sub := range tree[cat] {
					fmt.Printf("  %s\n", sub)
				}
			}
			return nil
		},
	}
}
