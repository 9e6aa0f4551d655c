package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/viraladmedia/amzpulse/internal/config"
	"github.com/viraladmedia/amzpulse/internal/store"
	"github.com/viraladmedia/amzpulse/pkg/logger"
	"github.com/viraladmedia/amzpulse/pkg/normalize"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into the database",
	Long: "Upserts the deterministic demo products into the store so a fresh\n" +
		"install has a browsable catalog before any live lookups.",
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	products := normalize.SeedProducts()
	for _, p := range products {
		if err := st.UpsertProduct(ctx, p); err != nil {
			return fmt.Errorf("seeding %s: %w", p.ASIN, err)
		}
	}

	log.Info("catalog seeded", "products", len(products))
	return nil
}
