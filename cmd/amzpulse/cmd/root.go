// Package cmd implements the CLI commands for the amzpulse server.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "amzpulse",
	Short: "Product research backend for marketplace resellers",
	Long: "An API-first service that serves a reseller product catalog, runs\n" +
		"fee/ROI calculations, assesses sell potential via LLM, and keeps\n" +
		"watched products fresh on a schedule.",
}

func init() {
	// .env is optional; real deployments set variables directly.
	cobra.OnInitialize(func() { _ = godotenv.Load() })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
