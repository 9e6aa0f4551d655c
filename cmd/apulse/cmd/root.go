// Package cmd implements the apulse CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/viraladmedia/amzpulse/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "apulse",
		Short: "CLI client for AmzPulse",
		Long: "apulse is a command-line client for the AmzPulse API.\n" +
			"It lets you browse the catalog, look up products, run profit\n" +
			"calculations and AI assessments, and manage your watchlist\n" +
			"from the terminal.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.apulse.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("token", "", "session token (from apulse login)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(meCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(profitCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(watchlistCmd())
	rootCmd.AddCommand(usageCmd())
	rootCmd.AddCommand(categoriesCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".apulse")
	}

	viper.SetEnvPrefix("APULSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	opts := []apiclient.Option{}
	if token := viper.GetString("token"); token != "" {
		opts = append(opts, apiclient.WithToken(token))
	}
	return apiclient.New(viper.GetString("server"), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
