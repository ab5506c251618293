package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "deals-cli",
	Short: "Weekend deals aggregator",
	Long:  "Queries flight, event, and venue APIs for the configured SoCal routes and cities, normalizes the results, and writes the JSON documents the deals site serves.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Credentials usually live in a local .env; absence is fine.
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(os.Stderr, "no .env file found, using system environment")
		}

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
