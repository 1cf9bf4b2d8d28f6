// Package main provides the entry point for the company enricher CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/company-enricher/internal/config"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "enrich_agent",
	Short: "Company intelligence enricher",
	Long: "enrich_agent scrapes a company's website and asks a language model for a structured " +
		"intelligence report: summary, offerings, keywords and investment signals.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := config.InitLogger(loaded.Log); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
