// Package main is the entry point for the restarea CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwrest/restarea/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "restarea",
		Short:         "Korea Expressway rest-area data tool",
		Long:          `restarea fetches rest-area listings from the Korea Expressway Corporation open-data API, publishes a static JSON dataset, and serves it over a read-only HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(fetchCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(scheduleCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
