package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwrest/restarea"
	"github.com/hwrest/restarea/internal/log"
	"github.com/hwrest/restarea/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants search rest areas, highways and regions from the
published dataset. Configuration is loaded from environment variables and
.env file; the dataset is read from DATA_DIR or S3.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStdio(cmd.Context(), envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// stdout carries the protocol
	logger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel()).Slog()
	logger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	client, err := restarea.New(clientOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close client", slog.Any("error", err))
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := client.Catalog(ctx); err != nil {
		return fmt.Errorf("MCP server needs a published dataset: %w", err)
	}

	return mcp.NewServer(client.Catalogs, version, logger).ServeStdio()
}
