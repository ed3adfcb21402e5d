package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hwrest/restarea"
	"github.com/hwrest/restarea/internal/config"
	"github.com/hwrest/restarea/internal/log"
)

func fetchCmd() *cobra.Command {
	var (
		envFile string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the upstream listings and publish the dataset once",
		Long: `Fetch all four upstream listings, assemble the dataset, and write the
artifacts. Exits non-zero when the location listing comes back empty.

Environment variables:
  EX_API_KEY                   data.ex.co.kr API key (required)
  EX_BASE_URL                  Upstream base URL
  EX_PAGE_SIZE                 Rows per page, 1..99 (default: 99)
  EX_PAGE_DELAY                Seconds between pages, min 0.5 (default: 0.5)
  EX_TIMEOUT                   Request timeout in seconds (default: 30)
  DATA_DIR                     Output directory (default: data)
  S3_BUCKET, S3_PREFIX         Publish to S3 instead of DATA_DIR
  S3_REGION, S3_ENDPOINT       S3 region and optional custom endpoint
  S3_ACCESS_KEY_ID             Static S3 credentials
  S3_SECRET_ACCESS_KEY
  POPULAR_LIMIT                Size of the popular listing (default: 12)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd.Context(), envFile, dataDir)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Output directory (default: data)")

	return cmd
}

func runFetch(ctx context.Context, envFile, dataDir string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg = cfg.Apply(config.WithDataDir(dataDir))
	}
	if err := cfg.ValidateFetch(); err != nil {
		return err
	}

	logger := log.Configure(cfg).Slog()
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting fetch", attrs...)

	client, err := restarea.New(clientOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := client.Fetch(ctx)
	if err != nil {
		return err
	}

	logger.Info("dataset published",
		slog.Int("rest_areas", ds.Metadata.RestAreaCount),
		slog.Int("highways", ds.Metadata.HighwayCount),
		slog.Int("foods", ds.Metadata.TotalFoods),
	)
	return nil
}
