package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hwrest/restarea"
	"github.com/hwrest/restarea/infrastructure/api"
	"github.com/hwrest/restarea/internal/config"
	"github.com/hwrest/restarea/internal/log"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only HTTP API server",
		Long: `Start the read-only HTTP API over the published dataset.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Dataset directory (default: data)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  CORS_ORIGINS                 Comma-separated allowed origins (default: *)
  RATE_LIMIT_RPS               Requests per second per client, 0 disables (default: 20)
  RATE_LIMIT_BURST             Burst size per client (default: 40)
  SCHEDULE_CRON                Refresh the dataset on this cron schedule (needs EX_API_KEY)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.Configure(cfg).Slog()
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting restarea", attrs...)

	client, err := restarea.New(clientOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := client.Catalog(ctx); err != nil {
		logger.Warn("no published dataset yet, serving 503 until one is loaded", slog.String("error", err.Error()))
	}

	if spec := cfg.Schedule(); spec != "" {
		if !client.CanFetch() {
			logger.Warn("SCHEDULE_CRON set without EX_API_KEY, refresh disabled")
		} else {
			scheduler, err := client.Scheduler(spec)
			if err != nil {
				return err
			}
			scheduler.Start(ctx)
			defer scheduler.Stop()
		}
	}

	opts := []api.ServerOption{
		api.WithContext(ctx),
		api.WithCORSOrigins(cfg.CORSOrigins()),
	}
	if rl := cfg.RateLimit(); rl.Enabled() {
		opts = append(opts, api.WithRateLimit(rl.RPS(), rl.Burst()))
	}
	server := api.NewServer(cfg.Addr(), logger, opts...)
	server.MountRoutes(client.Catalogs)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}()

	return server.Start()
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
