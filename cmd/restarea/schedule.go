package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hwrest/restarea"
	"github.com/hwrest/restarea/internal/config"
	"github.com/hwrest/restarea/internal/log"
)

func scheduleCmd() *cobra.Command {
	var (
		envFile string
		spec    string
		runNow  bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the fetch pipeline on a cron schedule",
		Long: `Run the fetch pipeline repeatedly on a cron schedule until interrupted.
Overlapping runs are skipped.

Environment variables:
  SCHEDULE_CRON                Cron expression, e.g. "0 4 * * *" or "@every 6h"
  EX_API_KEY                   data.ex.co.kr API key (required)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(envFile, spec, runNow)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&spec, "cron", "", "Cron expression (overrides SCHEDULE_CRON)")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Run once immediately before waiting for the schedule")

	return cmd
}

func runSchedule(envFile, spec string, runNow bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if spec != "" {
		cfg = cfg.Apply(config.WithSchedule(spec))
	}
	if cfg.Schedule() == "" {
		return fmt.Errorf("%w: SCHEDULE_CRON or --cron is required", config.ErrInvalidConfig)
	}
	if err := cfg.ValidateFetch(); err != nil {
		return err
	}

	logger := log.Configure(cfg).Slog()
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting scheduler", attrs...)

	client, err := restarea.New(clientOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	scheduler, err := client.Scheduler(cfg.Schedule())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runNow {
		if err := scheduler.RunNow(ctx); err != nil {
			logger.Error("initial run failed", slog.String("error", err.Error()))
		}
	}

	scheduler.Start(ctx)
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
