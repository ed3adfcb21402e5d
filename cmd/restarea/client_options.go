package main

import (
	"log/slog"

	"github.com/hwrest/restarea"
	"github.com/hwrest/restarea/infrastructure/artifact"
	"github.com/hwrest/restarea/internal/config"
)

// clientOptions returns the restarea.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []restarea.Option {
	opts := []restarea.Option{
		restarea.WithLogger(logger),
		restarea.WithFetchConfig(cfg.Fetch()),
		restarea.WithPopularLimit(cfg.PopularLimit()),
	}
	return append(opts, storageOptions(cfg)...)
}

// storageOptions picks S3 when a bucket is configured and the data
// directory otherwise.
func storageOptions(cfg config.AppConfig) []restarea.Option {
	s := cfg.Storage()
	if !s.IsS3() {
		return []restarea.Option{restarea.WithDataDir(cfg.DataDir())}
	}
	return []restarea.Option{restarea.WithS3(artifact.S3Config{
		Bucket:          s.Bucket(),
		Prefix:          s.Prefix(),
		Region:          s.Region(),
		Endpoint:        s.Endpoint(),
		AccessKeyID:     s.AccessKeyID(),
		SecretAccessKey: s.SecretAccessKey(),
	})}
}
