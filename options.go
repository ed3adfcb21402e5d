package restarea

import (
	"log/slog"
	"time"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/region"
	"github.com/hwrest/restarea/infrastructure/artifact"
	"github.com/hwrest/restarea/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dataDir      string
	store        artifact.Store
	s3           *artifact.S3Config
	fetch        config.FetchConfig
	fetcher      service.Fetcher
	logger       *slog.Logger
	popularLimit int
	clock        func() time.Time
	regions      *region.Table
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:      config.DefaultDataDir,
		fetch:        config.NewFetchConfig(),
		popularLimit: config.DefaultPopularLimit,
		clock:        time.Now,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithDataDir writes and reads artifacts under dir on the local filesystem.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithStore uses store for artifacts instead of the local data directory.
func WithStore(store artifact.Store) Option {
	return func(c *clientConfig) {
		c.store = store
	}
}

// WithS3 stores artifacts in an S3-compatible bucket.
func WithS3(cfg artifact.S3Config) Option {
	return func(c *clientConfig) {
		c.s3 = &cfg
	}
}

// WithFetchConfig configures the upstream client.
func WithFetchConfig(f config.FetchConfig) Option {
	return func(c *clientConfig) {
		c.fetch = f
	}
}

// WithAPIKey sets the upstream API key.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.fetch = c.fetch.WithAPIKey(key)
	}
}

// WithFetcher replaces the upstream client. The API key is then not
// required.
func WithFetcher(f service.Fetcher) Option {
	return func(c *clientConfig) {
		c.fetcher = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithPopularLimit sets the size of the popular listing.
func WithPopularLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.popularLimit = n
		}
	}
}

// WithClock sets the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithRegionTable replaces the built-in region table.
func WithRegionTable(t *region.Table) Option {
	return func(c *clientConfig) {
		c.regions = t
	}
}
