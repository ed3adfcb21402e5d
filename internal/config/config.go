// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultDataDir        = "data"
	DefaultLogLevel       = "INFO"
	DefaultBaseURL        = "https://data.ex.co.kr/openapi"
	DefaultPageSize       = 99
	MaxPageSize           = 99
	DefaultPageDelay      = 500 * time.Millisecond
	MinPageDelay          = 500 * time.Millisecond
	DefaultFetchTimeout   = 30 * time.Second
	DefaultPopularLimit   = 12
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 40
)

// ErrInvalidConfig indicates a configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// FetchConfig configures access to the upstream open-data API.
type FetchConfig struct {
	apiKey    string
	baseURL   string
	pageSize  int
	pageDelay time.Duration
	timeout   time.Duration
}

// NewFetchConfig creates a FetchConfig with defaults.
func NewFetchConfig() FetchConfig {
	return FetchConfig{
		baseURL:   DefaultBaseURL,
		pageSize:  DefaultPageSize,
		pageDelay: DefaultPageDelay,
		timeout:   DefaultFetchTimeout,
	}
}

// APIKey returns the upstream API key.
func (f FetchConfig) APIKey() string { return f.apiKey }

// BaseURL returns the upstream base URL.
func (f FetchConfig) BaseURL() string { return f.baseURL }

// PageSize returns the rows requested per page.
func (f FetchConfig) PageSize() int { return f.pageSize }

// PageDelay returns the pause between pages.
func (f FetchConfig) PageDelay() time.Duration { return f.pageDelay }

// Timeout returns the per-request timeout.
func (f FetchConfig) Timeout() time.Duration { return f.timeout }

// WithAPIKey returns a copy with the API key set.
func (f FetchConfig) WithAPIKey(key string) FetchConfig {
	f.apiKey = key
	return f
}

// WithBaseURL returns a copy with the base URL set.
func (f FetchConfig) WithBaseURL(url string) FetchConfig {
	f.baseURL = url
	return f
}

// WithPageSize returns a copy with the page size set.
func (f FetchConfig) WithPageSize(n int) FetchConfig {
	f.pageSize = n
	return f
}

// WithPageDelay returns a copy with the page delay set.
func (f FetchConfig) WithPageDelay(d time.Duration) FetchConfig {
	f.pageDelay = d
	return f
}

// WithTimeout returns a copy with the request timeout set.
func (f FetchConfig) WithTimeout(d time.Duration) FetchConfig {
	f.timeout = d
	return f
}

// StorageConfig selects where artifacts are stored. With no bucket the
// local data directory is used.
type StorageConfig struct {
	bucket          string
	prefix          string
	region          string
	endpoint        string
	accessKeyID     string
	secretAccessKey string
}

// Bucket returns the S3 bucket name.
func (s StorageConfig) Bucket() string { return s.bucket }

// Prefix returns the object key prefix.
func (s StorageConfig) Prefix() string { return s.prefix }

// Region returns the S3 region.
func (s StorageConfig) Region() string { return s.region }

// Endpoint returns the custom S3 endpoint.
func (s StorageConfig) Endpoint() string { return s.endpoint }

// AccessKeyID returns the S3 access key ID.
func (s StorageConfig) AccessKeyID() string { return s.accessKeyID }

// SecretAccessKey returns the S3 secret key.
func (s StorageConfig) SecretAccessKey() string { return s.secretAccessKey }

// IsS3 returns true when artifacts go to object storage.
func (s StorageConfig) IsS3() bool { return s.bucket != "" }

// StorageOption is a functional option for StorageConfig.
type StorageOption func(*StorageConfig)

// WithBucket sets the bucket and key prefix.
func WithBucket(bucket, prefix string) StorageOption {
	return func(s *StorageConfig) {
		s.bucket = bucket
		s.prefix = prefix
	}
}

// WithRegion sets the region.
func WithRegion(region string) StorageOption {
	return func(s *StorageConfig) { s.region = region }
}

// WithEndpoint sets a custom S3-compatible endpoint.
func WithEndpoint(endpoint string) StorageOption {
	return func(s *StorageConfig) { s.endpoint = endpoint }
}

// WithCredentials sets static credentials.
func WithCredentials(accessKeyID, secretAccessKey string) StorageOption {
	return func(s *StorageConfig) {
		s.accessKeyID = accessKeyID
		s.secretAccessKey = secretAccessKey
	}
}

// NewStorageConfig creates a StorageConfig.
func NewStorageConfig(opts ...StorageOption) StorageConfig {
	var s StorageConfig
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// RateLimitConfig configures the per-client API rate limit.
type RateLimitConfig struct {
	rps   float64
	burst int
}

// NewRateLimitConfig creates a RateLimitConfig.
func NewRateLimitConfig(rps float64, burst int) RateLimitConfig {
	return RateLimitConfig{rps: rps, burst: burst}
}

// RPS returns the sustained requests per second.
func (r RateLimitConfig) RPS() float64 { return r.rps }

// Burst returns the burst size.
func (r RateLimitConfig) Burst() int { return r.burst }

// Enabled returns true when limiting is on.
func (r RateLimitConfig) Enabled() bool { return r.rps > 0 }

// AppConfig holds the main application configuration.
type AppConfig struct {
	host         string
	port         int
	dataDir      string
	logLevel     string
	logFormat    LogFormat
	fetch        FetchConfig
	storage      StorageConfig
	schedule     string
	popularLimit int
	rateLimit    RateLimitConfig
	corsOrigins  []string
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:         DefaultHost,
		port:         DefaultPort,
		dataDir:      DefaultDataDir,
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		fetch:        NewFetchConfig(),
		popularLimit: DefaultPopularLimit,
		rateLimit:    NewRateLimitConfig(DefaultRateLimitRPS, DefaultRateLimitBurst),
		corsOrigins:  []string{"*"},
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the local artifact directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Fetch returns the upstream API config.
func (c AppConfig) Fetch() FetchConfig { return c.fetch }

// Storage returns the artifact storage config.
func (c AppConfig) Storage() StorageConfig { return c.storage }

// Schedule returns the cron expression for scheduled runs.
func (c AppConfig) Schedule() string { return c.schedule }

// PopularLimit returns the size of the popular listing.
func (c AppConfig) PopularLimit() int { return c.popularLimit }

// RateLimit returns the API rate limit config.
func (c AppConfig) RateLimit() RateLimitConfig { return c.rateLimit }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	out := make([]string, len(c.corsOrigins))
	copy(out, c.corsOrigins)
	return out
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// Validate checks settings shared by every command.
func (c AppConfig) Validate() error {
	var errs []error
	if n := c.fetch.pageSize; n < 1 || n > MaxPageSize {
		errs = append(errs, fmt.Errorf("page size %d outside 1..%d", n, MaxPageSize))
	}
	if c.fetch.pageDelay < MinPageDelay {
		errs = append(errs, fmt.Errorf("page delay %s below minimum %s", c.fetch.pageDelay, MinPageDelay))
	}
	if c.fetch.timeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}
	if (c.storage.accessKeyID == "") != (c.storage.secretAccessKey == "") {
		errs = append(errs, errors.New("S3 access key ID and secret must be set together"))
	}
	if c.popularLimit < 1 {
		errs = append(errs, errors.New("popular limit must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ValidateFetch checks the settings required to run the pipeline.
func (c AppConfig) ValidateFetch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.fetch.apiKey == "" {
		return fmt.Errorf("%w: EX_API_KEY is required", ErrInvalidConfig)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.dataDir = dir }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithFetchConfig sets the upstream API config.
func WithFetchConfig(f FetchConfig) AppConfigOption {
	return func(c *AppConfig) { c.fetch = f }
}

// WithAPIKey sets the upstream API key.
func WithAPIKey(key string) AppConfigOption {
	return func(c *AppConfig) { c.fetch = c.fetch.WithAPIKey(key) }
}

// WithStorageConfig sets the artifact storage config.
func WithStorageConfig(s StorageConfig) AppConfigOption {
	return func(c *AppConfig) { c.storage = s }
}

// WithSchedule sets the cron expression.
func WithSchedule(expr string) AppConfigOption {
	return func(c *AppConfig) { c.schedule = expr }
}

// WithPopularLimit sets the popular listing size.
func WithPopularLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.popularLimit = n
		}
	}
}

// WithRateLimit sets the API rate limit.
func WithRateLimit(r RateLimitConfig) AppConfigOption {
	return func(c *AppConfig) { c.rateLimit = r }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Secrets are reported only as set or unset.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("base_url", c.fetch.baseURL),
		slog.Bool("api_key_set", c.fetch.apiKey != ""),
		slog.Int("page_size", c.fetch.pageSize),
		slog.Duration("page_delay", c.fetch.pageDelay),
		slog.Duration("timeout", c.fetch.timeout),
		slog.String("s3_bucket", c.maskedBucket()),
		slog.String("schedule", c.schedule),
		slog.Int("popular_limit", c.popularLimit),
		slog.Float64("rate_limit_rps", c.rateLimit.rps),
	}
}

func (c AppConfig) maskedBucket() string {
	if !c.storage.IsS3() {
		return "(local)"
	}
	if c.storage.prefix == "" {
		return c.storage.bucket
	}
	return c.storage.bucket + "/" + c.storage.prefix
}

// ParseList parses a comma-separated list, dropping blanks.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
