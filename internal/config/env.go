package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., EX_API_KEY, S3_BUCKET).
type EnvConfig struct {
	// Host is the API server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the API server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the local artifact directory.
	// Env: DATA_DIR (default: data)
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Ex configures the upstream open-data API.
	Ex ExEnv `envconfig:"EX"`

	// S3 configures optional object storage for artifacts.
	S3 S3Env `envconfig:"S3"`

	// ScheduleCron is the cron expression used by the schedule command.
	// Env: SCHEDULE_CRON
	ScheduleCron string `envconfig:"SCHEDULE_CRON"`

	// PopularLimit is the number of entries in the popular listing.
	// Env: POPULAR_LIMIT (default: 12)
	PopularLimit int `envconfig:"POPULAR_LIMIT" default:"12"`

	// RateLimit configures the API rate limiter.
	RateLimit RateLimitEnv `envconfig:"RATE_LIMIT"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
}

// ExEnv holds environment configuration for the upstream API.
type ExEnv struct {
	// APIKey authenticates against data.ex.co.kr.
	// Env: EX_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// BaseURL is the upstream base URL.
	// Env: EX_BASE_URL (default: https://data.ex.co.kr/openapi)
	BaseURL string `envconfig:"BASE_URL" default:"https://data.ex.co.kr/openapi"`

	// PageSize is the rows requested per page.
	// Env: EX_PAGE_SIZE (default: 99)
	PageSize int `envconfig:"PAGE_SIZE" default:"99"`

	// PageDelay is the pause between pages in seconds.
	// Env: EX_PAGE_DELAY (default: 0.5)
	PageDelay float64 `envconfig:"PAGE_DELAY" default:"0.5"`

	// Timeout is the per-request timeout in seconds.
	// Env: EX_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`
}

// S3Env holds environment configuration for object storage.
type S3Env struct {
	// Env: S3_BUCKET
	Bucket string `envconfig:"BUCKET"`

	// Env: S3_PREFIX
	Prefix string `envconfig:"PREFIX"`

	// Env: S3_REGION (default: ap-northeast-2)
	Region string `envconfig:"REGION" default:"ap-northeast-2"`

	// Endpoint selects an S3-compatible service.
	// Env: S3_ENDPOINT
	Endpoint string `envconfig:"ENDPOINT"`

	// Env: S3_ACCESS_KEY_ID
	AccessKeyID string `envconfig:"ACCESS_KEY_ID"`

	// Env: S3_SECRET_ACCESS_KEY
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
}

// RateLimitEnv holds environment configuration for the API rate limiter.
type RateLimitEnv struct {
	// RPS is the sustained requests per second per client; 0 disables.
	// Env: RATE_LIMIT_RPS (default: 20)
	RPS float64 `envconfig:"RPS" default:"20"`

	// Burst is the token bucket size.
	// Env: RATE_LIMIT_BURST (default: 40)
	Burst int `envconfig:"BURST" default:"40"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "RESTAREA" would require RESTAREA_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	cfg = applyOption(cfg, WithFetchConfig(e.Ex.ToFetchConfig()))

	if e.S3.IsConfigured() {
		cfg = applyOption(cfg, WithStorageConfig(e.S3.ToStorageConfig()))
	}

	cfg = applyOption(cfg, WithSchedule(strings.TrimSpace(e.ScheduleCron)))
	cfg = applyOption(cfg, WithPopularLimit(e.PopularLimit))
	cfg = applyOption(cfg, WithRateLimit(NewRateLimitConfig(e.RateLimit.RPS, e.RateLimit.Burst)))

	if e.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToFetchConfig converts ExEnv to FetchConfig.
func (x ExEnv) ToFetchConfig() FetchConfig {
	f := NewFetchConfig().
		WithAPIKey(strings.TrimSpace(x.APIKey)).
		WithPageSize(x.PageSize).
		WithPageDelay(seconds(x.PageDelay)).
		WithTimeout(seconds(x.Timeout))
	if x.BaseURL != "" {
		f = f.WithBaseURL(x.BaseURL)
	}
	return f
}

// IsConfigured returns true if a bucket is set.
func (s S3Env) IsConfigured() bool {
	return s.Bucket != ""
}

// ToStorageConfig converts S3Env to StorageConfig.
func (s S3Env) ToStorageConfig() StorageConfig {
	return NewStorageConfig(
		WithBucket(s.Bucket, strings.Trim(s.Prefix, "/")),
		WithRegion(s.Region),
		WithEndpoint(s.Endpoint),
		WithCredentials(s.AccessKeyID, s.SecretAccessKey),
	)
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
