// Package exapi pages through the Korea Expressway Corporation open-data
// listings.
package exapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Defaults matching the upstream service limits.
const (
	DefaultBaseURL   = "https://data.ex.co.kr/openapi"
	DefaultPageSize  = 99
	DefaultPageDelay = 500 * time.Millisecond
	DefaultTimeout   = 30 * time.Second

	// MinPageDelay is the shortest pause the upstream tolerates between pages.
	MinPageDelay = 500 * time.Millisecond
)

var (
	// ErrMalformedResponse indicates a page body that is not a JSON object,
	// usually an HTML error page.
	ErrMalformedResponse = errors.New("exapi: malformed response")

	// ErrUpstreamStatus indicates an envelope with a non-success code.
	ErrUpstreamStatus = errors.New("exapi: upstream status")
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Client fetches listing pages. It never retries.
type Client struct {
	http      *resty.Client
	apiKey    string
	pageSize  int
	pageDelay time.Duration
	timeout   time.Duration
	sleep     Sleeper
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.http.SetBaseURL(url) }
}

// WithPageSize sets the rows requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithPageDelay sets the pause between consecutive pages. Values below
// MinPageDelay are raised to it.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.pageDelay = max(d, MinPageDelay) }
}

// WithTimeout bounds each HTTP call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSleeper replaces the function used to wait between pages.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	http := resty.New()
	http.SetBaseURL(DefaultBaseURL)
	http.SetRetryCount(0)
	http.SetHeader("Accept", "application/json")

	c := &Client{
		http:      http,
		apiKey:    apiKey,
		pageSize:  DefaultPageSize,
		pageDelay: DefaultPageDelay,
		timeout:   DefaultTimeout,
		sleep:     sleepContext,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetTimeout(c.timeout)
	return c
}

// PageSize returns the rows requested per page.
func (c *Client) PageSize() int { return c.pageSize }

// PageDelay returns the pause between consecutive pages.
func (c *Client) PageDelay() time.Duration { return c.pageDelay }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Locations fetches the full location listing.
func (c *Client) Locations(ctx context.Context) ([]RawLocation, error) {
	return FetchAll[RawLocation](ctx, c, EndpointLocations, nil)
}

// BestFoods fetches the full menu listing.
func (c *Client) BestFoods(ctx context.Context) ([]RawBestFood, error) {
	return FetchAll[RawBestFood](ctx, c, EndpointBestFoods, nil)
}

// Brands fetches the full brand listing.
func (c *Client) Brands(ctx context.Context) ([]RawBrand, error) {
	return FetchAll[RawBrand](ctx, c, EndpointBrands, nil)
}

// Conveniences fetches the full convenience facility listing.
func (c *Client) Conveniences(ctx context.Context) ([]RawConvenience, error) {
	return FetchAll[RawConvenience](ctx, c, EndpointConveniences, nil)
}

func (c *Client) page(ctx context.Context, endpoint string, params map[string]string, pageNo int) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParams(map[string]string{
			"key":       c.apiKey,
			"type":      "json",
			"numOfRows": strconv.Itoa(c.pageSize),
			"pageNo":    strconv.Itoa(pageNo),
		})

	res, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("get %s page %d: %w", endpoint, pageNo, err)
	}
	return res.Body(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
