// Package restarea collects Korea Expressway rest-area data and serves it.
//
// A Client fetches the four upstream listings from data.ex.co.kr, joins
// them into one canonical record per rest area, publishes the artifact
// set, and answers read queries over the last published dataset.
//
// Basic usage:
//
//	client, err := restarea.New(
//	    restarea.WithAPIKey(os.Getenv("EX_API_KEY")),
//	    restarea.WithDataDir("data"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ds, err := client.Fetch(ctx)
//
//	catalog, err := client.Catalog(ctx)
//	for _, r := range catalog.Popular(12) {
//	    fmt.Println(r.Name, r.BestFood)
//	}
package restarea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/region"
	"github.com/hwrest/restarea/infrastructure/artifact"
	"github.com/hwrest/restarea/infrastructure/exapi"
)

var (
	// ErrNoAPIKey indicates a fetch was requested without an API key.
	ErrNoAPIKey = errors.New("restarea: EX_API_KEY is not configured")

	// ErrClientClosed indicates the client was already closed.
	ErrClientClosed = errors.New("restarea: client closed")
)

// Client is the main entry point for the restarea library.
//
// Access the loaded dataset via Catalogs:
//
//	client.Catalogs.Catalog().BySlug("deogpyeong")
type Client struct {
	// Catalogs holds the catalog of the last published dataset.
	Catalogs *service.CatalogHolder

	pipeline *service.Pipeline
	store    artifact.Store
	logger   *slog.Logger
	closed   atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	regions := cfg.regions
	if regions == nil {
		t, err := region.NewTable()
		if err != nil {
			return nil, fmt.Errorf("load region table: %w", err)
		}
		regions = t
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	client := &Client{
		Catalogs: service.NewCatalogHolder(artifact.NewReader(store), regions),
		store:    store,
		logger:   logger,
	}

	fetcher := cfg.fetcher
	if fetcher == nil && cfg.fetch.APIKey() != "" {
		fetcher = exapi.NewClient(cfg.fetch.APIKey(),
			exapi.WithBaseURL(cfg.fetch.BaseURL()),
			exapi.WithPageSize(cfg.fetch.PageSize()),
			exapi.WithPageDelay(cfg.fetch.PageDelay()),
			exapi.WithTimeout(cfg.fetch.Timeout()),
			exapi.WithLogger(logger),
		)
	}
	if fetcher != nil {
		assembler := service.NewAssembler(
			service.WithClock(cfg.clock),
			service.WithPopularLimit(cfg.popularLimit),
		)
		client.pipeline = service.NewPipeline(fetcher, assembler, artifact.NewWriter(store, logger), logger)
	}

	return client, nil
}

func buildStore(cfg *clientConfig) (artifact.Store, error) {
	switch {
	case cfg.store != nil:
		return cfg.store, nil
	case cfg.s3 != nil:
		s, err := artifact.NewS3Store(*cfg.s3)
		if err != nil {
			return nil, fmt.Errorf("create s3 store: %w", err)
		}
		return s, nil
	default:
		return artifact.NewFileStore(cfg.dataDir), nil
	}
}

// Fetch runs one pipeline pass and, on success, swaps the new dataset into
// Catalogs.
func (c *Client) Fetch(ctx context.Context) (dataset.Dataset, error) {
	if c.closed.Load() {
		return dataset.Dataset{}, ErrClientClosed
	}
	if c.pipeline == nil {
		return dataset.Dataset{}, ErrNoAPIKey
	}

	ds, err := c.pipeline.Run(ctx)
	if err != nil {
		return dataset.Dataset{}, err
	}
	c.Catalogs.Set(service.NewCatalog(ds, c.regions()))
	return ds, nil
}

// Catalog returns the current catalog, loading the published dataset on
// first use.
func (c *Client) Catalog(ctx context.Context) (*service.Catalog, error) {
	if cat := c.Catalogs.Catalog(); cat != nil {
		return cat, nil
	}
	if err := c.Catalogs.Reload(ctx); err != nil {
		return nil, err
	}
	return c.Catalogs.Catalog(), nil
}

// Scheduler returns a scheduler that runs Fetch on the cron spec.
func (c *Client) Scheduler(spec string) (*service.Scheduler, error) {
	return service.NewScheduler(spec, service.RunnerFunc(func(ctx context.Context) error {
		_, err := c.Fetch(ctx)
		return err
	}), c.logger)
}

// CanFetch reports whether the client has an upstream source configured.
func (c *Client) CanFetch() bool {
	return c.pipeline != nil
}

// Store returns the artifact store.
func (c *Client) Store() artifact.Store {
	return c.store
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close marks the client closed. Later calls to Fetch fail.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	c.logger.Info("restarea client closed")
	return nil
}

func (c *Client) regions() *region.Table {
	return c.Catalogs.Regions()
}
