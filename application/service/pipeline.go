package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/infrastructure/exapi"
	"github.com/hwrest/restarea/internal/log"
)

// Fetcher retrieves the four upstream listings. Implementations return
// whatever rows they gathered alongside any error.
type Fetcher interface {
	Locations(ctx context.Context) ([]exapi.RawLocation, error)
	BestFoods(ctx context.Context) ([]exapi.RawBestFood, error)
	Brands(ctx context.Context) ([]exapi.RawBrand, error)
	Conveniences(ctx context.Context) ([]exapi.RawConvenience, error)
}

// Publisher persists an assembled dataset.
type Publisher interface {
	Write(ctx context.Context, ds dataset.Dataset) error
}

// Pipeline runs one full fetch, assemble and write cycle.
type Pipeline struct {
	fetcher   Fetcher
	assembler *Assembler
	publisher Publisher
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(fetcher Fetcher, assembler *Assembler, publisher Publisher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:   fetcher,
		assembler: assembler,
		publisher: publisher,
		logger:    logger,
	}
}

// Run fetches every listing, assembles the dataset and writes it.
//
// Endpoints are fetched one after another. A failing endpoint is logged
// and contributes whatever it returned; only an empty location listing
// aborts the run.
func (p *Pipeline) Run(ctx context.Context) (dataset.Dataset, error) {
	runID := uuid.NewString()
	ctx = log.WithCorrelationID(ctx, runID)
	logger := p.logger.With(slog.String("correlation_id", runID))
	start := time.Now()

	logger.Info("dataset run started")

	var raw RawDataset
	raw.Locations = fetch(ctx, logger, exapi.EndpointLocations, p.fetcher.Locations)
	if len(raw.Locations) == 0 {
		logger.Error("no location records fetched")
		return dataset.Dataset{}, ErrNoLocations
	}
	raw.BestFoods = fetch(ctx, logger, exapi.EndpointBestFoods, p.fetcher.BestFoods)
	raw.Brands = fetch(ctx, logger, exapi.EndpointBrands, p.fetcher.Brands)
	raw.Conveniences = fetch(ctx, logger, exapi.EndpointConveniences, p.fetcher.Conveniences)

	ds := p.assembler.Assemble(raw)

	if err := p.publisher.Write(ctx, ds); err != nil {
		return ds, fmt.Errorf("write dataset: %w", err)
	}

	logger.Info("dataset run completed",
		slog.Int("rest_areas", ds.Metadata.RestAreaCount),
		slog.Int("highways", ds.Metadata.HighwayCount),
		slog.Int("foods", ds.Metadata.TotalFoods),
		slog.Int("brands", ds.Metadata.TotalBrands),
		slog.Int("facilities", ds.Metadata.TotalFacilities),
		slog.Duration("duration", time.Since(start)),
	)
	return ds, nil
}

func fetch[T any](ctx context.Context, logger *slog.Logger, endpoint string, fn func(context.Context) ([]T, error)) []T {
	rows, err := fn(ctx)
	if err != nil {
		logger.Warn("listing fetch ended early",
			slog.String("endpoint", endpoint),
			slog.Int("rows", len(rows)),
			slog.String("error", err.Error()),
		)
	} else {
		logger.Info("listing fetched",
			slog.String("endpoint", endpoint),
			slog.Int("rows", len(rows)),
		)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows
}
