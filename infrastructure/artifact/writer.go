package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hwrest/restarea/domain/dataset"
)

// Writer serializes a dataset into its artifacts.
type Writer struct {
	store  Store
	logger *slog.Logger
}

// NewWriter creates a Writer backed by store.
func NewWriter(store Store, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{store: store, logger: logger}
}

// Write replaces every artifact of the dataset. Artifacts are written one
// at a time; a failure leaves earlier ones in place.
func (w *Writer) Write(ctx context.Context, ds dataset.Dataset) error {
	artifacts := []struct {
		name  string
		value any
	}{
		{dataset.RestAreasFile, orEmpty(ds.RestAreas)},
		{dataset.HighwaysFile, orEmpty(ds.Highways)},
		{dataset.MetadataFile, ds.Metadata},
		{dataset.PopularFile, orEmpty(ds.Popular)},
		{dataset.SearchFile, orEmpty(ds.Search)},
	}
	for _, a := range artifacts {
		data, err := Encode(a.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", a.name, err)
		}
		if err := w.store.Put(ctx, a.name, data); err != nil {
			return err
		}
		w.logger.Info("artifact written", slog.String("name", a.name), slog.Int("bytes", len(data)))
	}
	return nil
}

// Encode renders v as two-space indented JSON with a trailing newline.
// HTML characters are left unescaped.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
