package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/restarea"
)

// Reader loads a published dataset back from a Store.
type Reader struct {
	store        Store
	popularLimit int
}

// NewReader creates a Reader backed by store.
func NewReader(store Store) *Reader {
	return &Reader{store: store, popularLimit: dataset.DefaultPopularLimit}
}

// Load reads every artifact. The popular and search listings are rebuilt
// from the rest areas when absent.
func (r *Reader) Load(ctx context.Context) (dataset.Dataset, error) {
	var ds dataset.Dataset
	if err := r.decode(ctx, dataset.RestAreasFile, &ds.RestAreas); err != nil {
		return dataset.Dataset{}, err
	}
	if err := r.decode(ctx, dataset.HighwaysFile, &ds.Highways); err != nil {
		return dataset.Dataset{}, err
	}
	if err := r.decode(ctx, dataset.MetadataFile, &ds.Metadata); err != nil {
		return dataset.Dataset{}, err
	}

	err := r.decode(ctx, dataset.PopularFile, &ds.Popular)
	if errors.Is(err, ErrNotExist) {
		popular := dataset.PopularOf(ds.RestAreas, r.popularLimit)
		ds.Popular = make([]restarea.Popular, len(popular))
		for i, p := range popular {
			ds.Popular[i] = p.ToPopular()
		}
	} else if err != nil {
		return dataset.Dataset{}, err
	}

	err = r.decode(ctx, dataset.SearchFile, &ds.Search)
	if errors.Is(err, ErrNotExist) {
		ds.Search = make([]restarea.Searchable, len(ds.RestAreas))
		for i, a := range ds.RestAreas {
			ds.Search[i] = a.ToSearchable()
		}
	} else if err != nil {
		return dataset.Dataset{}, err
	}
	return ds, nil
}

func (r *Reader) decode(ctx context.Context, name string, v any) error {
	data, err := r.store.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
