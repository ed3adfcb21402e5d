package service

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/hwrest/restarea/domain/region"
)

// CatalogHolder publishes the current Catalog to concurrent readers and
// allows it to be replaced after a new dataset is written.
type CatalogHolder struct {
	current atomic.Pointer[Catalog]
	group   singleflight.Group
	loader  Loader
	regions *region.Table
}

// NewCatalogHolder creates a holder that reloads through loader.
func NewCatalogHolder(loader Loader, regions *region.Table) *CatalogHolder {
	return &CatalogHolder{loader: loader, regions: regions}
}

// Catalog returns the current catalog, or nil before the first load.
func (h *CatalogHolder) Catalog() *Catalog {
	return h.current.Load()
}

// Reload loads the dataset again and swaps it in. Concurrent calls share
// one load. On failure the previous catalog stays in place.
func (h *CatalogHolder) Reload(ctx context.Context) error {
	_, err, _ := h.group.Do("reload", func() (any, error) {
		c, err := LoadCatalog(ctx, h.loader, h.regions)
		if err != nil {
			return nil, err
		}
		h.current.Store(c)
		return c, nil
	})
	return err
}

// Regions returns the region table catalogs are built with.
func (h *CatalogHolder) Regions() *region.Table {
	return h.regions
}

// Set installs c directly.
func (h *CatalogHolder) Set(c *Catalog) {
	h.current.Store(c)
}
