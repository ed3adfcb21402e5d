package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/highway"
	"github.com/hwrest/restarea/domain/region"
	"github.com/hwrest/restarea/domain/restarea"
)

// Loader reads a previously published dataset.
type Loader interface {
	Load(ctx context.Context) (dataset.Dataset, error)
}

// HighwayWithRestAreas pairs a highway with its full rest-area records.
type HighwayWithRestAreas struct {
	Highway   highway.Highway     `json:"highway"`
	RestAreas []restarea.RestArea `json:"restAreas"`
}

// HighwayGroup collects the highways of one classification.
type HighwayGroup struct {
	Type     highway.Type           `json:"type"`
	Highways []HighwayWithRestAreas `json:"highways"`
}

// RegionCount is a region together with its number of rest areas.
type RegionCount struct {
	region.Region
	Count int `json:"count"`
}

// Catalog answers read queries over one loaded dataset. It is immutable
// and safe for concurrent use.
type Catalog struct {
	ds      dataset.Dataset
	regions *region.Table
	bySlug  map[string]int
}

// NewCatalog indexes ds for lookups.
func NewCatalog(ds dataset.Dataset, regions *region.Table) *Catalog {
	c := &Catalog{
		ds:      ds,
		regions: regions,
		bySlug:  make(map[string]int, len(ds.RestAreas)),
	}
	for i, r := range ds.RestAreas {
		if _, ok := c.bySlug[r.Slug]; !ok {
			c.bySlug[r.Slug] = i
		}
	}
	return c
}

// LoadCatalog loads the dataset once and indexes it.
func LoadCatalog(ctx context.Context, loader Loader, regions *region.Table) (*Catalog, error) {
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return NewCatalog(ds, regions), nil
}

// All returns every rest area in published order.
func (c *Catalog) All() []restarea.RestArea {
	return slices.Clone(c.ds.RestAreas)
}

// BySlug returns the rest area with the given slug.
func (c *Catalog) BySlug(slug string) (restarea.RestArea, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return restarea.RestArea{}, fmt.Errorf("rest area %q: %w", slug, ErrNotFound)
	}
	return c.ds.RestAreas[i], nil
}

// ByHighway returns the rest areas on a highway.
func (c *Catalog) ByHighway(highwaySlug string) []restarea.RestArea {
	return c.filter(func(r restarea.RestArea) bool { return r.HighwaySlug == highwaySlug })
}

// WithAmenity returns the rest areas offering f.
func (c *Catalog) WithAmenity(f restarea.Feature) []restarea.RestArea {
	return c.filter(func(r restarea.RestArea) bool { return r.Has(f) })
}

// Search matches q case-insensitively against name, highway, best food and
// address. An empty query matches everything.
func (c *Catalog) Search(q string) []restarea.RestArea {
	q = strings.ToLower(q)
	return c.filter(func(r restarea.RestArea) bool {
		return strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Highway), q) ||
			strings.Contains(strings.ToLower(r.BestFood), q) ||
			strings.Contains(strings.ToLower(r.Address), q)
	})
}

// Popular returns up to limit entries of the popular listing. A
// non-positive limit selects the default size.
func (c *Catalog) Popular(limit int) []restarea.Popular {
	if limit <= 0 {
		limit = dataset.DefaultPopularLimit
	}
	return slices.Clone(c.ds.Popular[:min(limit, len(c.ds.Popular))])
}

// Searchable returns the lightweight search records.
func (c *Catalog) Searchable() []restarea.Searchable {
	return slices.Clone(c.ds.Search)
}

// Highways returns every highway, largest first.
func (c *Catalog) Highways() []highway.Highway {
	return slices.Clone(c.ds.Highways)
}

// HighwayBySlug returns the highway with the given slug.
func (c *Catalog) HighwayBySlug(slug string) (highway.Highway, error) {
	for _, h := range c.ds.Highways {
		if h.Slug == slug {
			return h, nil
		}
	}
	return highway.Highway{}, fmt.Errorf("highway %q: %w", slug, ErrNotFound)
}

// HighwaysByType returns the highways of one classification.
func (c *Catalog) HighwaysByType(t highway.Type) []highway.Highway {
	out := []highway.Highway{}
	for _, h := range c.ds.Highways {
		if h.HighwayType == t {
			out = append(out, h)
		}
	}
	return out
}

// HighwaysGroupedByType groups highways by classification in display
// order, dropping empty groups.
func (c *Catalog) HighwaysGroupedByType() []HighwayGroup {
	byHighway := restarea.GroupBy(c.ds.RestAreas, func(r restarea.RestArea) string { return r.HighwaySlug })

	groups := []HighwayGroup{}
	for _, t := range highway.Types() {
		hws := c.HighwaysByType(t)
		if len(hws) == 0 {
			continue
		}
		g := HighwayGroup{Type: t, Highways: make([]HighwayWithRestAreas, len(hws))}
		for i, h := range hws {
			areas := byHighway.Get(h.Slug)
			if areas == nil {
				areas = []restarea.RestArea{}
			}
			g.Highways[i] = HighwayWithRestAreas{Highway: h, RestAreas: areas}
		}
		groups = append(groups, g)
	}
	return groups
}

// Regions returns the regions that have at least one rest area, most
// rest areas first. Ties keep the region table order.
func (c *Catalog) Regions() []RegionCount {
	counts := make(map[string]int)
	for _, r := range c.ds.RestAreas {
		if reg, ok := c.regions.Extract(r.Address); ok {
			counts[reg.Slug]++
		}
	}

	out := []RegionCount{}
	for _, reg := range c.regions.Regions() {
		if n := counts[reg.Slug]; n > 0 {
			out = append(out, RegionCount{Region: reg, Count: n})
		}
	}
	slices.SortStableFunc(out, func(a, b RegionCount) int { return b.Count - a.Count })
	return out
}

// RegionBySlug returns the region with the given slug.
func (c *Catalog) RegionBySlug(slug string) (region.Region, error) {
	reg, ok := c.regions.BySlug(slug)
	if !ok {
		return region.Region{}, fmt.Errorf("region %q: %w", slug, ErrNotFound)
	}
	return reg, nil
}

// ByRegion returns the rest areas whose address falls in a region.
func (c *Catalog) ByRegion(regionSlug string) ([]restarea.RestArea, error) {
	reg, err := c.RegionBySlug(regionSlug)
	if err != nil {
		return nil, err
	}
	return c.filter(func(r restarea.RestArea) bool {
		got, ok := c.regions.Extract(r.Address)
		return ok && got.Slug == reg.Slug
	}), nil
}

// Metadata returns the run summary.
func (c *Catalog) Metadata() dataset.Metadata {
	return c.ds.Metadata
}

func (c *Catalog) filter(keep func(restarea.RestArea) bool) []restarea.RestArea {
	out := []restarea.RestArea{}
	for _, r := range c.ds.RestAreas {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
