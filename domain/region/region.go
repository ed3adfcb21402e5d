// Package region maps rest-area addresses onto provinces.
package region

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var defaultTable []byte

// Region is a canonical province.
type Region struct {
	Name      string   `yaml:"name" json:"name"`
	Slug      string   `yaml:"slug" json:"slug"`
	ShortName string   `yaml:"short" json:"shortName"`
	Aliases   []string `yaml:"aliases" json:"-"`
}

// Table resolves address prefixes to regions.
type Table struct {
	regions []Region
	byAlias map[string]int
	bySlug  map[string]int
}

type document struct {
	Regions []Region `yaml:"regions"`
}

// NewTable loads the built-in region table.
func NewTable() (*Table, error) {
	return Parse(defaultTable)
}

// Parse builds a Table from a YAML document.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse region table: %w", err)
	}

	t := &Table{
		regions: doc.Regions,
		byAlias: make(map[string]int),
		bySlug:  make(map[string]int),
	}
	for i, r := range doc.Regions {
		if r.Name == "" || r.Slug == "" {
			return nil, fmt.Errorf("region %d: name and slug are required", i)
		}
		if _, dup := t.bySlug[r.Slug]; dup {
			return nil, fmt.Errorf("region %q: duplicate slug", r.Slug)
		}
		t.bySlug[r.Slug] = i
		t.byAlias[r.Name] = i
		for _, a := range r.Aliases {
			t.byAlias[a] = i
		}
	}
	return t, nil
}

// Regions returns all regions in table order.
func (t *Table) Regions() []Region {
	out := make([]Region, len(t.regions))
	copy(out, t.regions)
	return out
}

// BySlug finds a region by its URL slug.
func (t *Table) BySlug(slug string) (Region, bool) {
	i, ok := t.bySlug[slug]
	if !ok {
		return Region{}, false
	}
	return t.regions[i], true
}

// Extract returns the region named by the first word of an address.
func (t *Table) Extract(address string) (Region, bool) {
	fields := strings.Fields(address)
	if len(fields) == 0 {
		return Region{}, false
	}
	i, ok := t.byAlias[fields[0]]
	if !ok {
		return Region{}, false
	}
	return t.regions[i], true
}
