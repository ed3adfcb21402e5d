// Package dataset defines the published artifact set produced by one run.
package dataset

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hwrest/restarea/domain/highway"
	"github.com/hwrest/restarea/domain/restarea"
)

// Source identifies the upstream data provider.
const Source = "data.ex.co.kr"

// Artifact names.
const (
	RestAreasFile = "rest-areas.json"
	HighwaysFile  = "highways.json"
	MetadataFile  = "metadata.json"
	PopularFile   = "popular-rest-areas.json"
	SearchFile    = "search-rest-areas.json"
)

// DefaultPopularLimit is the number of entries in the popular listing.
const DefaultPopularLimit = 12

// Timestamp is a UTC instant encoded with millisecond precision.
type Timestamp time.Time

const timestampLayout = "2006-01-02T15:04:05.000Z"

// MarshalJSON encodes the timestamp as an ISO-8601 UTC string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(ts).UTC().Format(timestampLayout))
}

// UnmarshalJSON accepts any RFC 3339 timestamp.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	*ts = Timestamp(t.UTC())
	return nil
}

// Time returns the underlying time.
func (ts Timestamp) Time() time.Time { return time.Time(ts) }

// Metadata summarises one run.
type Metadata struct {
	LastUpdated     Timestamp `json:"lastUpdated"`
	RestAreaCount   int       `json:"restAreaCount"`
	HighwayCount    int       `json:"highwayCount"`
	TotalFoods      int       `json:"totalFoods"`
	TotalBrands     int       `json:"totalBrands"`
	TotalFacilities int       `json:"totalFacilities"`
	APISource       string    `json:"apiSource"`
}

// Dataset is everything one run publishes.
type Dataset struct {
	RestAreas []restarea.RestArea
	Highways  []highway.Highway
	Metadata  Metadata
	Popular   []restarea.Popular
	Search    []restarea.Searchable
}

// PopularOf returns the first limit rest areas that have a best food, in
// input order.
func PopularOf(areas []restarea.RestArea, limit int) []restarea.RestArea {
	out := []restarea.RestArea{}
	if limit <= 0 {
		return out
	}
	for _, a := range areas {
		if len(out) == limit {
			break
		}
		if a.BestFood != "" {
			out = append(out, a)
		}
	}
	return out
}
