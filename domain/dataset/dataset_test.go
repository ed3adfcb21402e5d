package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwrest/restarea/domain/restarea"
)

func TestPopularOf(t *testing.T) {
	areas := []restarea.RestArea{
		{Slug: "a", BestFood: "우동"},
		{Slug: "b"},
		{Slug: "c", BestFood: "라면"},
		{Slug: "d", BestFood: "국밥"},
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"zero limit", 0, []string{}},
		{"negative limit", -1, []string{}},
		{"skips empty best food", 2, []string{"a", "c"}},
		{"limit above available", 10, []string{"a", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PopularOf(areas, tt.limit)
			require.NotNil(t, got)
			slugs := make([]string, len(got))
			for i, a := range got {
				slugs[i] = a.Slug
			}
			assert.Equal(t, tt.want, slugs)
		})
	}

	assert.Empty(t, PopularOf(nil, 12))
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	ts := Timestamp(time.Date(2026, 10, 1, 12, 30, 0, 123456789, kst))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-01T03:30:00.123Z"`, string(data))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2026-10-01T03:30:00.123Z"`, time.Date(2026, 10, 1, 3, 30, 0, 123000000, time.UTC)},
		{`"2026-10-01T03:30:00Z"`, time.Date(2026, 10, 1, 3, 30, 0, 0, time.UTC)},
		{`"2026-10-01T12:30:00+09:00"`, time.Date(2026, 10, 1, 3, 30, 0, 0, time.UTC)},
		{`"2026-10-01T03:30:00.123456789Z"`, time.Date(2026, 10, 1, 3, 30, 0, 123456789, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time()), "got %s", ts.Time())
			assert.Equal(t, time.UTC, ts.Time().Location())
		})
	}
}

func TestTimestamp_UnmarshalJSONInvalid(t *testing.T) {
	for _, in := range []string{`"yesterday"`, `"2026-10-01"`, `12345`} {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(in), &ts), in)
	}
}

func TestMetadata_JSONFields(t *testing.T) {
	m := Metadata{
		LastUpdated:   Timestamp(time.Date(2026, 10, 1, 3, 0, 0, 0, time.UTC)),
		RestAreaCount: 2,
		APISource:     Source,
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "2026-10-01T03:00:00.000Z", fields["lastUpdated"])
	assert.Equal(t, "data.ex.co.kr", fields["apiSource"])
	assert.NotContains(t, fields, "apiKey")
}
