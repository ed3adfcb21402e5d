package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/region"
	v1 "github.com/hwrest/restarea/infrastructure/api/v1"
	"github.com/hwrest/restarea/infrastructure/exapi"
)

type staticProvider struct{ c *service.Catalog }

func (p staticProvider) Catalog() *service.Catalog { return p.c }

func location(name, code, route, std string) exapi.RawLocation {
	return exapi.RawLocation{
		UnitName:  exapi.Text(name),
		UnitCode:  exapi.Text(code),
		RouteName: exapi.Text(route),
		XValue:    "127.0205",
		YValue:    "37.4599",
		StdRestCd: exapi.Text(std),
	}
}

func newTestCatalog(t *testing.T) *service.Catalog {
	t.Helper()
	regions, err := region.NewTable()
	require.NoError(t, err)

	raw := service.RawDataset{
		Locations: []exapi.RawLocation{
			location("서울만남(부산)휴게소", "001", "경부선", "A1"),
			location("서울만남(부산)휴게소", "002", "경부선", "A2"),
			location("덕평자연휴게소", "004", "영동선", "B1"),
		},
		BestFoods: []exapi.RawBestFood{
			{StdRestCd: "A1", FoodNm: "우동", BestFoodYN: "Y", SvarAddr: "서울 서초구 양재동"},
		},
		Brands: []exapi.RawBrand{
			{StdRestCd: "B1", BrdName: "파리바게뜨", SvarAddr: "경기 이천시 마장면"},
		},
		Conveniences: []exapi.RawConvenience{
			{StdRestCd: "B1", PsName: "샤워실", Stime: "09:00"},
		},
	}
	clock := func() time.Time { return time.Date(2026, 10, 1, 3, 0, 0, 0, time.UTC) }
	ds := service.NewAssembler(service.WithClock(clock)).Assemble(raw)
	return service.NewCatalog(ds, regions)
}

func newRouter(provider v1.CatalogProvider) http.Handler {
	r := chi.NewRouter()
	r.Mount("/rest-areas", v1.NewRestAreasRouter(provider, nil).Routes())
	r.Mount("/highways", v1.NewHighwaysRouter(provider, nil).Routes())
	r.Mount("/regions", v1.NewRegionsRouter(provider, nil).Routes())
	r.Get("/metadata", v1.NewMetadataRouter(provider, nil).Get)
	return r
}

type resource struct {
	Type          string                     `json:"type"`
	ID            string                     `json:"id"`
	Attributes    map[string]any             `json:"attributes"`
	Relationships map[string]json.RawMessage `json:"relationships"`
}

type document struct {
	Data     json.RawMessage `json:"data"`
	Meta     map[string]any  `json:"meta"`
	Links    map[string]any  `json:"links"`
	Included []resource      `json:"included"`
	Errors   []struct {
		Status string `json:"status"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func get(t *testing.T, h http.Handler, target string) (int, document) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var doc document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
	return w.Code, doc
}

func list(t *testing.T, doc document) []resource {
	t.Helper()
	var out []resource
	require.NoError(t, json.Unmarshal(doc.Data, &out))
	return out
}

func one(t *testing.T, doc document) resource {
	t.Helper()
	var out resource
	require.NoError(t, json.Unmarshal(doc.Data, &out))
	return out
}

func ids(items []resource) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestRestAreas_List(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/rest-areas")
	require.Equal(t, http.StatusOK, code)
	items := list(t, doc)
	require.Len(t, items, 3)
	assert.Equal(t, "rest-area", items[0].Type)
	assert.Equal(t, "seoulmannam-busan", items[0].ID)
	assert.Equal(t, float64(3), doc.Meta["total_count"])
	assert.Equal(t, float64(1), doc.Meta["total_pages"])
}

func TestRestAreas_Filters(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	tests := []struct {
		query string
		want  int
	}{
		{"q=서울만남", 2},
		{"q=우동", 1},
		{"highway=gyeongbu", 2},
		{"highway=yeongdong", 1},
		{"amenity=shower", 1},
		{"amenity=ev-charger", 0},
		{"region=seoul", 1},
		{"region=busan", 0},
		{"q=서울만남&region=seoul", 1},
		{"highway=gyeongbu&amenity=shower", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, doc := get(t, h, "/rest-areas?"+tt.query)
			require.Equal(t, http.StatusOK, code)
			assert.Len(t, list(t, doc), tt.want)
		})
	}
}

func TestRestAreas_FilterErrors(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/rest-areas?amenity=jacuzzi")
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "400", doc.Errors[0].Status)

	code, _ = get(t, h, "/rest-areas?region=atlantis")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRestAreas_Pagination(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/rest-areas?page=2&page_size=1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"seoulmannam-busan-002"}, ids(list(t, doc)))
	assert.Equal(t, float64(3), doc.Meta["total_pages"])
	assert.Contains(t, doc.Links["next"], "page=3")
	assert.Contains(t, doc.Links["prev"], "page=1")

	_, doc = get(t, h, "/rest-areas?page=9")
	assert.Empty(t, list(t, doc))

	code, doc = get(t, h, "/rest-areas?page=4611686018427387904&page_size=20")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, list(t, doc))

	code, doc = get(t, h, "/regions/gyeonggi/rest-areas?page=4611686018427387904")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, list(t, doc))
}

func TestRestAreas_Popular(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/rest-areas/popular")
	require.Equal(t, http.StatusOK, code)
	items := list(t, doc)
	assert.Equal(t, []string{"seoulmannam-busan"}, ids(items))
	assert.Equal(t, "우동", items[0].Attributes["bestFood"])

	for _, bad := range []string{"0", "-3", "many"} {
		code, _ = get(t, h, "/rest-areas/popular?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, code, bad)
	}
}

func TestRestAreas_Get(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/rest-areas/seoulmannam-busan")
	require.Equal(t, http.StatusOK, code)
	r := one(t, doc)
	assert.Equal(t, "A1", r.Attributes["code"])
	assert.Contains(t, string(r.Relationships["highway"]), "gyeongbu")

	code, doc = get(t, h, "/rest-areas/nowhere")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "404", doc.Errors[0].Status)
}

func TestHighways_List(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/highways")
	require.Equal(t, http.StatusOK, code)
	items := list(t, doc)
	require.Len(t, items, 2)
	assert.Equal(t, "gyeongbu", items[0].ID)
	assert.Equal(t, float64(2), items[0].Attributes["restAreaCount"])

	_, doc = get(t, h, "/highways?type=간선고속도로")
	assert.Contains(t, ids(list(t, doc)), "gyeongbu")

	_, doc = get(t, h, "/highways?type=loop")
	assert.Empty(t, list(t, doc))

	code, _ = get(t, h, "/highways?type=scenic")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHighways_Grouped(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/highways/grouped")
	require.Equal(t, http.StatusOK, code)
	groups := list(t, doc)
	require.NotEmpty(t, groups)
	assert.Equal(t, "highway-group", groups[0].Type)
	assert.Equal(t, "main", groups[0].ID)
	assert.NotEmpty(t, doc.Included)
}

func TestHighways_Get(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/highways/gyeongbu")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "경부선", one(t, doc).Attributes["name"])
	assert.Equal(t, []string{"seoulmannam-busan", "seoulmannam-busan-002"}, ids(doc.Included))

	code, _ = get(t, h, "/highways/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRegions(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/regions")
	require.Equal(t, http.StatusOK, code)
	regions := list(t, doc)
	require.Len(t, regions, 2)
	assert.Equal(t, float64(1), regions[0].Attributes["count"])

	code, doc = get(t, h, "/regions/seoul/rest-areas")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"seoulmannam-busan"}, ids(list(t, doc)))

	code, _ = get(t, h, "/regions/atlantis/rest-areas")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetadata(t *testing.T) {
	h := newRouter(staticProvider{newTestCatalog(t)})

	code, doc := get(t, h, "/metadata")
	require.Equal(t, http.StatusOK, code)
	m := one(t, doc)
	assert.Equal(t, "metadata", m.Type)
	assert.Equal(t, float64(3), m.Attributes["restAreaCount"])
	assert.Equal(t, "2026-10-01T03:00:00.000Z", m.Attributes["lastUpdated"])
	assert.NotContains(t, m.Attributes, "apiKey")
}

func TestNotLoaded(t *testing.T) {
	h := newRouter(staticProvider{})

	for _, target := range []string{"/rest-areas", "/rest-areas/x", "/highways", "/regions", "/metadata"} {
		code, doc := get(t, h, target)
		assert.Equal(t, http.StatusServiceUnavailable, code, target)
		require.Len(t, doc.Errors, 1, target)
	}
}
