package v1

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/restarea"
	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
	"github.com/hwrest/restarea/infrastructure/api/middleware"
)

// RestAreasRouter handles rest-area endpoints.
type RestAreasRouter struct {
	base
}

// NewRestAreasRouter creates a new RestAreasRouter.
func NewRestAreasRouter(provider CatalogProvider, logger *slog.Logger) *RestAreasRouter {
	return &RestAreasRouter{base: newBase(provider, logger)}
}

// Routes returns the chi router for rest-area endpoints.
func (rt *RestAreasRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Get("/popular", rt.Popular)
	router.Get("/{slug}", rt.Get)

	return router
}

// List handles GET /api/v1/rest-areas.
//
// Query parameters q, highway, amenity and region narrow the result; all
// given filters must match.
func (rt *RestAreasRouter) List(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	q := req.URL.Query()

	areas := c.All()
	if text := q.Get("q"); text != "" {
		areas = c.Search(text)
	}
	if hw := q.Get("highway"); hw != "" {
		areas = keep(areas, func(r restarea.RestArea) bool { return r.HighwaySlug == hw })
	}
	if name := q.Get("amenity"); name != "" {
		f, err := restarea.ParseFeature(name)
		if err != nil {
			rt.fail(w, req, fmt.Errorf("%w: %w", service.ErrValidation, err))
			return
		}
		areas = keep(areas, func(r restarea.RestArea) bool { return r.Has(f) })
	}
	if slug := q.Get("region"); slug != "" {
		inRegion, err := c.ByRegion(slug)
		if err != nil {
			rt.fail(w, req, err)
			return
		}
		slugs := make(map[string]struct{}, len(inRegion))
		for _, r := range inRegion {
			slugs[r.Slug] = struct{}{}
		}
		areas = keep(areas, func(r restarea.RestArea) bool {
			_, ok := slugs[r.Slug]
			return ok
		})
	}

	pagination := ParsePagination(req)
	doc := jsonapi.NewListResponse(rt.serializer.RestAreaResources(Paginate(areas, pagination)))
	doc.Meta = PaginationMeta(pagination, len(areas))
	doc.Links = PaginationLinks(req, pagination, len(areas))
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Popular handles GET /api/v1/rest-areas/popular.
func (rt *RestAreasRouter) Popular(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	limit, err := positiveInt(req, "limit", dataset.DefaultPopularLimit)
	if err != nil {
		rt.fail(w, req, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(rt.serializer.PopularResources(c.Popular(limit))))
}

// Get handles GET /api/v1/rest-areas/{slug}.
func (rt *RestAreasRouter) Get(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	area, err := c.BySlug(chi.URLParam(req, "slug"))
	if err != nil {
		rt.fail(w, req, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(rt.serializer.RestAreaResource(area)))
}

func keep(areas []restarea.RestArea, pred func(restarea.RestArea) bool) []restarea.RestArea {
	out := []restarea.RestArea{}
	for _, a := range areas {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}
