package v1

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/highway"
	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
	"github.com/hwrest/restarea/infrastructure/api/middleware"
)

// HighwaysRouter handles highway endpoints.
type HighwaysRouter struct {
	base
}

// NewHighwaysRouter creates a new HighwaysRouter.
func NewHighwaysRouter(provider CatalogProvider, logger *slog.Logger) *HighwaysRouter {
	return &HighwaysRouter{base: newBase(provider, logger)}
}

// Routes returns the chi router for highway endpoints.
func (rt *HighwaysRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Get("/grouped", rt.Grouped)
	router.Get("/{slug}", rt.Get)

	return router
}

// List handles GET /api/v1/highways, optionally filtered by type (label
// or key).
func (rt *HighwaysRouter) List(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}

	highways := c.Highways()
	if raw := req.URL.Query().Get("type"); raw != "" {
		t, err := highway.ParseType(raw)
		if err != nil {
			rt.fail(w, req, fmt.Errorf("%w: %w", service.ErrValidation, err))
			return
		}
		highways = c.HighwaysByType(t)
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(rt.serializer.HighwayResources(highways)))
}

// Grouped handles GET /api/v1/highways/grouped. Groups come in display
// order and their highways and rest areas are included.
func (rt *HighwaysRouter) Grouped(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}

	groups := c.HighwaysGroupedByType()
	resources := make([]*jsonapi.Resource, len(groups))
	var included []*jsonapi.Resource
	for i, g := range groups {
		resources[i] = rt.serializer.HighwayGroupResource(g)
		for _, h := range g.Highways {
			included = append(included, rt.serializer.HighwayResource(h.Highway))
			included = append(included, rt.serializer.RestAreaResources(h.RestAreas)...)
		}
	}

	doc := jsonapi.NewListResponse(resources)
	doc.Included = included
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/v1/highways/{slug} and includes the full rest-area
// records.
func (rt *HighwaysRouter) Get(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	h, err := c.HighwayBySlug(chi.URLParam(req, "slug"))
	if err != nil {
		rt.fail(w, req, err)
		return
	}

	doc := jsonapi.NewSingleResponse(rt.serializer.HighwayResource(h))
	doc.Included = rt.serializer.RestAreaResources(c.ByHighway(h.Slug))
	middleware.WriteJSON(w, http.StatusOK, doc)
}
