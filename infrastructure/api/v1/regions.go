package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
	"github.com/hwrest/restarea/infrastructure/api/middleware"
)

// RegionsRouter handles region endpoints.
type RegionsRouter struct {
	base
}

// NewRegionsRouter creates a new RegionsRouter.
func NewRegionsRouter(provider CatalogProvider, logger *slog.Logger) *RegionsRouter {
	return &RegionsRouter{base: newBase(provider, logger)}
}

// Routes returns the chi router for region endpoints.
func (rt *RegionsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Get("/{slug}/rest-areas", rt.RestAreas)

	return router
}

// List handles GET /api/v1/regions.
func (rt *RegionsRouter) List(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(rt.serializer.RegionResources(c.Regions())))
}

// RestAreas handles GET /api/v1/regions/{slug}/rest-areas.
func (rt *RegionsRouter) RestAreas(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	areas, err := c.ByRegion(chi.URLParam(req, "slug"))
	if err != nil {
		rt.fail(w, req, err)
		return
	}

	pagination := ParsePagination(req)
	doc := jsonapi.NewListResponse(rt.serializer.RestAreaResources(Paginate(areas, pagination)))
	doc.Meta = PaginationMeta(pagination, len(areas))
	doc.Links = PaginationLinks(req, pagination, len(areas))
	middleware.WriteJSON(w, http.StatusOK, doc)
}
