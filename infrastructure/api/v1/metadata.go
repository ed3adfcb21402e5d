package v1

import (
	"log/slog"
	"net/http"

	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
	"github.com/hwrest/restarea/infrastructure/api/middleware"
)

// MetadataRouter serves the run summary.
type MetadataRouter struct {
	base
}

// NewMetadataRouter creates a new MetadataRouter.
func NewMetadataRouter(provider CatalogProvider, logger *slog.Logger) *MetadataRouter {
	return &MetadataRouter{base: newBase(provider, logger)}
}

// Get handles GET /api/v1/metadata.
func (rt *MetadataRouter) Get(w http.ResponseWriter, req *http.Request) {
	c, ok := rt.catalog(w, req)
	if !ok {
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(rt.serializer.MetadataResource(c.Metadata())))
}
