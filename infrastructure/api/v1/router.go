// Package v1 provides the v1 read API routes.
package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
	"github.com/hwrest/restarea/infrastructure/api/middleware"
)

// CatalogProvider returns the catalog to serve, or nil if none is loaded.
type CatalogProvider interface {
	Catalog() *service.Catalog
}

type base struct {
	provider   CatalogProvider
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

func newBase(provider CatalogProvider, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{provider: provider, serializer: jsonapi.NewSerializer(), logger: logger}
}

// catalog returns the current catalog or writes a 503.
func (b base) catalog(w http.ResponseWriter, r *http.Request) (*service.Catalog, bool) {
	c := b.provider.Catalog()
	if c == nil {
		middleware.WriteError(w, r, service.ErrUnavailable, b.logger)
		return nil, false
	}
	return c, true
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	middleware.WriteError(w, r, err, b.logger)
}

// positiveInt parses an optional positive integer query parameter.
func positiveInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", service.ErrValidation, name, raw)
	}
	return n, nil
}
