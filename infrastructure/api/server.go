// Package api provides the HTTP server for the read API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hwrest/restarea/infrastructure/api/middleware"
	v1 "github.com/hwrest/restarea/infrastructure/api/v1"
)

const requestTimeout = 30 * time.Second

// Server represents the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	addr       string
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	ctx         context.Context
	corsOrigins []string
	rateLimit   *middleware.RateLimitConfig
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) ServerOption {
	return func(o *serverOptions) { o.corsOrigins = origins }
}

// WithRateLimit enables the per-client rate limiter. A non-positive rate
// leaves it disabled.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(o *serverOptions) {
		if rps <= 0 {
			o.rateLimit = nil
			return
		}
		o.rateLimit = &middleware.RateLimitConfig{RequestsPerSecond: rps, Burst: max(burst, 1)}
	}
}

// WithContext bounds background middleware work to ctx.
func WithContext(ctx context.Context) ServerOption {
	return func(o *serverOptions) { o.ctx = ctx }
}

// NewServer creates a new API Server with the standard middleware stack.
func NewServer(addr string, logger *slog.Logger, opts ...ServerOption) Server {
	if logger == nil {
		logger = slog.Default()
	}
	o := serverOptions{ctx: context.Background(), corsOrigins: []string{"*"}}
	for _, opt := range opts {
		opt(&o)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logging(logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: o.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))
	if o.rateLimit != nil {
		router.Use(middleware.RateLimiter(o.ctx, *o.rateLimit))
	}
	router.NotFound(middleware.NotFound)
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	return Server{
		router: router,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		addr:   addr,
		logger: logger,
	}
}

// Router returns the chi router for registering routes.
func (s Server) Router() chi.Router {
	return s.router
}

// Handler returns the router as an http.Handler.
func (s Server) Handler() http.Handler {
	return s.router
}

// MountRoutes wires /health and the v1 API onto the router.
func (s Server) MountRoutes(provider v1.CatalogProvider) {
	s.router.Get("/health", healthHandler(provider))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		r.Mount("/rest-areas", v1.NewRestAreasRouter(provider, s.logger).Routes())
		r.Mount("/highways", v1.NewHighwaysRouter(provider, s.logger).Routes())
		r.Mount("/regions", v1.NewRegionsRouter(provider, s.logger).Routes())
		r.Get("/metadata", v1.NewMetadataRouter(provider, s.logger).Get)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting HTTP server", slog.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the server address.
func (s Server) Addr() string {
	return s.addr
}
