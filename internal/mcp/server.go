// Package mcp exposes the rest-area catalog as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/highway"
	"github.com/hwrest/restarea/domain/restarea"
)

// Default and maximum number of rest areas returned by list tools.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// CatalogProvider returns the current catalog, or nil before the first load.
type CatalogProvider interface {
	Catalog() *service.Catalog
}

// Server wraps the MCP server with read-only catalog tools.
type Server struct {
	mcpServer *server.MCPServer
	catalogs  CatalogProvider
	logger    *slog.Logger
}

// NewServer creates a new MCP server over the given catalog provider.
func NewServer(catalogs CatalogProvider, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		catalogs: catalogs,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"restarea",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	featureNames := make([]string, 0, len(restarea.Features()))
	for _, f := range restarea.Features() {
		featureNames = append(featureNames, string(f))
	}

	mcpServer.AddTool(mcp.NewTool("search_rest_areas",
		mcp.WithDescription("Find expressway rest areas by name, highway, best food or address, optionally narrowed by highway, amenity or region"),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text matched against name, highway, best food and address"),
		),
		mcp.WithString("highway",
			mcp.Description("Highway slug, e.g. gyeongbu"),
		),
		mcp.WithString("amenity",
			mcp.Description("Required amenity"),
			mcp.Enum(featureNames...),
		),
		mcp.WithString("region",
			mcp.Description("Region slug, e.g. gyeonggi"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: 20, max: 100)"),
		),
	), s.handleSearch)

	mcpServer.AddTool(mcp.NewTool("get_rest_area",
		mcp.WithDescription("Get the full record of one rest area, including menu, brands and facilities"),
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("Rest area slug"),
		),
	), s.handleGetRestArea)

	mcpServer.AddTool(mcp.NewTool("popular_rest_areas",
		mcp.WithDescription("List rest areas known for a signature dish"),
		mcp.WithNumber("limit",
			mcp.Description("Number of entries (default: 12)"),
		),
	), s.handlePopular)

	mcpServer.AddTool(mcp.NewTool("list_highways",
		mcp.WithDescription("List highways with their rest areas in travel order"),
		mcp.WithString("type",
			mcp.Description("Highway classification: main, loop, branch, other, or the Korean label"),
		),
	), s.handleListHighways)

	mcpServer.AddTool(mcp.NewTool("list_regions",
		mcp.WithDescription("List provinces with the number of rest areas in each"),
	), s.handleListRegions)

	mcpServer.AddTool(mcp.NewTool("get_metadata",
		mcp.WithDescription("Get the dataset's update time and record counts"),
	), s.handleMetadata)
}

func (s *Server) catalog() (*service.Catalog, *mcp.CallToolResult) {
	c := s.catalogs.Catalog()
	if c == nil {
		return nil, mcp.NewToolResultError(service.ErrUnavailable.Error())
	}
	return c, nil
}

func (s *Server) handleSearch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, unavailable := s.catalog()
	if unavailable != nil {
		return unavailable, nil
	}

	limit := request.GetInt("limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxLimit)), nil
	}

	areas := c.Search(request.GetString("query", ""))
	if hw := request.GetString("highway", ""); hw != "" {
		areas = keep(areas, func(r restarea.RestArea) bool { return r.HighwaySlug == hw })
	}
	if name := request.GetString("amenity", ""); name != "" {
		f, err := restarea.ParseFeature(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		areas = keep(areas, func(r restarea.RestArea) bool { return r.Has(f) })
	}
	if slug := request.GetString("region", ""); slug != "" {
		inRegion, err := c.ByRegion(slug)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
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

	results := make([]restarea.Searchable, 0, min(len(areas), limit))
	for _, r := range areas[:min(len(areas), limit)] {
		results = append(results, r.ToSearchable())
	}
	return s.jsonResult(results)
}

func (s *Server) handleGetRestArea(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	c, unavailable := s.catalog()
	if unavailable != nil {
		return unavailable, nil
	}

	area, err := c.BySlug(slug)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.jsonResult(area)
}

func (s *Server) handlePopular(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, unavailable := s.catalog()
	if unavailable != nil {
		return unavailable, nil
	}
	return s.jsonResult(c.Popular(request.GetInt("limit", 0)))
}

func (s *Server) handleListHighways(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, unavailable := s.catalog()
	if unavailable != nil {
		return unavailable, nil
	}

	name := request.GetString("type", "")
	if name == "" {
		return s.jsonResult(c.Highways())
	}
	t, err := highway.ParseType(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.jsonResult(c.HighwaysByType(t))
}

func (s *Server) handleListRegions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, unavailable := s.catalog()
	if unavailable != nil {
		return unavailable, nil
	}
	return s.jsonResult(c.Regions())
}

func (s *Server) handleMetadata(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, unavailable := s.catalog()
	if unavailable != nil {
		return unavailable, nil
	}
	return s.jsonResult(c.Metadata())
}

func (s *Server) jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal tool result", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func keep(areas []restarea.RestArea, pred func(restarea.RestArea) bool) []restarea.RestArea {
	out := make([]restarea.RestArea, 0, len(areas))
	for _, r := range areas {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
