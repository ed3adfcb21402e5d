package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/region"
	"github.com/hwrest/restarea/infrastructure/exapi"
)

// staticCatalogs implements CatalogProvider with a fixed catalog.
type staticCatalogs struct {
	c *service.Catalog
}

func (s staticCatalogs) Catalog() *service.Catalog { return s.c }

func testCatalog(t *testing.T) *service.Catalog {
	t.Helper()
	regions, err := region.NewTable()
	if err != nil {
		t.Fatalf("region table: %v", err)
	}

	raw := service.RawDataset{
		Locations: []exapi.RawLocation{
			{UnitName: "서울만남(부산)휴게소", UnitCode: "001", RouteName: "경부선", StdRestCd: "A1"},
			{UnitName: "덕평자연휴게소", UnitCode: "004", RouteName: "영동선", StdRestCd: "B1"},
		},
		BestFoods: []exapi.RawBestFood{
			{StdRestCd: "A1", FoodNm: "우동", FoodCost: "6000원", BestFoodYN: "Y", SvarAddr: "서울 서초구 양재동"},
		},
		Brands: []exapi.RawBrand{
			{StdRestCd: "B1", BrdName: "파리바게뜨", SvarAddr: "경기 이천시 마장면"},
		},
		Conveniences: []exapi.RawConvenience{
			{StdRestCd: "B1", PsName: "샤워실", Stime: "09:00", Etime: "21:00"},
		},
	}
	clock := func() time.Time { return time.Date(2026, 10, 1, 3, 0, 0, 0, time.UTC) }
	ds := service.NewAssembler(service.WithClock(clock)).Assemble(raw)
	return service.NewCatalog(ds, regions)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(staticCatalogs{testCatalog(t)}, "0.1.0-test", nil)
}

func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	result := srv.MCPServer().HandleMessage(context.Background(), raw)

	resp, ok := result.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T: %+v", result, result)
	}
	return resp
}

func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("unmarshal result into %T: %v", dst, err)
	}
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

// callTool initializes the session and invokes one tool.
func callTool(t *testing.T, srv *Server, name string, args map[string]any) mcp.CallToolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	})
	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	return result
}

// textFromContent extracts the text of the first content item. It goes
// through JSON because in-process responses may hold the content as a map.
func textFromContent(t *testing.T, result mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	b, err := json.Marshal(result.Content[0])
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	var tc struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &tc); err != nil {
		t.Fatalf("unmarshal text content: %v", err)
	}
	return tc.Text
}

func TestServer_Initialize(t *testing.T) {
	srv := testServer(t)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	if result.ServerInfo.Name != "restarea" {
		t.Errorf("expected server name restarea, got %s", result.ServerInfo.Name)
	}
	if result.ServerInfo.Version != "0.1.0-test" {
		t.Errorf("expected version 0.1.0-test, got %s", result.ServerInfo.Version)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be present")
	}
}

func TestServer_ListTools(t *testing.T) {
	srv := testServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, nil)

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	tools := map[string]mcp.Tool{}
	for _, tool := range result.Tools {
		tools[tool.Name] = tool
	}
	expected := []string{
		"search_rest_areas",
		"get_rest_area",
		"popular_rest_areas",
		"list_highways",
		"list_regions",
		"get_metadata",
	}
	if len(result.Tools) != len(expected) {
		t.Fatalf("expected %d tools, got %d", len(expected), len(result.Tools))
	}
	for _, name := range expected {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing tool: %s", name)
		}
	}

	get := tools["get_rest_area"]
	if len(get.InputSchema.Required) != 1 || get.InputSchema.Required[0] != "slug" {
		t.Errorf("get_rest_area should require slug, got %v", get.InputSchema.Required)
	}
}

func TestServer_SearchRestAreas(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"everything", map[string]any{}, []string{"서울만남", "덕평자연"}},
		{"query", map[string]any{"query": "우동"}, []string{"서울만남"}},
		{"highway", map[string]any{"highway": "yeongdong"}, []string{"덕평자연"}},
		{"amenity", map[string]any{"amenity": "shower"}, []string{"덕평자연"}},
		{"region", map[string]any{"region": "seoul"}, []string{"서울만남"}},
		{"limit", map[string]any{"limit": 1}, []string{"서울만남"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, testServer(t), "search_rest_areas", tt.args)
			if result.IsError {
				t.Fatalf("expected success, got error: %s", textFromContent(t, result))
			}

			var items []struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal([]byte(textFromContent(t, result)), &items); err != nil {
				t.Fatalf("unmarshal search results: %v", err)
			}
			got := make([]string, len(items))
			for i, it := range items {
				got[i] = it.Name
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestServer_SearchRestAreasInvalid(t *testing.T) {
	for _, args := range []map[string]any{
		{"amenity": "jacuzzi"},
		{"region": "atlantis"},
		{"limit": 0},
		{"limit": 500},
	} {
		result := callTool(t, testServer(t), "search_rest_areas", args)
		if !result.IsError {
			t.Errorf("expected error for %v, got %s", args, textFromContent(t, result))
		}
	}
}

func TestServer_GetRestArea(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "get_rest_area", map[string]any{"slug": "seoulmannam-busan"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}
	var area struct {
		Code     string `json:"code"`
		BestFood string `json:"bestFood"`
		Foods    []struct {
			Price int `json:"price"`
		} `json:"foods"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &area); err != nil {
		t.Fatalf("unmarshal rest area: %v", err)
	}
	if area.Code != "A1" || area.BestFood != "우동" {
		t.Errorf("unexpected rest area: %+v", area)
	}
	if len(area.Foods) != 1 || area.Foods[0].Price != 6000 {
		t.Errorf("expected one food priced 6000, got %+v", area.Foods)
	}

	result = callTool(t, srv, "get_rest_area", map[string]any{"slug": "nowhere"})
	if !result.IsError {
		t.Error("expected error for unknown slug")
	}

	result = callTool(t, srv, "get_rest_area", map[string]any{})
	if !result.IsError {
		t.Error("expected error for missing slug")
	}
}

func TestServer_ListHighways(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "list_highways", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}
	var highways []struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &highways); err != nil {
		t.Fatalf("unmarshal highways: %v", err)
	}
	if len(highways) != 2 {
		t.Errorf("expected 2 highways, got %d", len(highways))
	}

	result = callTool(t, srv, "list_highways", map[string]any{"type": "scenic"})
	if !result.IsError {
		t.Error("expected error for unknown highway type")
	}
}

func TestServer_RegionsAndMetadata(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "list_regions", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}
	var regions []struct {
		Slug  string `json:"slug"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &regions); err != nil {
		t.Fatalf("unmarshal regions: %v", err)
	}
	if len(regions) != 2 {
		t.Errorf("expected 2 regions, got %+v", regions)
	}

	result = callTool(t, srv, "get_metadata", map[string]any{})
	text := textFromContent(t, result)
	if result.IsError || !strings.Contains(text, `"restAreaCount":2`) {
		t.Errorf("unexpected metadata: %s", text)
	}

	result = callTool(t, srv, "popular_rest_areas", map[string]any{})
	text = textFromContent(t, result)
	if result.IsError || !strings.Contains(text, `"slug":"seoulmannam-busan"`) {
		t.Errorf("unexpected popular listing: %s", text)
	}
}

func TestServer_BeforeLoad(t *testing.T) {
	srv := NewServer(staticCatalogs{}, "0.1.0-test", nil)

	for _, name := range []string{"search_rest_areas", "popular_rest_areas", "list_highways", "list_regions", "get_metadata"} {
		result := callTool(t, srv, name, map[string]any{})
		if !result.IsError {
			t.Errorf("%s: expected error before load", name)
		}
		if text := textFromContent(t, result); text != service.ErrUnavailable.Error() {
			t.Errorf("%s: unexpected error text %q", name, text)
		}
	}
}

var _ CatalogProvider = (*service.CatalogHolder)(nil)
