// ABOUTME: Tests for route table definitions and the assembled mux
// ABOUTME: Verifies required fields, no duplicates, and end-to-end routing

package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/graphite-capacity-planner/metrics"
	"github.com/markalston/graphite-capacity-planner/middleware"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	seen := make(map[string]bool)
	for _, route := range h.Routes() {
		key := route.Method + " " + route.Path
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	expected := map[string]bool{
		"GET /api/v1/health":       false,
		"GET /api/v1/tuning":       false,
		"POST /api/v1/estimate":    false,
		"POST /api/v1/scaling":     false,
		"POST /api/v1/analysis":    false,
		"GET /api/v1/openapi.yaml": false,
	}

	for _, route := range h.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Expected route %s not found", key)
		}
	}
}

func TestMux_EndToEnd(t *testing.T) {
	m := metrics.New()
	h := NewHandler(nil, nil, m)
	srv := httptest.NewServer(h.Mux(middleware.Recover, middleware.LogRequest, middleware.CORS([]string{"*"})))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/estimate", "application/json", strings.NewReader(referenceBody))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected request ID header from shared middleware")
	}

	resp, err = http.Get(srv.URL + "/api/v1/estimate")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/scaling", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected preflight 204, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	expected := `graphite_capacity_http_requests_total{code="200",method="POST",route="/api/v1/estimate"} 1`
	if !strings.Contains(string(body), expected) {
		t.Errorf("Expected %q in metrics output", expected)
	}
	if !strings.Contains(string(body), `graphite_capacity_estimates_total{operation="estimate"} 1`) {
		t.Error("Expected estimate counter in metrics output")
	}
}

func TestMux_NoMetricsRouteWhenDisabled(t *testing.T) {
	srv := httptest.NewServer(NewHandler(nil, nil, nil).Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}
