// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import (
	"net/http"

	"github.com/markalston/graphite-capacity-planner/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/tuning", Handler: h.Tuning},

		// Engine
		{Method: http.MethodPost, Path: "/api/v1/estimate", Handler: h.Estimate},
		{Method: http.MethodPost, Path: "/api/v1/scaling", Handler: h.Scaling},
		{Method: http.MethodPost, Path: "/api/v1/analysis", Handler: h.Analysis},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// Mux registers every route wrapped in the shared middleware, followed by
// per-route instrumentation. /metrics is added when metrics are enabled.
func (h *Handler) Mux(shared ...middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	for _, route := range h.Routes() {
		chain := append(append([]middleware.Middleware{}, shared...), middleware.Instrument(h.metrics, route.Path))
		handler := middleware.Chain(route.Handler, chain...)

		mux.HandleFunc(route.Method+" "+route.Path, handler)
		// Preflight requests reach CORS before method routing rejects them
		mux.HandleFunc(http.MethodOptions+" "+route.Path, handler)
	}

	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}

	return mux
}
