// ABOUTME: Tests for CORS middleware functionality
// ABOUTME: Verifies allowed origins, blocking, and preflight handling

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/estimate", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := CORS([]string{"https://ui.example.com"})(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, corsRequest(http.MethodPost, "https://ui.example.com"))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ui.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://ui.example.com")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "GET, POST, OPTIONS")
	}
}

func TestCORS_BlocksUnknownOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
	}{
		{"empty list blocks all", nil},
		{"origin not listed", []string{"https://ui.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.allowed)(func(w http.ResponseWriter, r *http.Request) {})

			rec := httptest.NewRecorder()
			handler(rec, corsRequest(http.MethodGet, "https://evil.example.com"))

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
				t.Errorf("Expected no CORS header, got %q", got)
			}
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	handler := CORS([]string{"*"})(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	handler(rec, corsRequest(http.MethodGet, "https://any.example.com"))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://any.example.com" {
		t.Errorf("Expected echoed origin, got %q", got)
	}
}

func TestCORS_HandlesPreflight(t *testing.T) {
	handlerCalled := false
	handler := CORS([]string{"*"})(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	rec := httptest.NewRecorder()
	handler(rec, corsRequest(http.MethodOptions, "https://ui.example.com"))

	if rec.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if handlerCalled {
		t.Error("Handler should not be called for OPTIONS preflight")
	}
}
