// ABOUTME: Tests for request logging middleware
// ABOUTME: Verifies path sanitization and request ID propagation

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "path with newline injection",
			input: "/api/v1/estimate\nAdmin access granted",
			want:  "/api/v1/estimateAdmin access granted",
		},
		{
			name:  "path with CRLF",
			input: "/api/test\r\ninjected line",
			want:  "/api/testinjected line",
		},
		{
			name:  "path with null byte",
			input: "/api/test\x00value",
			want:  "/api/testvalue",
		},
		{
			name:  "path with escape sequence",
			input: "/api/test\x1b[31mred\x1b[0m",
			want:  "/api/test[31mred[0m",
		},
		{
			name:  "path with DEL character",
			input: "/api/test\x7fvalue",
			want:  "/api/testvalue",
		},
		{
			name:  "normal path",
			input: "/api/v1/scaling",
			want:  "/api/v1/scaling",
		},
		{
			name:  "path with URL encoded chars",
			input: "/api/v1/apps%2Ftest",
			want:  "/api/v1/apps%2Ftest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizePath(tt.input)
			if got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogRequest_SetsRequestIDHeader(t *testing.T) {
	var fromContext string
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		fromContext = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	requestID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		t.Errorf("Expected UUID request ID, got %q", requestID)
	}
	if fromContext != requestID {
		t.Errorf("Expected context request ID %q, got %q", requestID, fromContext)
	}
}

func TestLogRequest_ReusesValidIncomingID(t *testing.T) {
	incoming := uuid.NewString()
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("Expected reused request ID %q, got %q", incoming, got)
	}
}

func TestLogRequest_ReplacesInvalidIncomingID(t *testing.T) {
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set(RequestIDHeader, "bad\nid")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got == "bad\nid" {
		t.Error("Expected invalid incoming request ID to be replaced")
	}
}

func TestResponseWriter_CapturesFirstStatus(t *testing.T) {
	rw := wrap(httptest.NewRecorder())
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	if rw.statusCode != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", rw.statusCode)
	}
	if wrap(rw) != rw {
		t.Error("Expected wrap to reuse an existing wrapper")
	}
}
