// ABOUTME: Unit tests for rate limiting middleware
// ABOUTME: Tests token buckets, key extraction, and middleware responses

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		allowed, _ := rl.allowAt("test-key", now)
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Now()

	rl.allowAt("test-key", now)
	rl.allowAt("test-key", now)

	allowed, retryAfter := rl.allowAt("test-key", now)
	if allowed {
		t.Fatal("Third request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Second {
		t.Errorf("Expected retryAfter in (0, 1s], got %v", retryAfter)
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(10, 1)
	now := time.Now()

	rl.allowAt("test-key", now)
	if allowed, _ := rl.allowAt("test-key", now); allowed {
		t.Fatal("Second immediate request should be rejected")
	}
	if allowed, _ := rl.allowAt("test-key", now.Add(200*time.Millisecond)); !allowed {
		t.Error("Request after refill interval should be allowed")
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()

	if allowed, _ := rl.allowAt("key-a", now); !allowed {
		t.Fatal("First request for key-a should be allowed")
	}
	if allowed, _ := rl.allowAt("key-b", now); !allowed {
		t.Fatal("First request for key-b should be allowed")
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	start := time.Now()

	rl.allowAt("stale", start)
	later := start.Add(idleExpiry + time.Minute)
	for i := 0; i < 100; i++ {
		rl.allowAt(string(rune('a'+i%26))+string(rune('a'+i/26)), later)
	}

	if _, ok := rl.buckets["stale"]; ok {
		t.Error("Expected idle bucket to be swept")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{"remote addr with port", "", "10.0.0.1:5555", "ip:10.0.0.1"},
		{"forwarded for", "203.0.113.9, 10.0.0.1", "10.0.0.1:5555", "ip:203.0.113.9"},
		{"garbage forwarded for", "not-an-ip", "10.0.0.1:5555", "ip:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	rejected := 0
	rl.OnReject = func(string) { rejected++ }

	handler := RateLimit(rl, ClientIP)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodPost, "/api/v1/estimate", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodPost, "/api/v1/estimate", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var body struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.NewDecoder(second.Body).Decode(&body); err != nil {
		t.Fatalf("Expected JSON body: %v", err)
	}
	if body.Code != http.StatusTooManyRequests {
		t.Errorf("Expected code 429, got %d", body.Code)
	}
	if rejected != 1 {
		t.Errorf("Expected OnReject called once, got %d", rejected)
	}
}

func TestRateLimit_DisabledWithNilLimiter(t *testing.T) {
	handler := RateLimit(nil, ClientIP)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}
