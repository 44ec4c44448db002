// ABOUTME: Tests for API server assembly
// ABOUTME: Verifies middleware wiring, metrics exposure, and rate limiting end to end

package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/graphite-capacity-planner/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		LogLevel:         "error",
		LogFormat:        "text",
		CacheTTL:         60,
		CacheMaxEntries:  100,
		RateLimitEnabled: false,
		RateLimitRPS:     20,
		RateLimitBurst:   40,
		MetricsEnabled:   true,
	}
}

func startServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	srv, err := buildServer(cfg)
	if err != nil {
		t.Fatalf("buildServer failed: %v", err)
	}
	ts := httptest.NewServer(srv.http.Handler)
	t.Cleanup(func() {
		ts.Close()
		srv.close()
	})
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestBuildServer_Endpoints(t *testing.T) {
	ts := startServer(t, testConfig())

	code, body := get(t, ts.URL+"/api/v1/health")
	if code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", code)
	}
	if !strings.Contains(body, `"tuning_source":"default"`) {
		t.Errorf("expected default tuning source, got %s", body)
	}

	resp, err := http.Post(ts.URL+"/api/v1/estimate", "application/json",
		strings.NewReader(`{"workload":{"requests_per_second":1000,"metrics_per_request":10}}`))
	if err != nil {
		t.Fatalf("estimate request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected estimate 200, got %d", resp.StatusCode)
	}

	code, body = get(t, ts.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", code)
	}
	if !strings.Contains(body, "graphite_capacity_cache_entries 1") {
		t.Error("expected cache entries gauge after one estimate")
	}
}

func TestBuildServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	ts := startServer(t, cfg)

	if code, _ := get(t, ts.URL+"/metrics"); code != http.StatusNotFound {
		t.Errorf("expected 404 with metrics disabled, got %d", code)
	}
}

func TestBuildServer_CacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.CacheTTL = 0
	ts := startServer(t, cfg)

	_, body := get(t, ts.URL+"/api/v1/health")
	if strings.Contains(body, `"cache"`) {
		t.Errorf("expected no cache section, got %s", body)
	}
}

func TestBuildServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	ts := startServer(t, cfg)

	if code, _ := get(t, ts.URL+"/api/v1/health"); code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", code)
	}

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// /metrics is outside the limited route table
	_, body := get(t, ts.URL+"/metrics")
	if !strings.Contains(body, "graphite_capacity_http_rate_limited_total 1") {
		t.Error("expected rate limited counter to be 1")
	}
}

func TestBuildServer_TuningFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("sweep:\n  max: 4\n"), 0o600); err != nil {
		t.Fatalf("failed to write tuning: %v", err)
	}

	cfg := testConfig()
	cfg.TuningFile = path
	ts := startServer(t, cfg)

	_, body := get(t, ts.URL+"/api/v1/tuning")
	if !strings.Contains(body, `"max":4`) {
		t.Errorf("expected sweep max 4 from tuning file, got %s", body)
	}

	cfg.TuningFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := buildServer(cfg); err == nil {
		t.Error("expected error for missing tuning file")
	}
}
