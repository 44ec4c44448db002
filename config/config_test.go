// ABOUTME: Tests for environment configuration loading
// ABOUTME: Covers defaults, overrides, dotenv files, and validation errors

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("Expected 5m cache TTL, got %v", cfg.CacheTTLDuration())
	}
	if cfg.CacheMaxEntries != 10000 {
		t.Errorf("Expected default max entries 10000, got %d", cfg.CacheMaxEntries)
	}
	if !cfg.RateLimitEnabled || cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("Expected rate limit enabled at 20/40, got %v at %d/%d",
			cfg.RateLimitEnabled, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.MetricsEnabled {
		t.Error("Expected metrics enabled by default")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                 "9090",
		"LOG_FORMAT":           "json",
		"CACHE_TTL":            "0",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"RATE_LIMIT_ENABLED":   "false",
		"METRICS_ENABLED":      "false",
		"TUNING_FILE":          "/etc/tuning.yaml",
	}))

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("Expected cache TTL 0, got %d", cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("Expected two trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitEnabled || cfg.MetricsEnabled {
		t.Error("Expected rate limiting and metrics disabled")
	}
	if cfg.TuningFile != "/etc/tuning.yaml" {
		t.Errorf("Expected tuning file path, got %q", cfg.TuningFile)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"rps too low", map[string]string{"RATE_LIMIT_RPS": "0"}, "RATE_LIMIT_RPS"},
		{"burst too high", map[string]string{"RATE_LIMIT_BURST": "20000"}, "RATE_LIMIT_BURST"},
		{"negative ttl", map[string]string{"CACHE_TTL": "-1"}, "CACHE_TTL"},
		{"zero entries", map[string]string{"CACHE_MAX_ENTRIES": "0"}, "CACHE_MAX_ENTRIES"},
		{"bad format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"not a number", map[string]string{"RATE_LIMIT_RPS": "fast"}, "parsing environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))

			_, err := LoadFrom("")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"PORT": "7000"}))

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=6000\nRATE_LIMIT_RPS=55\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Real environment wins over the file
	if cfg.Port != "7000" {
		t.Errorf("Expected port 7000, got %s", cfg.Port)
	}
	if cfg.RateLimitRPS != 55 {
		t.Errorf("Expected RPS 55 from .env, got %d", cfg.RateLimitRPS)
	}
}

func TestLoadConfig_MissingDotEnvIsIgnored(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}
}
