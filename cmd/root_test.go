// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"
)

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv("GRAPHITE_CAPACITY_API_URL", "")
	apiURL = ""

	url := GetAPIURL()
	if url != "http://localhost:8080" {
		t.Errorf("expected default URL http://localhost:8080, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv("GRAPHITE_CAPACITY_API_URL", "http://planner.example.com")
	apiURL = ""

	url := GetAPIURL()
	if url != "http://planner.example.com" {
		t.Errorf("expected http://planner.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv("GRAPHITE_CAPACITY_API_URL", "http://planner.example.com")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"estimate", "explore", "check", "serve", "health", "interactive"}

	for _, name := range expected {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %s to be registered", name)
		}
	}
}

func TestNewBackend(t *testing.T) {
	remote = false
	tuningFile = ""

	b, err := newBackend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := b.(*localBackend); !ok {
		t.Errorf("expected local backend, got %T", b)
	}

	tuningFile = "does-not-exist.yaml"
	defer func() { tuningFile = "" }()
	if _, err := newBackend(); err == nil {
		t.Error("expected error for missing tuning file")
	}
}
