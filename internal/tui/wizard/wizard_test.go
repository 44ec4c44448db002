// ABOUTME: Tests for the workload and resource wizard
// ABOUTME: Validates defaults, field parsing, and validators

package wizard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/graphite-capacity-planner/models"
)

func TestWizardDefaults(t *testing.T) {
	w := New(nil, nil)

	if w.unique != "0.2" {
		t.Errorf("expected unique ratio 0.2, got %s", w.unique)
	}
	if w.flush != "10" {
		t.Errorf("expected flush interval 10, got %s", w.flush)
	}
	if w.statsd != "1" || w.carbon != "1" {
		t.Errorf("expected 1/1 instances, got %s/%s", w.statsd, w.carbon)
	}
	if w.step != 1 {
		t.Errorf("expected step 1, got %d", w.step)
	}
}

func TestWizardUsesProfileValues(t *testing.T) {
	w := New(
		&models.WorkloadParams{RequestsPerSecond: 1500, MetricsPerRequest: 12.5},
		&models.UserResources{CPU: 8, StatsdInstances: 3},
	)

	if w.rps != "1500" {
		t.Errorf("expected rps 1500, got %s", w.rps)
	}
	if w.mpr != "12.5" {
		t.Errorf("expected mpr 12.5, got %s", w.mpr)
	}
	if w.cpu != "8" {
		t.Errorf("expected cpu 8, got %s", w.cpu)
	}
	if w.statsd != "3" {
		t.Errorf("expected statsd 3, got %s", w.statsd)
	}
}

func TestWizardApplyValues(t *testing.T) {
	w := New(nil, nil)
	w.rps = "2000"
	w.mpr = " 5 "
	w.unique = "oops"
	w.cpu = "16"
	w.statsd = "4"
	w.carbon = "x"

	w.applyWorkload()
	w.applyResources()

	wl := w.Workload()
	if wl.RequestsPerSecond != 2000 || wl.MetricsPerRequest != 5 {
		t.Errorf("expected 2000 x 5, got %v x %v", wl.RequestsPerSecond, wl.MetricsPerRequest)
	}
	if wl.UniqueMetricsRatio != models.DefaultUniqueMetricsRatio {
		t.Errorf("expected unparsable ratio to default, got %v", wl.UniqueMetricsRatio)
	}

	res := w.Resources()
	if res.CPU != 16 || res.StatsdInstances != 4 {
		t.Errorf("expected 16 cores and 4 StatsD, got %v and %d", res.CPU, res.StatsdInstances)
	}
	if res.CarbonInstances != 1 {
		t.Errorf("expected unparsable carbon count to default to 1, got %d", res.CarbonInstances)
	}
}

func TestWizardAdvanceStep(t *testing.T) {
	w := New(nil, nil)

	w.advanceStep()
	if w.step != 2 {
		t.Fatalf("expected step 2, got %d", w.step)
	}

	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	msg, ok := cmd().(CompleteMsg)
	if !ok {
		t.Fatal("expected CompleteMsg")
	}
	if msg.Resources.StatsdInstances != 1 {
		t.Errorf("expected 1 StatsD instance, got %d", msg.Resources.StatsdInstances)
	}
}

func TestWizardEscCancels(t *testing.T) {
	w := New(nil, nil)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestWithCurrent(t *testing.T) {
	if got := withCurrent(flushOptions, "10"); len(got) != len(flushOptions) {
		t.Errorf("expected preset list unchanged, got %d options", len(got))
	}

	got := withCurrent(flushOptions, "15")
	if len(got) != len(flushOptions)+1 {
		t.Fatalf("expected extra option, got %d", len(got))
	}
	if got[len(got)-1].Value != "15" {
		t.Errorf("expected appended value 15, got %s", got[len(got)-1].Value)
	}
	if len(flushOptions) != 5 {
		t.Error("expected presets to stay unmodified")
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{"non-negative zero", validateNonNegative, "0", false},
		{"non-negative negative", validateNonNegative, "-1", true},
		{"positive zero", validatePositive, "0", true},
		{"positive decimal", validatePositive, "2.5", false},
		{"positive text", validatePositive, "abc", true},
		{"ratio in range", validateRatio, "0.35", false},
		{"ratio above one", validateRatio, "1.5", true},
		{"int valid", validatePositiveInt, "3", false},
		{"int fractional", validatePositiveInt, "2.5", true},
		{"int zero", validatePositiveInt, "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
