// ABOUTME: Tests for heuristic coefficient defaults and validation
// ABOUTME: Ensures invalid overrides are rejected before they reach the estimators

package services

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultTuning_Validates(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Errorf("Expected default tuning to validate, got %v", err)
	}
}

func TestDefaultTuning_PublishedConstants(t *testing.T) {
	tuning := DefaultTuning()

	if tuning.Collector.CPUOverheadRate != 0.015 {
		t.Errorf("Expected collector overhead 0.015, got %v", tuning.Collector.CPUOverheadRate)
	}
	if tuning.Writer.CPUOverheadRate != 0.01 {
		t.Errorf("Expected writer overhead 0.01, got %v", tuning.Writer.CPUOverheadRate)
	}
	if tuning.Memory.PlateauFactor != 0.4 {
		t.Errorf("Expected plateau factor 0.4, got %v", tuning.Memory.PlateauFactor)
	}
	if tuning.Sweep.Min != 1 || tuning.Sweep.Max != 8 {
		t.Errorf("Expected sweep 1..8, got %d..%d", tuning.Sweep.Min, tuning.Sweep.Max)
	}
}

func TestTuningValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantErr string
	}{
		{
			name:    "zero unit load",
			mutate:  func(t *Tuning) { t.Collector.UnitLoad = 0 },
			wantErr: "collector.unit_load",
		},
		{
			name:    "NaN overhead",
			mutate:  func(t *Tuning) { t.Writer.CPUOverheadRate = math.NaN() },
			wantErr: "writer.cpu_overhead_rate",
		},
		{
			name:    "negative disk overhead",
			mutate:  func(t *Tuning) { t.Disk.OverheadRate = -0.1 },
			wantErr: "disk.overhead_rate",
		},
		{
			name:    "inverted status thresholds",
			mutate:  func(t *Tuning) { t.Status.Warning, t.Status.Critical = 0.9, 0.7 },
			wantErr: "status thresholds",
		},
		{
			name:    "inverted advice thresholds",
			mutate:  func(t *Tuning) { t.Advice.Urgent = 0.4 },
			wantErr: "advice thresholds",
		},
		{
			name:    "empty sweep",
			mutate:  func(t *Tuning) { t.Sweep.Min, t.Sweep.Max = 5, 2 },
			wantErr: "sweep range",
		},
		{
			name:    "sweep too wide",
			mutate:  func(t *Tuning) { t.Sweep.Max = 1000 },
			wantErr: "sweep range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)

			err := tuning.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
