// ABOUTME: Tests for the root TUI model
// ABOUTME: Verifies screen transitions between wizard and dashboard

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/graphite-capacity-planner/internal/tui/wizard"
	"github.com/markalston/graphite-capacity-planner/models"
)

type stubBackend struct{}

func (stubBackend) Estimate(context.Context, *models.WorkloadParams, *models.UserResources) (*models.EstimateResponse, error) {
	return &models.EstimateResponse{Bottleneck: "No significant bottleneck detected"}, nil
}

func (stubBackend) Scaling(context.Context, *models.WorkloadParams, *models.UserResources) (*models.ScalingAnalysis, error) {
	return &models.ScalingAnalysis{}, nil
}

func TestNewStartsWithWizard(t *testing.T) {
	app := New(stubBackend{}, nil, nil, false)

	if app.Screen() != ScreenWizard {
		t.Errorf("expected wizard screen, got %d", app.Screen())
	}
}

func TestNewSkipWizard(t *testing.T) {
	app := New(stubBackend{}, &models.WorkloadParams{RequestsPerSecond: 10}, nil, true)

	if app.Screen() != ScreenDashboard {
		t.Errorf("expected dashboard screen, got %d", app.Screen())
	}
	if app.Init() == nil {
		t.Error("expected initial estimate command")
	}
}

func TestWizardCompleteOpensDashboard(t *testing.T) {
	app := New(stubBackend{}, nil, nil, false)

	_, cmd := app.Update(wizard.CompleteMsg{
		Workload:  models.NormalizeWorkload(&models.WorkloadParams{RequestsPerSecond: 100}),
		Resources: models.NormalizeResources(&models.UserResources{StatsdInstances: 2}),
	})

	if app.Screen() != ScreenDashboard {
		t.Fatalf("expected dashboard screen, got %d", app.Screen())
	}
	if cmd == nil {
		t.Fatal("expected estimate command")
	}
	app.Update(cmd())
	if app.dashboard.Resources().StatsdInstances != 2 {
		t.Errorf("expected 2 StatsD instances, got %d", app.dashboard.Resources().StatsdInstances)
	}
}

func TestWizardCancelQuits(t *testing.T) {
	app := New(stubBackend{}, nil, nil, false)

	_, cmd := app.Update(wizard.CancelledMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
