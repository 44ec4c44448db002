// ABOUTME: Root bubbletea model for the interactive mode
// ABOUTME: Runs the input wizard, then hands its result to the live dashboard

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/graphite-capacity-planner/internal/tui/dashboard"
	"github.com/markalston/graphite-capacity-planner/internal/tui/wizard"
	"github.com/markalston/graphite-capacity-planner/models"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenWizard Screen = iota
	ScreenDashboard
)

// App is the root model for the TUI
type App struct {
	backend   dashboard.Backend
	screen    Screen
	width     int
	height    int
	wizard    *wizard.Wizard
	dashboard *dashboard.Model
}

// New creates the application. With skipWizard the dashboard opens directly
// on the given inputs.
func New(backend dashboard.Backend, w *models.WorkloadParams, r *models.UserResources, skipWizard bool) *App {
	a := &App{backend: backend}
	if skipWizard {
		a.screen = ScreenDashboard
		a.dashboard = dashboard.New(backend, models.NormalizeWorkload(w), models.NormalizeResources(r))
		return a
	}
	a.screen = ScreenWizard
	a.wizard = wizard.New(w, r)
	return a
}

// Screen returns the active screen
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenDashboard {
		return a.dashboard.Init()
	}
	return a.wizard.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case wizard.CompleteMsg:
		a.wizard = nil
		a.screen = ScreenDashboard
		a.dashboard = dashboard.New(a.backend, msg.Workload, msg.Resources)
		a.dashboard.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, a.dashboard.Init()

	case wizard.CancelledMsg:
		return a, tea.Quit
	}

	switch a.screen {
	case ScreenWizard:
		_, cmd := a.wizard.Update(msg)
		return a, cmd
	default:
		_, cmd := a.dashboard.Update(msg)
		return a, cmd
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.screen == ScreenWizard {
		return a.wizard.View()
	}
	return a.dashboard.View()
}
