// ABOUTME: Interactive capacity dashboard as a bubbletea model
// ABOUTME: Re-estimates on every instance count change and shows scaling exploration

package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/graphite-capacity-planner/internal/tui/styles"
	"github.com/markalston/graphite-capacity-planner/internal/tui/widgets"
	"github.com/markalston/graphite-capacity-planner/models"
)

// requestTimeout bounds each backend call made from the dashboard.
const requestTimeout = 10 * time.Second

// Backend computes estimates, either in-process or through the API.
type Backend interface {
	Estimate(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.EstimateResponse, error)
	Scaling(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.ScalingAnalysis, error)
}

type estimatedMsg struct {
	seq  int
	resp *models.EstimateResponse
	err  error
}

type exploredMsg struct {
	seq  int
	resp *models.ScalingAnalysis
	err  error
}

// Model is the dashboard state
type Model struct {
	backend   Backend
	workload  models.WorkloadParams
	resources models.UserResources

	estimate *models.EstimateResponse
	scaling  *models.ScalingAnalysis
	err      error
	loading  bool

	// seq increments on every input change so late results are discarded
	seq int

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New creates a dashboard for the given inputs
func New(backend Backend, w models.WorkloadParams, r models.UserResources) *Model {
	return &Model{
		backend:   backend,
		workload:  models.NormalizeWorkload(&w),
		resources: models.NormalizeResources(&r),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// Resources returns the current resource declaration including instance counts
func (m *Model) Resources() models.UserResources {
	return m.resources
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case estimatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.estimate = msg.resp
		}
		return m, nil

	case exploredMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.scaling = msg.resp
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.StatsdUp):
			return m, m.adjust(&m.resources.StatsdInstances, 1)
		case key.Matches(msg, m.keys.StatsdDown):
			return m, m.adjust(&m.resources.StatsdInstances, -1)
		case key.Matches(msg, m.keys.CarbonUp):
			return m, m.adjust(&m.resources.CarbonInstances, 1)
		case key.Matches(msg, m.keys.CarbonDown):
			return m, m.adjust(&m.resources.CarbonInstances, -1)
		case key.Matches(msg, m.keys.Explore):
			return m, m.explore()
		}
	}

	return m, nil
}

// adjust changes an instance count, keeping it at least 1, and re-estimates
// when the value actually changed.
func (m *Model) adjust(count *int, delta int) tea.Cmd {
	next := max(1, *count+delta)
	if next == *count {
		return nil
	}
	*count = next
	m.scaling = nil
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	m.seq++
	m.loading = true

	seq, backend := m.seq, m.backend
	w, r := m.workload, m.resources
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := backend.Estimate(ctx, &w, &r)
		return estimatedMsg{seq: seq, resp: resp, err: err}
	}
}

func (m *Model) explore() tea.Cmd {
	seq, backend := m.seq, m.backend
	w, r := m.workload, m.resources
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := backend.Scaling(ctx, &w, &r)
		return exploredMsg{seq: seq, resp: resp, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Graphite Pipeline Capacity"))
	sb.WriteString("\n")
	sb.WriteString(m.renderInputs())
	sb.WriteString("\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	case m.estimate == nil:
		sb.WriteString(styles.Subtitle.Render("Estimating..."))
		sb.WriteString("\n")
	default:
		sb.WriteString(styles.Panel.Render(RenderRequirements(m.estimate)))
		sb.WriteString("\n")
	}

	if m.scaling != nil {
		sb.WriteString(styles.ActivePanel.Render(RenderScaling(m.scaling)))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render(m.help.View(m.keys)))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(sb.String())
	}
	return sb.String()
}

func (m *Model) renderInputs() string {
	w := m.workload
	total := w.RequestsPerSecond * w.MetricsPerRequest

	line := fmt.Sprintf("%s metrics/s (%s req/s x %s)  unique %.0f%%  flush %ss  retention %sd",
		models.FormatNumber(total),
		models.FormatNumber(w.RequestsPerSecond),
		models.FormatNumber(w.MetricsPerRequest),
		w.UniqueMetricsRatio*100,
		models.FormatNumber(w.FlushIntervalSeconds),
		models.FormatNumber(w.RetentionPeriodDays),
	)

	counts := fmt.Sprintf("StatsD %s   Carbon %s",
		styles.ValueStyle.Render(fmt.Sprint(m.resources.StatsdInstances)),
		styles.ValueStyle.Render(fmt.Sprint(m.resources.CarbonInstances)),
	)
	if m.loading {
		counts += styles.Subtitle.Render("  (updating)")
	}

	return styles.Subtitle.Render(line) + "\n" + counts
}

// RenderRequirements renders one utilization row per resource followed by
// the bottleneck summary and recommendation.
func RenderRequirements(est *models.EstimateResponse) string {
	var sb strings.Builder
	cfg := widgets.DefaultProgressBarConfig()

	for _, kind := range models.Kinds() {
		r, _ := est.Requirements.Get(kind)
		sb.WriteString(fmt.Sprintf("%s %s %8s %-6s %s\n",
			styles.Label.Render(kind.DisplayName()),
			widgets.ProgressBarWithLabel(r.Utilization*100, cfg),
			models.FormatNumber(r.Value),
			r.Unit,
			widgets.StatusBadge(widgets.LevelFor(r.Status)),
		))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render(est.Bottleneck))
	sb.WriteString("\n")
	sb.WriteString(est.Recommendation)
	return sb.String()
}

// RenderScaling renders the ideal counts and each tier's sweep.
func RenderScaling(s *models.ScalingAnalysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Ideal: %s StatsD (%.0f%% gain), %s Carbon (%.0f%% gain)\n",
		styles.ValueStyle.Render(fmt.Sprint(s.Analysis.IdealCollectorInstances)),
		s.Analysis.CollectorEfficiencyGain,
		styles.ValueStyle.Render(fmt.Sprint(s.Analysis.IdealWriterInstances)),
		s.Analysis.WriterEfficiencyGain,
	))
	sb.WriteString(s.Analysis.Recommendation)
	sb.WriteString("\n\n")

	for _, sweep := range []models.TierSweep{s.Collector, s.Writer} {
		sb.WriteString(styles.KeyStyle.Render(fmt.Sprintf("%s (%s per instance)", sweep.Tier.DisplayName(), sweep.TierMetric.DisplayName())))
		sb.WriteString("\n")
		for i, n := range sweep.Instances {
			ratio := sweep.TierRatio[i]
			sb.WriteString(fmt.Sprintf("  %2d  %s %5.2fx\n", n, widgets.CompactProgressBar(ratio*100, 20, styles.Accent), ratio))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
