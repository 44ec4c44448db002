// ABOUTME: Workload and resource input wizard as a bubbletea model
// ABOUTME: Uses huh forms with a step progress indicator

package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/graphite-capacity-planner/internal/tui/styles"
	"github.com/markalston/graphite-capacity-planner/models"
)

// CompleteMsg is sent when the wizard finishes successfully
type CompleteMsg struct {
	Workload  models.WorkloadParams
	Resources models.UserResources
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// Wizard collects a workload and resource declaration in two steps
type Wizard struct {
	workload  models.WorkloadParams
	resources models.UserResources
	form      *huh.Form
	step      int
	width     int

	// Form field values (strings for huh)
	rps        string
	mpr        string
	unique     string
	complexity string
	flush      string
	retention  string
	cpu        string
	memory     string
	diskIO     string
	networkIO  string
	storage    string
	statsd     string
	carbon     string
}

var stepNames = []string{"Workload", "Resources"}

var complexityOptions = []huh.Option[string]{
	huh.NewOption("1 - simple dashboards", "1"),
	huh.NewOption("3 - moderate functions", "3"),
	huh.NewOption("5 - heavy aggregation", "5"),
	huh.NewOption("10 - complex analytics", "10"),
}

var flushOptions = []huh.Option[string]{
	huh.NewOption("1 second", "1"),
	huh.NewOption("5 seconds", "5"),
	huh.NewOption("10 seconds (default)", "10"),
	huh.NewOption("30 seconds", "30"),
	huh.NewOption("60 seconds", "60"),
}

// New creates a wizard prefilled from w and r. Both are normalized first so
// every field shows a usable starting value.
func New(w *models.WorkloadParams, r *models.UserResources) *Wizard {
	wl := models.NormalizeWorkload(w)
	res := models.NormalizeResources(r)

	wz := &Wizard{
		workload:   wl,
		resources:  res,
		step:       1,
		rps:        formatFloat(wl.RequestsPerSecond),
		mpr:        formatFloat(wl.MetricsPerRequest),
		unique:     formatFloat(wl.UniqueMetricsRatio),
		complexity: formatFloat(wl.CalculationComplexity),
		flush:      formatFloat(wl.FlushIntervalSeconds),
		retention:  formatFloat(wl.RetentionPeriodDays),
		cpu:        formatFloat(res.CPU),
		memory:     formatFloat(res.Memory),
		diskIO:     formatFloat(res.DiskIO),
		networkIO:  formatFloat(res.NetworkIO),
		storage:    formatFloat(res.Storage),
		statsd:     strconv.Itoa(res.StatsdInstances),
		carbon:     strconv.Itoa(res.CarbonInstances),
	}

	wz.form = wz.createWorkloadForm()
	return wz
}

func (w *Wizard) createWorkloadForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Requests per second").
				Placeholder("e.g., 1000").
				Value(&w.rps).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Metrics per request").
				Placeholder("e.g., 10").
				Value(&w.mpr).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Unique metrics ratio").
				Description("Share of metrics that are distinct series (0 to 1)").
				Value(&w.unique).
				Validate(validateRatio),
			huh.NewSelect[string]().
				Title("Query complexity").
				Options(withCurrent(complexityOptions, w.complexity)...).
				Value(&w.complexity),
			huh.NewSelect[string]().
				Title("Flush interval").
				Options(withCurrent(flushOptions, w.flush)...).
				Value(&w.flush),
			huh.NewInput().
				Title("Retention (days)").
				Value(&w.retention).
				Validate(validatePositive),
		).Title("Step 1: Workload").
			Description("Describe the metrics traffic the pipeline receives"),
	).WithTheme(huh.ThemeCharm())
}

func (w *Wizard) createResourcesForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("CPU cores").Value(&w.cpu).Validate(validatePositive),
			huh.NewInput().Title("Memory (GB)").Value(&w.memory).Validate(validatePositive),
			huh.NewInput().Title("Disk I/O (MB/s)").Value(&w.diskIO).Validate(validatePositive),
			huh.NewInput().Title("Network (Mbps)").Value(&w.networkIO).Validate(validatePositive),
			huh.NewInput().Title("Storage (GB)").Value(&w.storage).Validate(validatePositive),
			huh.NewInput().Title("StatsD instances").CharLimit(4).Value(&w.statsd).Validate(validatePositiveInt),
			huh.NewInput().Title("Carbon instances").CharLimit(4).Value(&w.carbon).Validate(validatePositiveInt),
		).Title("Step 2: Resources").
			Description("Declare the capacity available to StatsD, Carbon, and Graphite-web"),
	).WithTheme(huh.ThemeCharm())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.applyWorkload()
		w.step = 2
		w.form = w.createResourcesForm()
		return w, w.form.Init()

	case 2:
		w.applyResources()
		return w, func() tea.Msg {
			return CompleteMsg{Workload: w.workload, Resources: w.resources}
		}
	}

	return w, nil
}

// applyWorkload copies form values into the workload. Fields were validated
// by the form, and normalization covers anything left unparsable.
func (w *Wizard) applyWorkload() {
	w.workload = models.NormalizeWorkload(&models.WorkloadParams{
		RequestsPerSecond:     parseFloat(w.rps),
		MetricsPerRequest:     parseFloat(w.mpr),
		UniqueMetricsRatio:    parseFloat(w.unique),
		CalculationComplexity: parseFloat(w.complexity),
		FlushIntervalSeconds:  parseFloat(w.flush),
		RetentionPeriodDays:   parseFloat(w.retention),
	})
}

func (w *Wizard) applyResources() {
	statsd, _ := strconv.Atoi(strings.TrimSpace(w.statsd))
	carbon, _ := strconv.Atoi(strings.TrimSpace(w.carbon))

	w.resources = models.NormalizeResources(&models.UserResources{
		CPU:             parseFloat(w.cpu),
		Memory:          parseFloat(w.memory),
		DiskIO:          parseFloat(w.diskIO),
		NetworkIO:       parseFloat(w.networkIO),
		Storage:         parseFloat(w.storage),
		StatsdInstances: statsd,
		CarbonInstances: carbon,
	})
}

// Workload returns the collected workload
func (w *Wizard) Workload() models.WorkloadParams {
	return w.workload
}

// Resources returns the collected resource declaration
func (w *Wizard) Resources() models.UserResources {
	return w.resources
}

// View implements tea.Model
func (w *Wizard) View() string {
	return w.renderProgress() + "\n\n" + w.form.View()
}

// renderProgress renders the step indicator line
func (w *Wizard) renderProgress() string {
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		switch {
		case stepNum < w.step:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Secondary).Render("✓ "+name))
		case stepNum == w.step:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("● "+name))
		default:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Muted).Render("○ "+name))
		}
	}
	return styles.Panel.Render(strings.Join(steps, "    "))
}

// withCurrent appends value as an option when the presets do not include it,
// so a profile value survives the select field.
func withCurrent(options []huh.Option[string], value string) []huh.Option[string] {
	for _, o := range options {
		if o.Value == value {
			return options
		}
	}
	out := append([]huh.Option[string]{}, options...)
	return append(out, huh.NewOption(value+" (current)", value))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseFloat returns 0 for unparsable input, which normalization treats as absent.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func validateNonNegative(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) {
		return fmt.Errorf("must be a number >= 0")
	}
	return nil
}

func validatePositive(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateRatio(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive whole number")
	}
	return nil
}
