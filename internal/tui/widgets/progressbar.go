// ABOUTME: Utilization bar with visual threshold zones
// ABOUTME: Shows green/amber/red regions matching the status classifier

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width         int
	WarnThreshold float64 // Percentage where warning zone starts (default 70)
	CritThreshold float64 // Percentage where critical zone starts (default 90)
	OKColor       lipgloss.Color
	WarnColor     lipgloss.Color
	CritColor     lipgloss.Color
	EmptyColor    lipgloss.Color
	ShowZones     bool // Show threshold markers in the bar
}

// DefaultProgressBarConfig returns zones aligned with the default status thresholds.
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:         20,
		WarnThreshold: 70,
		CritThreshold: 90,
		OKColor:       lipgloss.Color("#10B981"), // Green
		WarnColor:     lipgloss.Color("#F59E0B"), // Amber
		CritColor:     lipgloss.Color("#EF4444"), // Red
		EmptyColor:    lipgloss.Color("#374151"), // Dark gray
		ShowZones:     true,
	}
}

// fill returns how many of width cells percent covers, clamped to the bar.
func fill(percent float64, width int) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return int(percent / 100.0 * float64(width))
}

// ProgressBar renders a progress bar with threshold zones. Values above 100
// fill the bar completely.
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	filled := fill(percent, config.Width)
	warnPos := int(config.WarnThreshold / 100.0 * float64(config.Width))
	critPos := int(config.CritThreshold / 100.0 * float64(config.Width))

	var bar strings.Builder
	bar.WriteString("[")

	for i := 0; i < config.Width; i++ {
		char := "░"
		color := config.EmptyColor

		switch {
		case i < filled && i >= critPos:
			char, color = "█", config.CritColor
		case i < filled && i >= warnPos:
			char, color = "█", config.WarnColor
		case i < filled:
			char, color = "█", config.OKColor
		case config.ShowZones && (i == warnPos || i == critPos):
			char = "│"
		}

		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(char))
	}

	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by the percentage and a
// status icon. The percentage is not clamped.
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	level := StatusFromPercent(percent, config.WarnThreshold, config.CritThreshold)

	color := config.OKColor
	switch level {
	case StatusCritical:
		color = config.CritColor
	case StatusWarning:
		color = config.WarnColor
	}

	style := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s %s", ProgressBar(percent, config), style.Render(fmt.Sprintf("%4.0f%%", percent)), style.Render(statusGlyph(level)))
}

// CompactProgressBar renders a minimal bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	filled := fill(percent, width)

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}
