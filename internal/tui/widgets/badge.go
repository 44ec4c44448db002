// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps resource statuses to colored inline badges and icons

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/graphite-capacity-planner/models"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// LevelFor maps a resource status to a badge level.
func LevelFor(s models.Status) StatusLevel {
	switch s {
	case models.StatusHealthy:
		return StatusOK
	case models.StatusWarning:
		return StatusWarning
	case models.StatusCritical:
		return StatusCritical
	default:
		return StatusNeutral
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusBadge renders a predefined status badge (OK, WARN, CRIT)
func StatusBadge(level StatusLevel) string {
	switch level {
	case StatusOK:
		return Badge("OK", StatusOK)
	case StatusWarning:
		return Badge("WARN", StatusWarning)
	case StatusCritical:
		return Badge("CRIT", StatusCritical)
	case StatusInfo:
		return Badge("INFO", StatusInfo)
	default:
		return Badge("--", StatusNeutral)
	}
}

// StatusFromPercent returns the appropriate status level for a percentage value
func StatusFromPercent(percent, warnThreshold, critThreshold float64) StatusLevel {
	if percent >= critThreshold {
		return StatusCritical
	}
	if percent >= warnThreshold {
		return StatusWarning
	}
	return StatusOK
}

func statusGlyph(level StatusLevel) string {
	switch level {
	case StatusOK:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusCritical:
		return "✗"
	case StatusInfo:
		return "ℹ"
	default:
		return "•"
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralBg
	}

	style := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", style.Render(statusGlyph(level)), style.Render(text))
}

// DeltaBadge renders a change indicator. With invertColors a positive delta
// is shown as a warning (e.g. rising utilization).
func DeltaBadge(delta float64, unit string, invertColors bool) string {
	level := StatusNeutral
	text := fmt.Sprintf("%.0f%s", delta, unit)

	switch {
	case delta > 0:
		text = "+" + text
		level = StatusOK
		if invertColors {
			level = StatusWarning
		}
	case delta < 0:
		level = StatusWarning
		if invertColors {
			level = StatusOK
		}
	}

	return Badge(text, level)
}
