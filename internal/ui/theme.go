package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StarkHub theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconReactor = "🔆"
	IconSpark   = "✨"
	IconCheck   = "✅"
	IconStreak  = "🔥"
	IconTrophy  = "🏆"
	IconFine    = "🚨"
	IconChart   = "📈"
	IconRobot   = "🤖"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLocked  = "🔒"
)

var (
	cPrimary = lipgloss.Color("51")  // cyan
	cAccent  = lipgloss.Color("45")  // light cyan
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("197") // HUD red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel        = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cPrimary).Padding(0, 1)
	SelectedCell = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Reactor renders the arc-reactor progress bar toward the mission goal.
// Warning flips the bar red (a fine just landed).
func Reactor(percent float64, width int, warning bool) string {
	if width < 4 {
		width = 4
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := Title
	if warning {
		style = Bad
	}
	return fmt.Sprintf("%s %s", style.Render(bar), Muted.Render(fmt.Sprintf("%.1f%%", percent)))
}

// Mark renders one grid cell state.
func Mark(checked bool, available bool) string {
	switch {
	case checked:
		return Good.Render("x")
	case !available:
		return Muted.Render("·")
	default:
		return " "
	}
}

// Rub formats an amount in the tracker currency.
func Rub(amount int) string {
	return fmt.Sprintf("%d RUB", amount)
}
