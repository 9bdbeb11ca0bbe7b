// Package tui provides the interactive terminal pieces of the multitool.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles for terminal output
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// StatusMark renders a colored marker for a pass/warn/fail state.
func StatusMark(ok, warn bool) string {
	switch {
	case ok:
		return SuccessStyle.Render("✓")
	case warn:
		return WarningStyle.Render("⚠")
	default:
		return ErrorStyle.Render("✗")
	}
}
