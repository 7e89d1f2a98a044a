package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/folio-site/folio/internal/ui/style"
)

var (
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Muted).
			MarginRight(1).
			PaddingRight(1)

	logStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	unitPendingStyle = lipgloss.NewStyle().
				Foreground(style.Muted)

	unitRunningStyle = lipgloss.NewStyle().
				Foreground(style.Accent).
				Bold(true)

	unitDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	unitErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	unitFreshStyle = lipgloss.NewStyle().
			Foreground(style.Muted).
			Faint(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Accent).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(lipgloss.Color("#FFFFFF"))
)
