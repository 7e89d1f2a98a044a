package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.unitList(),
		m.logPane(),
	)
}

func (m *Model) unitList() string {
	var s strings.Builder

	done, total := m.Counts()
	s.WriteString(titleStyle.Render(fmt.Sprintf("IMAGES %d/%d", done, total)) + "\n\n")

	start := m.ListOffset
	end := min(m.ListOffset+m.ListHeight, len(m.Units))
	start = min(start, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderUnitRow(i, m.Units[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderUnitRow(index int, unit *UnitNode) string {
	rowStyle := unitStyle(unit.Status)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if !unit.Status.IsTerminal() {
			rowStyle = selectedStyle
		}
	}

	return cursor + rowStyle.Render(unitIcon(unit.Status)+" "+unit.Name)
}

func unitIcon(status domain.UnitStatus) string {
	switch status {
	case domain.UnitStatusRunning:
		return "●"
	case domain.UnitStatusCompleted:
		return style.Check
	case domain.UnitStatusFailed:
		return style.Cross
	case domain.UnitStatusCached, domain.UnitStatusSkipped:
		return style.Skip
	default:
		return "○"
	}
}

func unitStyle(status domain.UnitStatus) lipgloss.Style {
	switch status {
	case domain.UnitStatusRunning:
		return unitRunningStyle
	case domain.UnitStatusCompleted:
		return unitDoneStyle
	case domain.UnitStatusFailed:
		return unitErrorStyle
	case domain.UnitStatusCached, domain.UnitStatusSkipped:
		return unitFreshStyle
	default:
		return unitPendingStyle
	}
}

func (m *Model) logPane() string {
	header := titleStyle.Render("LOG (waiting...)")
	if m.ActiveName != "" {
		mode := " (following)"
		if !m.FollowMode {
			mode = " (manual)"
		}
		header = titleStyle.Render("LOG: " + m.ActiveName + mode)
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.Viewport.View(),
		),
	)
}
