package tui

import (
	"bytes"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/folio-site/folio/internal/core/domain"
)

const (
	unitListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// UnitNode is one source image in the list.
type UnitNode struct {
	Name   string
	Status domain.UnitStatus
	Logs   bytes.Buffer
}

// Model represents the main TUI state.
type Model struct {
	Units       []*UnitNode
	UnitMap     map[string]*UnitNode
	SpanMap     map[string]*UnitNode
	Viewport    viewport.Model
	ActiveName  string
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	// FollowMode moves the selection to each image as it starts.
	FollowMode bool
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Counts returns the number of finished images and the total.
func (m *Model) Counts() (done, total int) {
	for _, u := range m.Units {
		if u.Status.IsTerminal() {
			done++
		}
	}
	return done, len(m.Units)
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selectIndex(i int) {
	if i < 0 || i >= len(m.Units) {
		return
	}
	m.SelectedIdx = i
	m.ActiveName = m.Units[i].Name
	m.ensureVisible()
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	node, ok := m.UnitMap[m.ActiveName]
	if !ok {
		m.Viewport.SetContent("")
		return
	}
	m.Viewport.SetContent(node.Logs.String())
	if m.FollowMode {
		m.Viewport.GotoBottom()
	}
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.FollowMode = false
				m.selectIndex(m.SelectedIdx - 1)
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Units)-1 {
				m.FollowMode = false
				m.selectIndex(m.SelectedIdx + 1)
			}
		case "esc":
			m.FollowMode = true
			for i, u := range m.Units {
				if u.Status == domain.UnitStatusRunning {
					m.selectIndex(i)
					break
				}
			}
		default:
			m.Viewport, cmd = m.Viewport.Update(msg)
		}

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * unitListWidthRatio)
		headerHeight := lipgloss.Height(titleStyle.Render("IMAGES") + "\n\n")

		m.Viewport.Width = msg.Width - listWidth - logPaneBorderWidth
		m.Viewport.Height = msg.Height - headerHeight
		m.ListHeight = msg.Height - headerHeight
		m.ensureVisible()

	case PlanMsg:
		m.Units = make([]*UnitNode, len(msg.Images))
		m.UnitMap = make(map[string]*UnitNode, len(msg.Images))
		m.SpanMap = make(map[string]*UnitNode)
		for i, name := range msg.Images {
			m.Units[i] = newUnit(name)
			m.UnitMap[name] = m.Units[i]
		}
		m.SelectedIdx, m.ListOffset, m.ActiveName = 0, 0, ""

	case UnitStartMsg:
		// Spans that are not images of the plan, such as the build itself, are ignored.
		node, ok := m.UnitMap[msg.Name]
		if !ok {
			break
		}
		node.Status = domain.UnitStatusRunning
		m.SpanMap[msg.SpanID] = node
		if m.FollowMode {
			for i, u := range m.Units {
				if u == node {
					m.selectIndex(i)
					break
				}
			}
		}

	case UnitLogMsg:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.Logs.Write(msg.Data)
			if node.Name == m.ActiveName {
				m.refreshViewport()
			}
		}

	case UnitCompleteMsg:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			switch {
			case msg.Err != nil:
				node.Status = domain.UnitStatusFailed
			case node.Logs.Len() == 0:
				// Nothing was written: every derivative was already fresh.
				node.Status = domain.UnitStatusCached
			default:
				node.Status = domain.UnitStatusCompleted
			}
		}
	}

	return m, cmd
}
