package schedule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayrail/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	habitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders one day's schedule table with the active slot highlighted
type Model struct {
	viewport viewport.Model
	DayType  models.DayType
	Entries  []models.ScheduleEntry
	current  *models.ScheduleEntry
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.Entries) == 0 {
		return "No schedule loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetSchedule loads a table. current is the active entry, or nil during a gap.
func (m *Model) SetSchedule(dayType models.DayType, entries []models.ScheduleEntry, current *models.ScheduleEntry) {
	m.DayType = dayType
	m.Entries = entries
	m.current = current
	m.Render()
}

func (m *Model) Render() {
	if len(m.Entries) == 0 {
		m.viewport.SetContent("No schedule loaded.")
		return
	}

	var b strings.Builder
	for _, e := range m.Entries {
		name := activityStyle.Render(e.Activity)
		marker := "  "
		if m.current != nil && *m.current == e {
			name = currentStyle.Render(e.Activity)
			marker = currentStyle.Render("▶ ")
		}
		line := marker + timeStyle.Render(fmt.Sprintf("%s - %s", e.Start, e.End)) + name
		if e.Habit != "" {
			line += " " + habitStyle.Render(string(e.Habit))
		}
		b.WriteString(line + "\n")
	}
	m.viewport.SetContent(b.String())
}
