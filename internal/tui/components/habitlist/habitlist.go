package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/tracker"
)

type ToggleHabitMsg struct {
	Habit models.HabitID
}

type MissHabitMsg struct {
	Habit models.HabitID
}

type Item struct {
	State tracker.HabitState
}

func (i Item) Title() string {
	mark := "[ ]"
	if i.State.Completed {
		mark = "[x]"
	}
	return mark + " " + string(i.State.Habit)
}

func (i Item) Description() string {
	switch {
	case !i.State.Recorded:
		return "not recorded"
	case i.State.Completed:
		return "done"
	case i.State.MissReason != models.MissReasonNone:
		return fmt.Sprintf("missed (%s)", i.State.MissReason)
	default:
		return "missed"
	}
}

func (i Item) FilterValue() string { return string(i.State.Habit) }

type KeyMap struct {
	Toggle key.Binding
	Miss   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space/x", "toggle"),
		),
		Miss: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "miss with reason"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []tracker.HabitState, width, height int) Model {
	l := list.New(items(habits), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Miss}
	}

	return Model{list: l, keys: keys}
}

func items(habits []tracker.HabitState) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{State: h}
	}
	return out
}

// SetHabits replaces the rows and keeps the cursor where it was
func (m *Model) SetHabits(habits []tracker.HabitState) {
	idx := m.list.Index()
	m.list.SetItems(items(habits))
	if idx < len(habits) {
		m.list.Select(idx)
	}
}

// Selected returns the habit under the cursor
func (m Model) Selected() (models.HabitID, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return "", false
	}
	return i.State.Habit, true
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{Habit: h} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Miss):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MissHabitMsg{Habit: h} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Loading habits..."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
