package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/tracker"
	"github.com/julianstephens/dayrail/internal/tui/components/habitlist"
	"github.com/julianstephens/dayrail/internal/tui/components/schedule"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateSchedule
	StateWeek
	StateMissReason
)

const tabCount = 3

var tabTitles = []string{"Today", "Schedule", "Week"}

type tickMsg time.Time

// refreshMsg carries everything re-read from the ledger after a tick or a write
type refreshMsg struct {
	snapshot  tracker.Snapshot
	table     []models.ScheduleEntry
	report    models.WeeklyReport
	reportErr error
	err       error
}

// errMsg reports a failed write; the view keeps the last good snapshot
type errMsg struct {
	err error
}

type Model struct {
	tracker       *tracker.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habits        habitlist.Model
	schedule      schedule.Model
	form          *huh.Form
	missHabit     models.HabitID
	missReason    *string
	snapshot      tracker.Snapshot
	loaded        bool
	report        models.WeeklyReport
	reportErr     error
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(tr *tracker.Tracker) Model {
	return Model{
		tracker:  tr,
		state:    StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		habits:   habitlist.New(nil, 0, 0),
		schedule: schedule.New(0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		hk := m.habits.Keys()
		keys = append(keys, hk.Toggle, hk.Miss, m.keys.DayType)
	case StateMissReason:
		keys = []key.Binding{m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		hk := m.habits.Keys()
		actions = []key.Binding{hk.Toggle, hk.Miss, m.keys.DayType}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the snapshot and the weekly report
func (m Model) refresh() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		return load(tr)
	}
}

func load(tr *tracker.Tracker) refreshMsg {
	snap, err := tr.Today()
	if err != nil {
		return refreshMsg{err: err}
	}
	table, err := tr.Scheduler().Table(snap.DayType)
	if err != nil {
		return refreshMsg{err: err}
	}
	report, reportErr := tr.WeeklyAnalytics(snap.Now)
	return refreshMsg{snapshot: snap, table: table, report: report, reportErr: reportErr}
}

// mutate runs a write and then reloads, so the view never shows stale state
func (m Model) mutate(write func(*tracker.Tracker) error) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		if err := write(tr); err != nil {
			return errMsg{err: err}
		}
		return load(tr)
	}
}

func (m Model) toggleHabit(h models.HabitID) tea.Cmd {
	return m.mutate(func(tr *tracker.Tracker) error {
		_, err := tr.ToggleHabit(h)
		return err
	})
}

func (m Model) missHabitWith(h models.HabitID, reason models.MissReason) tea.Cmd {
	return m.mutate(func(tr *tracker.Tracker) error {
		_, err := tr.RecordCompletion(h, false, reason)
		return err
	})
}

func (m Model) switchDayType() tea.Cmd {
	next := models.DayTypeHoliday
	if m.snapshot.DayType == models.DayTypeHoliday {
		next = models.DayTypeCollege
	}
	return m.mutate(func(tr *tracker.Tracker) error {
		return tr.SetDayType(next)
	})
}

// newMissForm asks why a habit was missed
func (m *Model) newMissForm(h models.HabitID) tea.Cmd {
	m.missHabit = h
	m.missReason = new(string)
	*m.missReason = string(models.MissReasons[0])

	opts := make([]huh.Option[string], 0, len(models.MissReasons))
	for _, r := range models.MissReasons {
		opts = append(opts, huh.NewOption(string(r), string(r)))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Why was " + string(h) + " missed?").
				Options(opts...).
				Value(m.missReason),
		),
	)
	m.previousState = m.state
	m.state = StateMissReason
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.missHabit = ""
	m.missReason = nil
	m.state = m.previousState
}
