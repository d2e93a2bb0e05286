package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case refreshMsg:
		if msg.err != nil {
			logger.Error("Failed to refresh dashboard", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.snapshot = msg.snapshot
		m.report = msg.report
		m.reportErr = msg.reportErr
		m.habits.SetHabits(msg.snapshot.Habits)
		m.schedule.SetSchedule(msg.snapshot.DayType, msg.table, msg.snapshot.Resolution.Entry)
		return m, nil

	case errMsg:
		logger.Error("Failed to update ledger", "error", msg.err)
		m.err = msg.err
		return m, nil

	case habitlist.ToggleHabitMsg:
		return m, m.toggleHabit(msg.Habit)

	case habitlist.MissHabitMsg:
		return m, m.newMissForm(msg.Habit)
	}

	if m.state == StateMissReason {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.DayType):
			if m.loaded {
				return m, m.switchDayType()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		if m.loaded {
			m.habits, cmd = m.habits.Update(msg)
		}
	case StateSchedule:
		m.schedule, cmd = m.schedule.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Cancel) {
		m.closeForm()
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		habit, reason := m.missHabit, models.MissReason(*m.missReason)
		m.closeForm()
		return m, m.missHabitWith(habit, reason)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) resize() {
	// tabs, help and margins
	h := m.height - 6
	if h < 4 {
		h = 4
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.habits.SetSize(w, h-4)
	m.schedule.SetSize(w, h)
}
