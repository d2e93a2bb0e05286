package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateSchedule:
		content = m.viewSchedule()
	case StateWeek:
		content = m.viewWeek()
	case StateMissReason:
		content = docStyle.Render(m.form.View())
	}

	parts := []string{m.viewTabs(), content}
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("  Error: "+m.err.Error()))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.activeTab() == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeTab is the tab to highlight; the miss-reason form belongs to Today
func (m Model) activeTab() SessionState {
	if m.state == StateMissReason {
		return m.previousState
	}
	return m.state
}

func (m Model) viewToday() string {
	if !m.loaded {
		return docStyle.Render("Loading...")
	}
	s := m.snapshot
	r := s.Resolution

	now := activityStyle.Render(r.Activity)
	if r.IsFallback() {
		now += mutedStyle.Render(" (outside the schedule)")
	} else {
		now += mutedStyle.Render(fmt.Sprintf(" · %d min left", r.MinutesRemaining))
	}

	header := []string{
		mutedStyle.Render(fmt.Sprintf("%s · %s · %s", s.Date, s.Now.Format("15:04"), s.DayType)),
		"Now: " + now,
		fmt.Sprintf("Day: %s   %s: %s   %d/%d habits",
			statusStyle(string(s.Status)).Render(string(s.Status)),
			constants.RewardActivityName,
			statusStyle(string(s.Gaming)).Render(string(s.Gaming)),
			s.Completed, constants.CoreHabitCount,
		),
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(header, "\n"),
		"",
		m.habits.View(),
	))
}

func (m Model) viewSchedule() string {
	if !m.loaded {
		return docStyle.Render("Loading...")
	}
	title := activityStyle.Render(string(m.snapshot.DayType))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.schedule.View()))
}

func (m Model) viewWeek() string {
	if !m.loaded {
		return docStyle.Render("Loading...")
	}
	if m.reportErr != nil {
		return docStyle.Render(mutedStyle.Render(m.reportErr.Error()))
	}
	return docStyle.Render(renderReport(m.report))
}

func renderReport(r models.WeeklyReport) string {
	var b strings.Builder
	b.WriteString(activityStyle.Render(fmt.Sprintf("%s → %s", r.StartDay, r.EndDay)))
	b.WriteString("\n\n")
	for _, s := range r.Habits {
		fmt.Fprintf(&b, "%-16s %s %5.1f%%  %s\n",
			s.Habit,
			bar(s.Pct, 20),
			s.Pct,
			mutedStyle.Render(fmt.Sprintf("%d/%d", s.Completed, s.Total)),
		)
	}
	return b.String()
}

func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
