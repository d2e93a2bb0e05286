package models

import "github.com/julianstephens/dayrail/internal/constants"

// DayType selects a schedule table and the day-status rule
type DayType string

const (
	DayTypeCollege DayType = constants.DayTypeCollege
	DayTypeHoliday DayType = constants.DayTypeHoliday
)

// DayTypes lists the known day types in display order
var DayTypes = []DayType{DayTypeCollege, DayTypeHoliday}

// IsValid reports whether d names a known schedule variant
func (d DayType) IsValid() bool {
	return d == DayTypeCollege || d == DayTypeHoliday
}

// ScheduleEntry maps a half-open time range [Start, End) to an activity
type ScheduleEntry struct {
	Start    string  `json:"start"` // HH:MM format
	End      string  `json:"end"`   // HH:MM format, "24:00" allowed
	Activity string  `json:"activity"`
	Habit    HabitID `json:"habit,omitempty"`
}

type DayStatus string

const (
	DayStatusFailed     DayStatus = constants.DayStatusFailed
	DayStatusSuccess    DayStatus = constants.DayStatusSuccess
	DayStatusIncomplete DayStatus = constants.DayStatusIncomplete
)

type GamingStatus string

const (
	GamingAllowed GamingStatus = constants.GamingAllowed
	GamingLocked  GamingStatus = constants.GamingLocked
)

// HabitStats is one row of the weekly aggregation
type HabitStats struct {
	Habit     HabitID `json:"habit"`
	Total     int     `json:"total_recorded"`
	Completed int     `json:"completed_count"`
	Pct       float64 `json:"completion_pct"`
}

// WeeklyReport holds per-habit stats for a trailing window of dates
type WeeklyReport struct {
	StartDay string       `json:"start_day"`
	EndDay   string       `json:"end_day"`
	Habits   []HabitStats `json:"habits"`
}

// Empty reports whether the window held no records at all
func (w WeeklyReport) Empty() bool {
	return len(w.Habits) == 0
}

// Stats returns the row for habit h, if any records existed for it
func (w WeeklyReport) Stats(h HabitID) (HabitStats, bool) {
	for _, s := range w.Habits {
		if s.Habit == h {
			return s, true
		}
	}
	return HabitStats{}, false
}

// DailyRate is the completion rate of a single date across all recorded habits
type DailyRate struct {
	Date      string  `json:"date"`
	Completed int     `json:"completed"`
	Recorded  int     `json:"recorded"`
	Rate      float64 `json:"rate"`
}
