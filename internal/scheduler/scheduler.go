package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/utils"
)

// Resolution is the activity active at a given time of day
type Resolution struct {
	Activity         string
	Habit            models.HabitID // empty when the slot has no habit
	MinutesRemaining int
	Entry            *models.ScheduleEntry // nil for the fallback
}

// IsFallback reports whether no table entry covered the instant
func (r Resolution) IsFallback() bool {
	return r.Entry == nil
}

// Fallback is returned for instants outside every entry of a table
var Fallback = Resolution{Activity: constants.FallbackActivity}

type Scheduler struct {
	tables map[models.DayType][]models.ScheduleEntry
}

// New returns a scheduler holding the built-in College Day and Holiday tables.
func New() *Scheduler {
	return &Scheduler{
		tables: map[models.DayType][]models.ScheduleEntry{
			models.DayTypeCollege: collegeDay,
			models.DayTypeHoliday: holiday,
		},
	}
}

// Table returns a copy of the table for dayType.
func (s *Scheduler) Table(dayType models.DayType) ([]models.ScheduleEntry, error) {
	entries, ok := s.tables[dayType]
	if !ok {
		return nil, fmt.Errorf("no schedule for day type %q", dayType)
	}
	out := make([]models.ScheduleEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Resolve returns the activity active at t under dayType's table.
func (s *Scheduler) Resolve(dayType models.DayType, t time.Time) (Resolution, error) {
	entries, ok := s.tables[dayType]
	if !ok {
		return Resolution{}, fmt.Errorf("no schedule for day type %q", dayType)
	}
	return Resolve(entries, t), nil
}

// Resolve finds the first entry with start <= t < end. Only the time of day of t
// is used for the lookup. Minutes remaining until the entry's end are rounded
// down. Instants in an uncovered gap get the Fallback resolution.
func Resolve(entries []models.ScheduleEntry, t time.Time) Resolution {
	sec := utils.SecondOfDay(t)

	for i := range entries {
		entry := &entries[i]

		startMinutes, err := utils.ParseTimeToMinutes(entry.Start)
		if err != nil {
			continue
		}
		endMinutes, err := utils.ParseTimeToMinutes(entry.End)
		if err != nil {
			continue
		}

		if startMinutes*60 <= sec && sec < endMinutes*60 {
			return Resolution{
				Activity:         entry.Activity,
				Habit:            entry.Habit,
				MinutesRemaining: (endMinutes*60 - sec) / 60,
				Entry:            entry,
			}
		}
	}
	return Fallback
}
