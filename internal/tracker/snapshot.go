package tracker

import (
	"time"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/scheduler"
	"github.com/julianstephens/dayrail/internal/utils"
)

// HabitState is today's entry for one core habit
type HabitState struct {
	Habit      models.HabitID
	Recorded   bool
	Completed  bool
	MissReason models.MissReason
}

// Snapshot bundles everything the dashboard shows for the current instant
type Snapshot struct {
	Now        time.Time
	Date       string
	DayType    models.DayType
	Resolution scheduler.Resolution
	Habits     []HabitState
	Completed  int
	Status     models.DayStatus
	Gaming     models.GamingStatus
}

// Today reads the ledger once and derives the current snapshot from it
func (t *Tracker) Today() (Snapshot, error) {
	now := t.clock.Now()
	dayType, err := t.DayType()
	if err != nil {
		return Snapshot{}, err
	}

	resolution, err := t.scheduler.Resolve(dayType, now)
	if err != nil {
		return Snapshot{}, err
	}

	date := utils.FormatDate(now)
	records, err := t.Records(date)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Now:        now,
		Date:       date,
		DayType:    dayType,
		Resolution: resolution,
		Habits:     make([]HabitState, 0, len(models.CoreHabits)),
		Status:     evaluateStatus(records, dayType),
	}
	for _, habit := range models.CoreHabits {
		state := HabitState{Habit: habit}
		if r, ok := find(records, habit); ok {
			state.Recorded = true
			state.Completed = r.Completed
			state.MissReason = r.MissReason
		}
		if state.Completed {
			snap.Completed++
		}
		snap.Habits = append(snap.Habits, state)
	}

	snap.Gaming, err = evaluateGaming(records, dayType)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
