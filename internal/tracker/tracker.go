// Package tracker implements the day-level rules of dayrail on top of a
// storage.Provider: which schedule applies, whether the day passed, whether
// gaming is unlocked and how the last week went.
//
// The tracker holds no ledger state of its own. Every query reads the
// provider, so a caller that mutates and then queries always sees its own
// write. Mutations are serialized: each one finishes before the next starts.
package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/scheduler"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/internal/utils"
)

var (
	// ErrInvalidDayType is returned for a day type other than "College Day" or "Holiday"
	ErrInvalidDayType = errors.New("invalid day type")
	// ErrNoData is returned by WeeklyAnalytics when the window holds no records
	ErrNoData = errors.New("no data for this window")
)

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil)
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

type Tracker struct {
	// writeMu serializes mutations, including ToggleHabit's read-then-write
	writeMu   sync.Mutex
	store     storage.Provider
	scheduler *scheduler.Scheduler
	clock     Clock
}

func New(store storage.Provider, sched *scheduler.Scheduler, clock Clock) *Tracker {
	if sched == nil {
		sched = scheduler.New()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Tracker{
		store:     store,
		scheduler: sched,
		clock:     clock,
	}
}

// Now returns the current instant from the tracker's clock
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Date returns today's date (YYYY-MM-DD) in the clock's location
func (t *Tracker) Date() string {
	return utils.FormatDate(t.clock.Now())
}

// Scheduler exposes the schedule tables
func (t *Tracker) Scheduler() *scheduler.Scheduler {
	return t.scheduler
}

// Resolve returns the activity at the given instant under the current day type
func (t *Tracker) Resolve(at time.Time) (scheduler.Resolution, error) {
	dayType, err := t.DayType()
	if err != nil {
		return scheduler.Resolution{}, err
	}
	return t.scheduler.Resolve(dayType, at)
}

// Current returns the activity active right now
func (t *Tracker) Current() (scheduler.Resolution, error) {
	return t.Resolve(t.clock.Now())
}

// Records returns the ledger rows for date. Rows that fail validation are
// reported as an error rather than skipped.
func (t *Tracker) Records(date string) ([]models.CompletionRecord, error) {
	return t.list(storage.CompletionFilter{Date: date})
}

func (t *Tracker) list(filter storage.CompletionFilter) ([]models.CompletionRecord, error) {
	records, err := t.store.ListCompletions(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("malformed record %s/%s: %w", records[i].Date, records[i].Habit, err)
		}
	}
	return records, nil
}

// RecordedDayType returns the day type stamped on date's records, or the
// current selection when the date has none.
func (t *Tracker) RecordedDayType(date string) (models.DayType, error) {
	records, err := t.Records(date)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if d := models.DayType(r.DayType); d.IsValid() {
			return d, nil
		}
	}
	return t.DayType()
}

// RecordCompletion writes today's entry for habit, replacing any earlier one.
// A completed habit never carries a miss reason.
func (t *Tracker) RecordCompletion(habit models.HabitID, completed bool, reason models.MissReason) (models.CompletionRecord, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.recordCompletion(habit, completed, reason)
}

func (t *Tracker) recordCompletion(habit models.HabitID, completed bool, reason models.MissReason) (models.CompletionRecord, error) {
	if completed {
		reason = models.MissReasonNone
	}

	dayType, err := t.DayType()
	if err != nil {
		return models.CompletionRecord{}, err
	}

	now := t.clock.Now()
	record := models.CompletionRecord{
		ID:         uuid.New().String(),
		Date:       utils.FormatDate(now),
		Habit:      habit,
		Completed:  completed,
		DayType:    string(dayType),
		MissReason: reason,
		UpdatedAt:  now.UTC(),
	}
	if err := record.Validate(); err != nil {
		return models.CompletionRecord{}, err
	}

	if err := t.store.UpsertCompletion(record); err != nil {
		return models.CompletionRecord{}, fmt.Errorf("failed to save completion: %w", err)
	}
	logger.Debug("Recorded completion",
		"date", record.Date,
		"habit", record.Habit,
		"completed", record.Completed,
		"reason", record.MissReason,
		"day_type", record.DayType,
	)
	return record, nil
}

// ToggleHabit flips today's completion state for habit. A habit without a
// record counts as not done, so the first toggle marks it complete.
func (t *Tracker) ToggleHabit(habit models.HabitID) (models.CompletionRecord, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	records, err := t.Records(t.Date())
	if err != nil {
		return models.CompletionRecord{}, err
	}
	done := false
	if r, ok := find(records, habit); ok {
		done = r.Completed
	}
	return t.recordCompletion(habit, !done, models.MissReasonNone)
}

func find(records []models.CompletionRecord, habit models.HabitID) (models.CompletionRecord, bool) {
	for _, r := range records {
		if r.Habit == habit {
			return r, true
		}
	}
	return models.CompletionRecord{}, false
}
