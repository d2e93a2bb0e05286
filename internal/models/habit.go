package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dayrail/internal/constants"
)

var (
	// ErrUnknownHabit is returned when a habit name is not one of the core habits
	ErrUnknownHabit = errors.New("unknown habit")
	// ErrInvalidMissReason is returned for a miss reason outside the fixed set
	ErrInvalidMissReason = errors.New("invalid miss reason")
)

// HabitID identifies one of the four core habits
type HabitID string

const (
	HabitFocusedWork HabitID = constants.HabitFocusedWork
	HabitLearn       HabitID = constants.HabitLearn
	HabitMoveBody    HabitID = constants.HabitMoveBody
	HabitSleepOnTime HabitID = constants.HabitSleepOnTime
)

// CoreHabits is the fixed, ordered set of trackable habits
var CoreHabits = []HabitID{
	HabitFocusedWork,
	HabitLearn,
	HabitMoveBody,
	HabitSleepOnTime,
}

// IsCore reports whether h is one of the core habits
func (h HabitID) IsCore() bool {
	for _, c := range CoreHabits {
		if c == h {
			return true
		}
	}
	return false
}

// ParseHabit resolves a habit name to a HabitID
func ParseHabit(name string) (HabitID, error) {
	h := HabitID(name)
	if !h.IsCore() {
		return "", fmt.Errorf("%w: %q", ErrUnknownHabit, name)
	}
	return h, nil
}

// MissReason explains why a habit was not completed
type MissReason string

const (
	MissReasonNone        MissReason = constants.MissReasonNone
	MissReasonTime        MissReason = constants.MissReasonTime
	MissReasonEnergy      MissReason = constants.MissReasonEnergy
	MissReasonDistraction MissReason = constants.MissReasonDistraction
)

// MissReasons lists the selectable reasons, without the empty value
var MissReasons = []MissReason{MissReasonTime, MissReasonEnergy, MissReasonDistraction}

// ParseMissReason validates a miss reason. The empty string is accepted.
func ParseMissReason(s string) (MissReason, error) {
	r := MissReason(s)
	if r == MissReasonNone {
		return r, nil
	}
	for _, known := range MissReasons {
		if known == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMissReason, s)
}

// CompletionRecord is one ledger row, keyed by (Date, Habit)
type CompletionRecord struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // YYYY-MM-DD format
	Habit      HabitID    `json:"habit"`
	Completed  bool       `json:"completed"`
	DayType    string     `json:"day_type"`
	MissReason MissReason `json:"miss_reason,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Validate checks the record before it is written to the ledger.
func (r *CompletionRecord) Validate() error {
	if _, err := time.Parse(constants.DateFormat, r.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if !r.Habit.IsCore() {
		return fmt.Errorf("%w: %q", ErrUnknownHabit, r.Habit)
	}
	if _, err := ParseMissReason(string(r.MissReason)); err != nil {
		return err
	}
	if r.Completed && r.MissReason != MissReasonNone {
		return fmt.Errorf("miss reason %q set on a completed record", r.MissReason)
	}
	return nil
}
