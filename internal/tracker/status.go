package tracker

import (
	"fmt"

	"github.com/julianstephens/dayrail/internal/models"
)

// Status evaluates date under dayType's rule.
//
// On a College Day a missing or incomplete Focused Work record fails the day
// outright. Otherwise the day succeeds once every core habit is completed and
// is incomplete until then, including when nothing was recorded.
func (t *Tracker) Status(date string, dayType models.DayType) (models.DayStatus, error) {
	if !dayType.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayType, dayType)
	}
	records, err := t.Records(date)
	if err != nil {
		return "", err
	}
	return evaluateStatus(records, dayType), nil
}

func evaluateStatus(records []models.CompletionRecord, dayType models.DayType) models.DayStatus {
	if dayType == models.DayTypeCollege {
		focused, ok := find(records, models.HabitFocusedWork)
		if !ok || !focused.Completed {
			return models.DayStatusFailed
		}
	}

	if len(records) == 0 {
		return models.DayStatusIncomplete
	}

	for _, habit := range models.CoreHabits {
		r, ok := find(records, habit)
		if !ok || !r.Completed {
			return models.DayStatusIncomplete
		}
	}
	return models.DayStatusSuccess
}

// GamingStatus reports whether the reward slot is unlocked on date. It is
// advisory; nothing is enforced.
func (t *Tracker) GamingStatus(date string, dayType models.DayType) (models.GamingStatus, error) {
	records, err := t.Records(date)
	if err != nil {
		return "", err
	}
	return evaluateGaming(records, dayType)
}

func evaluateGaming(records []models.CompletionRecord, dayType models.DayType) (models.GamingStatus, error) {
	switch dayType {
	case models.DayTypeCollege:
		// The Focused Work record must exist and be completed.
		if focused, ok := find(records, models.HabitFocusedWork); ok && focused.Completed {
			return models.GamingAllowed, nil
		}
		return models.GamingLocked, nil
	case models.DayTypeHoliday:
		// Any completed Focused Work record for the date unlocks it.
		for _, r := range records {
			if r.Habit == models.HabitFocusedWork && r.Completed {
				return models.GamingAllowed, nil
			}
		}
		return models.GamingLocked, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDayType, dayType)
	}
}
