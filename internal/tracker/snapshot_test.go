package tracker

import (
	"testing"

	"github.com/julianstephens/dayrail/internal/models"
)

func TestToday(t *testing.T) {
	tr, _, _ := newTestTracker(t, at("2025-03-10", 20, 15))

	if _, err := tr.RecordCompletion(models.HabitFocusedWork, true, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.RecordCompletion(models.HabitMoveBody, false, models.MissReasonDistraction); err != nil {
		t.Fatal(err)
	}

	snap, err := tr.Today()
	if err != nil {
		t.Fatalf("Today() error: %v", err)
	}
	if snap.Date != "2025-03-10" || snap.DayType != models.DayTypeCollege {
		t.Errorf("snapshot header = %s %s", snap.Date, snap.DayType)
	}
	if snap.Resolution.Activity != "Gaming" || snap.Resolution.MinutesRemaining != 45 {
		t.Errorf("Resolution = %+v, want Gaming with 45 minutes left", snap.Resolution)
	}
	if snap.Completed != 1 || len(snap.Habits) != len(models.CoreHabits) {
		t.Errorf("Completed = %d, Habits = %d", snap.Completed, len(snap.Habits))
	}
	if snap.Status != models.DayStatusIncomplete || snap.Gaming != models.GamingAllowed {
		t.Errorf("Status/Gaming = %s/%s", snap.Status, snap.Gaming)
	}

	for _, h := range snap.Habits {
		switch h.Habit {
		case models.HabitFocusedWork:
			if !h.Recorded || !h.Completed {
				t.Errorf("Focused Work state = %+v", h)
			}
		case models.HabitMoveBody:
			if !h.Recorded || h.Completed || h.MissReason != models.MissReasonDistraction {
				t.Errorf("Move Body state = %+v", h)
			}
		default:
			if h.Recorded {
				t.Errorf("%s should be unrecorded", h.Habit)
			}
		}
	}
}
