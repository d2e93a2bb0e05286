package validation

import (
	"testing"

	"github.com/julianstephens/dayrail/internal/models"
)

func hasConflict(result ValidationResult, ct ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateSchedule_FullCoverage(t *testing.T) {
	validator := New()

	entries := []models.ScheduleEntry{
		{Start: "00:00", End: "09:00", Activity: "Sleep"},
		{Start: "09:00", End: "17:00", Activity: "Focused Work", Habit: models.HabitFocusedWork},
		{Start: "17:00", End: "24:00", Activity: "Evening"},
	}

	result := validator.ValidateSchedule(models.DayTypeHoliday, entries)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got:\n%s", result.FormatReport())
	}
}

func TestValidateSchedule_TrailingGap(t *testing.T) {
	validator := New()

	entries := []models.ScheduleEntry{
		{Start: "00:00", End: "18:00", Activity: "Day"},
		{Start: "18:00", End: "19:00", Activity: "Focused Work", Habit: models.HabitFocusedWork},
	}

	result := validator.ValidateSchedule(models.DayTypeCollege, entries)
	gaps := result.Gaps()
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %d", len(gaps))
	}
	if gaps[0].TimeRange != "19:00-24:00" {
		t.Errorf("Expected gap 19:00-24:00, got %s", gaps[0].TimeRange)
	}
	if len(result.Errors()) != 0 {
		t.Errorf("Gaps must not be reported as errors: %v", result.Errors())
	}
}

func TestValidateSchedule_LeadingAndInnerGap(t *testing.T) {
	validator := New()

	entries := []models.ScheduleEntry{
		{Start: "06:00", End: "08:00", Activity: "Morning"},
		{Start: "09:00", End: "24:00", Activity: "Focused Work", Habit: models.HabitFocusedWork},
	}

	result := validator.ValidateSchedule(models.DayTypeHoliday, entries)
	gaps := result.Gaps()
	if len(gaps) != 2 {
		t.Fatalf("Expected 2 gaps, got %d: %v", len(gaps), gaps)
	}
	if gaps[0].TimeRange != "00:00-06:00" || gaps[1].TimeRange != "08:00-09:00" {
		t.Errorf("Unexpected gaps: %s, %s", gaps[0].TimeRange, gaps[1].TimeRange)
	}
}

func TestValidateSchedule_Overlap(t *testing.T) {
	validator := New()

	entries := []models.ScheduleEntry{
		{Start: "00:00", End: "10:00", Activity: "Sleep"},
		{Start: "09:30", End: "24:00", Activity: "Focused Work", Habit: models.HabitFocusedWork},
	}

	result := validator.ValidateSchedule(models.DayTypeHoliday, entries)
	if !hasConflict(result, ConflictOverlapping) {
		t.Error("Expected ConflictOverlapping")
	}
}

func TestValidateSchedule_Unsorted(t *testing.T) {
	validator := New()

	entries := []models.ScheduleEntry{
		{Start: "12:00", End: "24:00", Activity: "Afternoon", Habit: models.HabitFocusedWork},
		{Start: "00:00", End: "12:00", Activity: "Morning"},
	}

	result := validator.ValidateSchedule(models.DayTypeHoliday, entries)
	if !hasConflict(result, ConflictUnsorted) {
		t.Error("Expected ConflictUnsorted")
	}
}

func TestValidateSchedule_InvalidEntries(t *testing.T) {
	validator := New()

	entries := []models.ScheduleEntry{
		{Start: "25:00", End: "26:00", Activity: "Bad"},
		{Start: "10:00", End: "09:00", Activity: "Backwards"},
		{Start: "00:00", End: "24:00", Activity: "All Day", Habit: "Exercise"},
	}

	result := validator.ValidateSchedule(models.DayTypeCollege, entries)
	for _, ct := range []ConflictType{ConflictInvalidTime, ConflictEmptyRange, ConflictUnknownHabit, ConflictMissingGating} {
		if !hasConflict(result, ct) {
			t.Errorf("Expected %s conflict", ct)
		}
	}
}
