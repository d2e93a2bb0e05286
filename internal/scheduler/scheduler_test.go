package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/validation"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, second, 0, time.UTC)
}

func TestResolve_CollegeDay(t *testing.T) {
	s := New()

	tests := []struct {
		name          string
		at            time.Time
		wantActivity  string
		wantHabit     models.HabitID
		wantRemaining int
	}{
		{name: "focused work mid-slot", at: at(18, 30, 0), wantActivity: "Focused Work", wantHabit: models.HabitFocusedWork, wantRemaining: 30},
		{name: "slot start is inclusive", at: at(18, 0, 0), wantActivity: "Focused Work", wantHabit: models.HabitFocusedWork, wantRemaining: 60},
		{name: "slot end is exclusive", at: at(19, 0, 0), wantActivity: "Dinner", wantRemaining: 60},
		{name: "remaining rounds down", at: at(18, 30, 45), wantActivity: "Focused Work", wantHabit: models.HabitFocusedWork, wantRemaining: 29},
		{name: "last second of slot", at: at(18, 59, 59), wantActivity: "Focused Work", wantHabit: models.HabitFocusedWork, wantRemaining: 0},
		{name: "midnight", at: at(0, 0, 0), wantActivity: "Sleep", wantRemaining: 360},
		{name: "workout", at: at(6, 45, 0), wantActivity: "Workout", wantHabit: models.HabitMoveBody, wantRemaining: 30},
		{name: "wind down", at: at(22, 10, 0), wantActivity: "Wind Down", wantHabit: models.HabitSleepOnTime, wantRemaining: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(models.DayTypeCollege, tt.at)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got.Activity != tt.wantActivity {
				t.Errorf("Activity = %q, want %q", got.Activity, tt.wantActivity)
			}
			if got.Habit != tt.wantHabit {
				t.Errorf("Habit = %q, want %q", got.Habit, tt.wantHabit)
			}
			if got.MinutesRemaining != tt.wantRemaining {
				t.Errorf("MinutesRemaining = %d, want %d", got.MinutesRemaining, tt.wantRemaining)
			}
			if got.IsFallback() {
				t.Error("IsFallback() = true for a covered instant")
			}
		})
	}
}

func TestResolve_GapFallback(t *testing.T) {
	s := New()

	tests := []struct {
		dayType models.DayType
		at      time.Time
	}{
		{dayType: models.DayTypeCollege, at: at(22, 30, 0)},
		{dayType: models.DayTypeCollege, at: at(23, 59, 59)},
		{dayType: models.DayTypeHoliday, at: at(23, 15, 0)},
	}

	for _, tt := range tests {
		t.Run(string(tt.dayType)+" "+tt.at.Format("15:04:05"), func(t *testing.T) {
			got, err := s.Resolve(tt.dayType, tt.at)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got.Activity != "Sleep" || got.Habit != "" || got.MinutesRemaining != 0 {
				t.Errorf("Resolve() = %+v, want (Sleep, \"\", 0)", got)
			}
			if !got.IsFallback() {
				t.Error("IsFallback() = false for an uncovered instant")
			}
		})
	}
}

func TestResolve_IgnoresDate(t *testing.T) {
	s := New()

	a, _ := s.Resolve(models.DayTypeHoliday, time.Date(2020, 1, 1, 10, 15, 0, 0, time.UTC))
	b, _ := s.Resolve(models.DayTypeHoliday, time.Date(2031, 7, 9, 10, 15, 0, 0, time.UTC))
	if a.Activity != b.Activity || a.MinutesRemaining != b.MinutesRemaining {
		t.Errorf("resolution depends on date: %+v vs %+v", a, b)
	}
	if a.Habit != models.HabitFocusedWork || a.MinutesRemaining != 105 {
		t.Errorf("Holiday 10:15 = %+v, want Focused Work with 105 minutes", a)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Start: "09:00", End: "11:00", Activity: "First"},
		{Start: "10:00", End: "12:00", Activity: "Second"},
	}
	got := Resolve(entries, at(10, 30, 0))
	if got.Activity != "First" || got.MinutesRemaining != 30 {
		t.Errorf("Resolve() = %+v, want First with 30 minutes", got)
	}
}

func TestResolve_UnknownDayType(t *testing.T) {
	s := New()
	if _, err := s.Resolve("Weekend", at(12, 0, 0)); err == nil {
		t.Error("Resolve() with unknown day type should fail")
	}
	if _, err := s.Table("Weekend"); err == nil {
		t.Error("Table() with unknown day type should fail")
	}
}

func TestTable_ReturnsCopy(t *testing.T) {
	s := New()
	table, err := s.Table(models.DayTypeCollege)
	if err != nil {
		t.Fatalf("Table() error: %v", err)
	}
	table[0].Activity = "Changed"

	again, _ := s.Table(models.DayTypeCollege)
	if again[0].Activity == "Changed" {
		t.Error("Table() exposed the internal table")
	}
}

func TestBuiltinTables_AreWellFormed(t *testing.T) {
	s := New()
	v := validation.New()

	for _, dt := range models.DayTypes {
		table, err := s.Table(dt)
		if err != nil {
			t.Fatalf("Table(%s) error: %v", dt, err)
		}
		result := v.ValidateSchedule(dt, table)
		if errs := result.Errors(); len(errs) != 0 {
			t.Errorf("%s table has conflicts: %v", dt, errs)
		}
		if len(result.Gaps()) != 1 {
			t.Errorf("%s table: expected exactly one trailing gap, got %v", dt, result.Gaps())
		}
	}
}
