package models

import (
	"errors"
	"testing"
)

func TestParseHabit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    HabitID
		wantErr bool
	}{
		{name: "focused work", input: "Focused Work", want: HabitFocusedWork},
		{name: "sleep on time", input: "Sleep On Time", want: HabitSleepOnTime},
		{name: "wrong case", input: "focused work", wantErr: true},
		{name: "old habit name", input: "Deep Work", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHabit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHabit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownHabit) {
				t.Errorf("ParseHabit() error = %v, want ErrUnknownHabit", err)
			}
			if got != tt.want {
				t.Errorf("ParseHabit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMissReason(t *testing.T) {
	for _, s := range []string{"", "Time", "Energy", "Distraction"} {
		if _, err := ParseMissReason(s); err != nil {
			t.Errorf("ParseMissReason(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseMissReason("Laziness"); !errors.Is(err, ErrInvalidMissReason) {
		t.Errorf("ParseMissReason(Laziness) error = %v, want ErrInvalidMissReason", err)
	}
}

func TestCompletionRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  CompletionRecord
		wantErr bool
	}{
		{
			name:   "completed",
			record: CompletionRecord{Date: "2026-01-15", Habit: HabitMoveBody, Completed: true, DayType: "Holiday"},
		},
		{
			name:   "missed with reason",
			record: CompletionRecord{Date: "2026-01-15", Habit: HabitLearn, MissReason: MissReasonEnergy},
		},
		{
			name:    "bad date",
			record:  CompletionRecord{Date: "2026/01/15", Habit: HabitLearn},
			wantErr: true,
		},
		{
			name:    "unknown habit",
			record:  CompletionRecord{Date: "2026-01-15", Habit: "Exercise"},
			wantErr: true,
		},
		{
			name:    "reason on completed record",
			record:  CompletionRecord{Date: "2026-01-15", Habit: HabitLearn, Completed: true, MissReason: MissReasonTime},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CompletionRecord.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeeklyReport_Stats(t *testing.T) {
	report := WeeklyReport{Habits: []HabitStats{{Habit: HabitLearn, Total: 3, Completed: 2, Pct: 66.7}}}

	if report.Empty() {
		t.Fatal("Empty() = true, want false")
	}
	if _, ok := report.Stats(HabitMoveBody); ok {
		t.Error("Stats(Move Body) found a row for a habit with no records")
	}
	s, ok := report.Stats(HabitLearn)
	if !ok || s.Pct != 66.7 {
		t.Errorf("Stats(Learn Something) = %+v, %v", s, ok)
	}
	if !(WeeklyReport{}).Empty() {
		t.Error("zero report should be empty")
	}
}
