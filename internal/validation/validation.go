package validation

import (
	"fmt"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidTime   ConflictType = "invalid_time"
	ConflictEmptyRange    ConflictType = "empty_range"
	ConflictUnsorted      ConflictType = "unsorted_entries"
	ConflictOverlapping   ConflictType = "overlapping_entries"
	ConflictUncoveredGap  ConflictType = "uncovered_gap"
	ConflictUnknownHabit  ConflictType = "unknown_habit"
	ConflictMissingGating ConflictType = "missing_gating_habit"
)

// Conflict represents a detected problem in a schedule table
type Conflict struct {
	Type        ConflictType
	Description string
	DayType     models.DayType
	TimeRange   string   // Human-readable time range (if applicable)
	Items       []string // Activity labels involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Gaps returns only the uncovered-gap conflicts. Gaps are tolerated at runtime
// (they resolve to the fallback activity) so callers report them as warnings.
func (vr *ValidationResult) Gaps() []Conflict {
	var gaps []Conflict
	for _, c := range vr.Conflicts {
		if c.Type == ConflictUncoveredGap {
			gaps = append(gaps, c)
		}
	}
	return gaps
}

// Errors returns every conflict that is not a gap
func (vr *ValidationResult) Errors() []Conflict {
	var errs []Conflict
	for _, c := range vr.Conflicts {
		if c.Type != ConflictUncoveredGap {
			errs = append(errs, c)
		}
	}
	return errs
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates schedule tables
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

type parsedEntry struct {
	entry      models.ScheduleEntry
	start, end int
}

// ValidateSchedule checks that entries are well formed, sorted by start, non
// overlapping and that together they cover 00:00-24:00.
func (v *Validator) ValidateSchedule(dayType models.DayType, entries []models.ScheduleEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var parsed []parsedEntry
	hasGatingHabit := false
	for _, e := range entries {
		rangeStr := fmt.Sprintf("%s-%s", e.Start, e.End)

		start, errStart := utils.ParseTimeToMinutes(e.Start)
		end, errEnd := utils.ParseTimeToMinutes(e.End)
		if errStart != nil || errEnd != nil || e.Start == constants.EndOfDay {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("%s: %q has invalid time range %s", dayType, e.Activity, rangeStr),
				DayType:     dayType,
				TimeRange:   rangeStr,
				Items:       []string{e.Activity},
			})
			continue
		}
		if end <= start {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyRange,
				Description: fmt.Sprintf("%s: %q ends before it starts (%s)", dayType, e.Activity, rangeStr),
				DayType:     dayType,
				TimeRange:   rangeStr,
				Items:       []string{e.Activity},
			})
			continue
		}
		if e.Habit != "" && !e.Habit.IsCore() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownHabit,
				Description: fmt.Sprintf("%s: %q references unknown habit %q", dayType, e.Activity, e.Habit),
				DayType:     dayType,
				TimeRange:   rangeStr,
				Items:       []string{e.Activity},
			})
		}
		if e.Habit == constants.GatingHabit {
			hasGatingHabit = true
		}
		parsed = append(parsed, parsedEntry{entry: e, start: start, end: end})
	}

	if !hasGatingHabit {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingGating,
			Description: fmt.Sprintf("%s: no slot is assigned to %q", dayType, constants.GatingHabit),
			DayType:     dayType,
		})
	}

	cursor := 0
	for i, p := range parsed {
		if i > 0 && p.start < parsed[i-1].start {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnsorted,
				Description: fmt.Sprintf("%s: %q starts before the preceding entry %q", dayType, p.entry.Activity, parsed[i-1].entry.Activity),
				DayType:     dayType,
				Items:       []string{parsed[i-1].entry.Activity, p.entry.Activity},
			})
		}
		if i > 0 && p.start < parsed[i-1].end && p.end > parsed[i-1].start {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOverlapping,
				Description: fmt.Sprintf("%s: %q overlaps %q", dayType, p.entry.Activity, parsed[i-1].entry.Activity),
				DayType:     dayType,
				TimeRange:   fmt.Sprintf("%s-%s", p.entry.Start, parsed[i-1].entry.End),
				Items:       []string{parsed[i-1].entry.Activity, p.entry.Activity},
			})
		}
		if p.start > cursor {
			result.Conflicts = append(result.Conflicts, gapConflict(dayType, cursor, p.start))
		}
		if p.end > cursor {
			cursor = p.end
		}
	}
	if cursor < constants.MinutesPerDay {
		result.Conflicts = append(result.Conflicts, gapConflict(dayType, cursor, constants.MinutesPerDay))
	}

	return result
}

func gapConflict(dayType models.DayType, from, to int) Conflict {
	rangeStr := fmt.Sprintf("%s-%s", formatMinutes(from), formatMinutes(to))
	return Conflict{
		Type:        ConflictUncoveredGap,
		Description: fmt.Sprintf("%s: %s is not covered and falls back to %q", dayType, rangeStr, constants.FallbackActivity),
		DayType:     dayType,
		TimeRange:   rangeStr,
	}
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
