package cli

import (
	"fmt"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/tracker"
	"github.com/julianstephens/dayrail/internal/validation"
)

type ScheduleCmd struct {
	Show  ScheduleShowCmd  `cmd:"" help:"Print a schedule table." default:"1"`
	Check ScheduleCheckCmd `cmd:"" help:"Check both schedule tables for gaps and overlaps."`
}

type ScheduleShowCmd struct {
	DayType string `help:"Table to show; the current day type when omitted." name:"day-type"`
}

func (c *ScheduleShowCmd) Run(ctx *Context) error {
	dayType, err := ctx.dayTypeFor(ctx.Tracker.Date(), c.DayType)
	if err != nil {
		return err
	}
	entries, err := ctx.Tracker.Scheduler().Table(dayType)
	if err != nil {
		return err
	}

	current, err := ctx.Tracker.Scheduler().Resolve(dayType, ctx.Tracker.Now())
	if err != nil {
		return err
	}

	ctx.printf("%s\n\n", dayType)
	for _, e := range entries {
		marker := "  "
		if current.Entry != nil && *current.Entry == e {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s-%s  %s", marker, e.Start, e.End, e.Activity)
		if e.Habit != "" && string(e.Habit) != e.Activity {
			line += fmt.Sprintf("  [%s]", e.Habit)
		}
		ctx.println(line)
	}
	return nil
}

type ScheduleCheckCmd struct{}

func (c *ScheduleCheckCmd) Run(ctx *Context) error {
	results, err := checkSchedules(ctx.Tracker)
	if err != nil {
		return err
	}

	errCount := 0
	for _, dayType := range models.DayTypes {
		result := results[dayType]
		ctx.printf("%s:\n", dayType)
		if !result.HasConflicts() {
			ctx.println("  ✓ covers 00:00-24:00 with no conflicts")
			continue
		}
		for _, conflict := range result.Errors() {
			ctx.printf("  ❌ %s\n", conflict.Description)
			errCount++
		}
		for _, gap := range result.Gaps() {
			ctx.printf("  ⚠ %s\n", gap.Description)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d schedule conflict(s) found", errCount)
	}
	return nil
}

// checkSchedules validates every built-in table
func checkSchedules(tr *tracker.Tracker) (map[models.DayType]validation.ValidationResult, error) {
	validator := validation.New()
	results := make(map[models.DayType]validation.ValidationResult, len(models.DayTypes))
	for _, dayType := range models.DayTypes {
		entries, err := tr.Scheduler().Table(dayType)
		if err != nil {
			return nil, err
		}
		results[dayType] = validator.ValidateSchedule(dayType, entries)
	}
	return results, nil
}

