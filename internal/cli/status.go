package cli

import (
	"github.com/julianstephens/dayrail/internal/models"
)

type StatusCmd struct {
	Date    string `help:"Date to evaluate (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	DayType string `help:"Judge the date under this day type instead of the recorded one." name:"day-type"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	dayType, err := ctx.dayTypeFor(date, c.DayType)
	if err != nil {
		return err
	}

	status, err := ctx.Tracker.Status(date, dayType)
	if err != nil {
		return err
	}
	records, err := ctx.Tracker.Records(date)
	if err != nil {
		return err
	}

	ctx.printf("%s  (%s)\n\n", date, dayType)
	for _, habit := range models.CoreHabits {
		ctx.printf("  %s\n", habitLine(habit, records))
	}
	ctx.printf("\nStatus: %s\n", status)
	if status == models.DayStatusFailed && dayType == models.DayTypeCollege {
		ctx.printf("  %s is required on a %s.\n", models.HabitFocusedWork, models.DayTypeCollege)
	}
	return nil
}

type GamingCmd struct {
	Date    string `help:"Date to check (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	DayType string `help:"Check under this day type instead of the recorded one." name:"day-type"`
}

func (c *GamingCmd) Run(ctx *Context) error {
	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	dayType, err := ctx.dayTypeFor(date, c.DayType)
	if err != nil {
		return err
	}

	gate, err := ctx.Tracker.GamingStatus(date, dayType)
	if err != nil {
		return err
	}
	ctx.printf("Gaming: %s\n", gate)
	if gate == models.GamingLocked {
		ctx.printf("  Complete %s to unlock.\n", models.HabitFocusedWork)
	}
	return nil
}

func habitLine(habit models.HabitID, records []models.CompletionRecord) string {
	for _, r := range records {
		if r.Habit != habit {
			continue
		}
		if r.Completed {
			return "[x] " + string(habit)
		}
		if r.MissReason != models.MissReasonNone {
			return "[ ] " + string(habit) + "  (missed: " + string(r.MissReason) + ")"
		}
		return "[ ] " + string(habit)
	}
	return "[-] " + string(habit)
}
