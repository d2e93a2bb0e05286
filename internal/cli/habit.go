package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayrail/internal/models"
)

type HabitCmd struct {
	Mark   HabitMarkCmd   `cmd:"" help:"Mark a habit as done today."`
	Unmark HabitUnmarkCmd `cmd:"" help:"Mark a habit as not done today."`
	Miss   HabitMissCmd   `cmd:"" help:"Record why a habit was missed today."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit checklist." default:"1"`
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name, e.g. \"Focused Work\" or focused-work."`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(c.Name)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker.RecordCompletion(habit, true, models.MissReasonNone)
	if err != nil {
		return err
	}
	ctx.printf("✓ %s done for %s\n", rec.Habit, rec.Date)
	return printGate(ctx)
}

type HabitUnmarkCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitUnmarkCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(c.Name)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker.RecordCompletion(habit, false, models.MissReasonNone)
	if err != nil {
		return err
	}
	ctx.printf("%s not done for %s\n", rec.Habit, rec.Date)
	return printGate(ctx)
}

type HabitMissCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Reason string `help:"Why it was missed: Time, Energy or Distraction. Prompts when omitted."`
}

func (c *HabitMissCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(c.Name)
	if err != nil {
		return err
	}

	reason := c.Reason
	if reason == "" {
		if !isTerminal(ctx) {
			return errors.New("--reason is required when not running in a terminal")
		}
		if reason, err = promptMissReason(habit); err != nil {
			return err
		}
	}
	parsed, err := models.ParseMissReason(reason)
	if err != nil {
		return err
	}

	rec, err := ctx.Tracker.RecordCompletion(habit, false, parsed)
	if err != nil {
		return err
	}
	ctx.printf("%s missed for %s (%s)\n", rec.Habit, rec.Date, rec.MissReason)
	return printGate(ctx)
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	snap, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	records, err := ctx.Tracker.Records(snap.Date)
	if err != nil {
		return err
	}

	ctx.printf("Today's Progress: %d/%d  (%s, %s)\n\n", snap.Completed, len(models.CoreHabits), snap.Date, snap.DayType)
	for _, habit := range models.CoreHabits {
		ctx.printf("  %s\n", habitLine(habit, records))
	}
	ctx.printf("\nStatus: %s   Gaming: %s\n", snap.Status, snap.Gaming)
	return nil
}

// printGate re-reads today's gate after a mutation
func printGate(ctx *Context) error {
	dayType, err := ctx.Tracker.DayType()
	if err != nil {
		return err
	}
	gate, err := ctx.Tracker.GamingStatus(ctx.Tracker.Date(), dayType)
	if err != nil {
		return err
	}
	ctx.printf("Gaming: %s\n", gate)
	return nil
}

func promptMissReason(habit models.HabitID) (string, error) {
	var reason string
	options := make([]huh.Option[string], 0, len(models.MissReasons))
	for _, r := range models.MissReasons {
		options = append(options, huh.NewOption(string(r), string(r)))
	}

	err := huh.NewSelect[string]().
		Title(fmt.Sprintf("Why was %s missed?", habit)).
		Options(options...).
		Value(&reason).
		Run()
	if err != nil {
		return "", err
	}
	return reason, nil
}

// isTerminal reports whether prompts can be shown
func isTerminal(ctx *Context) bool {
	f, ok := ctx.in().(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
