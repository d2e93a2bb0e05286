package cli

import (
	"github.com/julianstephens/dayrail/internal/tracker"
)

type DayTypeCmd struct {
	Show DayTypeShowCmd `cmd:"" help:"Show the current day type." default:"1"`
	Set  DayTypeSetCmd  `cmd:"" help:"Switch the day type (\"College Day\" or \"Holiday\")."`
}

type DayTypeShowCmd struct{}

func (c *DayTypeShowCmd) Run(ctx *Context) error {
	dayType, err := ctx.Tracker.DayType()
	if err != nil {
		return err
	}
	ctx.println(dayType)
	return nil
}

type DayTypeSetCmd struct {
	DayType string `arg:"" help:"\"College Day\", \"Holiday\", college or holiday."`
}

func (c *DayTypeSetCmd) Run(ctx *Context) error {
	dayType, err := tracker.ParseDayType(c.DayType)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Tracker.SetDayType(dayType); err != nil {
		return err
	}
	ctx.printf("Day type set to %s\n", dayType)

	status, err := ctx.Tracker.Status(ctx.Tracker.Date(), dayType)
	if err != nil {
		return err
	}
	ctx.printf("Today's status under this rule: %s\n", status)
	return nil
}
