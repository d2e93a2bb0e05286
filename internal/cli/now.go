package cli

import (
	"github.com/julianstephens/dayrail/internal/constants"
)

type NowCmd struct{}

func (c *NowCmd) Run(ctx *Context) error {
	now := ctx.Tracker.Now()
	dayType, err := ctx.Tracker.DayType()
	if err != nil {
		return err
	}
	res, err := ctx.Tracker.Resolve(now)
	if err != nil {
		return err
	}

	ctx.printf("%s  (%s)\n", now.Format(constants.TimeFormat), dayType)
	if res.IsFallback() {
		ctx.printf("Now: %s (outside the schedule)\n", res.Activity)
		return nil
	}

	ctx.printf("Now: %s  %s-%s  (%d min left)\n", res.Activity, res.Entry.Start, res.Entry.End, res.MinutesRemaining)
	if res.Habit != "" {
		ctx.printf("Habit: %s\n", res.Habit)
	}
	return nil
}
