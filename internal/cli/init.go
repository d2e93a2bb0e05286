package cli

import (
	"github.com/julianstephens/dayrail/internal/config"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if ctx.Config != nil && ctx.Config.Path() != "" {
		created, err := config.EnsureFile(ctx.Config.Path())
		if err != nil {
			return err
		}
		if created {
			ctx.printf("Wrote default config: %s\n", ctx.Config.Path())
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized dayrail storage at: %s\n", ctx.Store.GetConfigPath())

	dayType, err := ctx.Tracker.DayType()
	if err != nil {
		return err
	}
	ctx.printf("Day type: %s\n", dayType)
	return nil
}
