package cli

import (
	"errors"
	"strings"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/tracker"
	"github.com/julianstephens/dayrail/internal/utils"
)

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *Context) error {
	report, err := ctx.Tracker.WeeklyAnalytics(ctx.Tracker.Now())
	if errors.Is(err, tracker.ErrNoData) {
		ctx.printf("No data for %s to %s yet.\n", report.StartDay, report.EndDay)
		return nil
	}
	if err != nil {
		return err
	}

	ctx.printf("Weekly Analytics (%s to %s)\n\n", report.StartDay, report.EndDay)
	ctx.printf("  %-16s %6s %6s %7s\n", "Habit", "Done", "Total", "Rate")
	for _, s := range report.Habits {
		ctx.printf("  %-16s %6d %6d %6.1f%%\n", s.Habit, s.Completed, s.Total, s.Pct)
	}
	return nil
}

type HistoryCmd struct {
	Days int `help:"Number of days to include, ending today." default:"30"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	days := c.Days
	if days < 1 {
		days = constants.DefaultHistoryDays
	}
	from, to := utils.DateWindow(ctx.Tracker.Now(), days)

	rates, err := ctx.Tracker.DailyRates(from, to)
	if err != nil {
		return err
	}
	if len(rates) == 0 {
		ctx.printf("No records between %s and %s.\n", from, to)
		return nil
	}

	ctx.printf("Completion Over Time (%s to %s)\n\n", from, to)
	for _, r := range rates {
		bar := strings.Repeat("█", int(r.Rate/10+0.5))
		ctx.printf("  %s  %3d/%-3d %5.1f%%  %s\n", r.Date, r.Completed, r.Recorded, r.Rate, bar)
	}
	return nil
}
