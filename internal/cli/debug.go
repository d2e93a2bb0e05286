package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dayrail/internal/models"
)

type DebugCmd struct {
	DBPath  DebugDBPathCmd  `cmd:"" name:"db-path" help:"Show the storage location."`
	DumpDay DebugDumpDayCmd `cmd:"" name:"dump-day" help:"Dump a day's ledger records and verdicts as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date to dump (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

type dayDump struct {
	Date    string                    `json:"date"`
	DayType models.DayType            `json:"day_type"`
	Status  models.DayStatus          `json:"status"`
	Gaming  models.GamingStatus       `json:"gaming"`
	Records []models.CompletionRecord `json:"records"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *Context) error {
	date, err := ctx.resolveDate(cmd.Date)
	if err != nil {
		return err
	}
	dayType, err := ctx.dayTypeFor(date, "")
	if err != nil {
		return err
	}

	dump := dayDump{Date: date, DayType: dayType, Records: []models.CompletionRecord{}}
	records, err := ctx.Tracker.Records(date)
	if err != nil {
		return err
	}
	dump.Records = append(dump.Records, records...)
	if dump.Status, err = ctx.Tracker.Status(date, dayType); err != nil {
		return err
	}
	if dump.Gaming, err = ctx.Tracker.GamingStatus(date, dayType); err != nil {
		return err
	}
	return ctx.printJSON(dump)
}

func (c *Context) printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}
