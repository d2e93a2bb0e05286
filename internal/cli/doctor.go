package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/keyring"
	"github.com/julianstephens/dayrail/internal/storage"
)

var listProcesses = ps.Processes

// schemaReporter is implemented by the SQL-backed stores
type schemaReporter interface {
	SchemaStatus() (version int, pending int, err error)
}

type DoctorCmd struct{}

type checkLevel int

const (
	checkOK checkLevel = iota
	checkWarn
	checkFail
	checkSkip
)

type check struct {
	name         string
	needsStorage bool
	run          func(ctx *Context) (checkLevel, string)
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	checks := []check{
		{"Keyring", false, checkKeyring},
		{"Storage reachable", false, checkStorage},
		{"Schema version", true, checkSchema},
		{"Ledger records", true, checkLedger},
		{"Day type", true, checkDayType},
		{"Backups present", true, checkBackups},
		{"Schedule coverage", false, checkScheduleCoverage},
		{"Single writer", false, checkSingleWriter},
		{"Clock/timezone", false, checkClock},
	}

	failed := 0
	storageOK := true
	for _, c := range checks {
		if c.needsStorage && !storageOK {
			ctx.printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		level, detail := c.run(ctx)
		switch level {
		case checkOK:
			ctx.printf("✓ %s: OK\n", c.name)
		case checkWarn:
			ctx.printf("⚠ %s: WARNING\n", c.name)
		case checkFail:
			ctx.printf("❌ %s: FAIL\n", c.name)
			failed++
			if c.name == "Storage reachable" {
				storageOK = false
			}
		case checkSkip:
			ctx.printf("⊘ %s: SKIPPED\n", c.name)
		}
		if detail != "" {
			ctx.printf("   %s\n", detail)
		}
	}

	ctx.println()
	if failed > 0 {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkStorage(ctx *Context) (checkLevel, string) {
	if err := ctx.Store.Load(); err != nil {
		return checkFail, err.Error()
	}
	if _, err := ctx.Store.GetConfig(constants.SettingDayType); err != nil && !errors.Is(err, storage.ErrConfigNotFound) {
		return checkFail, err.Error()
	}
	return checkOK, ctx.Store.GetConfigPath()
}

func checkSchema(ctx *Context) (checkLevel, string) {
	reporter, ok := ctx.Store.(schemaReporter)
	if !ok {
		return checkSkip, "store has no schema"
	}
	version, pending, err := reporter.SchemaStatus()
	if err != nil {
		return checkFail, err.Error()
	}
	if pending > 0 {
		return checkFail, fmt.Sprintf("version %d, %d migration(s) pending; run 'dayrail init'", version, pending)
	}
	return checkOK, fmt.Sprintf("version %d", version)
}

func checkLedger(ctx *Context) (checkLevel, string) {
	records, err := ctx.Store.ListCompletions(storage.CompletionFilter{})
	if err != nil {
		return checkFail, err.Error()
	}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return checkFail, fmt.Sprintf("%s/%s: %v", r.Date, r.Habit, err)
		}
		key := r.Date + "|" + string(r.Habit)
		if seen[key] {
			return checkFail, fmt.Sprintf("duplicate record for %s/%s", r.Date, r.Habit)
		}
		seen[key] = true
	}
	return checkOK, fmt.Sprintf("%d record(s)", len(records))
}

func checkDayType(ctx *Context) (checkLevel, string) {
	dayType, err := ctx.Tracker.DayType()
	if err != nil {
		return checkFail, err.Error()
	}
	return checkOK, string(dayType)
}

func checkScheduleCoverage(ctx *Context) (checkLevel, string) {
	results, err := checkSchedules(ctx.Tracker)
	if err != nil {
		return checkFail, err.Error()
	}
	var errs, gaps []string
	for _, result := range results {
		for _, c := range result.Errors() {
			errs = append(errs, c.Description)
		}
		for _, c := range result.Gaps() {
			gaps = append(gaps, c.Description)
		}
	}
	if len(errs) > 0 {
		return checkFail, strings.Join(errs, "\n   ")
	}
	if len(gaps) > 0 {
		return checkWarn, strings.Join(gaps, "\n   ")
	}
	return checkOK, ""
}

func checkBackups(ctx *Context) (checkLevel, string) {
	mgr, err := ctx.backupManager()
	if err != nil {
		return checkSkip, "not a SQLite ledger"
	}
	backups, err := mgr.List()
	if err != nil {
		return checkWarn, err.Error()
	}
	if len(backups) == 0 {
		return checkWarn, "no backups found; create one with 'dayrail backup create'"
	}
	return checkOK, fmt.Sprintf("%d backup(s), newest %s", len(backups), backups[0].Name())
}

func checkKeyring(ctx *Context) (checkLevel, string) {
	if ctx.Config == nil || !ctx.Config.UsesKeyring() {
		return checkSkip, "not used"
	}
	if !keyring.IsAvailable() {
		return checkFail, keyring.ErrKeyringUnavailable.Error()
	}
	return checkOK, ""
}

// checkSingleWriter warns when another dayrail process could be writing the ledger
func checkSingleWriter(ctx *Context) (checkLevel, string) {
	procs, err := listProcesses()
	if err != nil {
		return checkSkip, fmt.Sprintf("cannot list processes: %v", err)
	}
	self := os.Getpid()
	var others []string
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if isDayrailExecutable(p.Executable()) {
			others = append(others, fmt.Sprintf("%d", p.Pid()))
		}
	}
	if len(others) > 0 {
		return checkWarn, fmt.Sprintf("other dayrail process(es) running (pid %s); concurrent writes are not coordinated", strings.Join(others, ", "))
	}
	return checkOK, ""
}

func isDayrailExecutable(name string) bool {
	base := strings.TrimSuffix(filepath.Base(name), ".exe")
	return base == constants.AppName
}

func checkClock(ctx *Context) (checkLevel, string) {
	now := ctx.Tracker.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return checkFail, fmt.Sprintf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	name, offset := now.Zone()
	return checkOK, fmt.Sprintf("%s (%s, UTC%+03d:%02d), today is %s", now.Location(), name, offset/3600, abs(offset%3600)/60, ctx.Tracker.Date())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
