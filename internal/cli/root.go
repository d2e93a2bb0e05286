package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/dayrail/internal/backup"
	"github.com/julianstephens/dayrail/internal/config"
	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/keyring"
	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/internal/storage/postgres"
	"github.com/julianstephens/dayrail/internal/storage/sqlite"
	"github.com/julianstephens/dayrail/internal/tracker"
	"github.com/julianstephens/dayrail/internal/utils"
)

// ErrNoBackups is returned by backup commands when the ledger is not a SQLite file
var ErrNoBackups = errors.New("backups are only available for SQLite ledgers")

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Config  *config.Config
	Out     io.Writer
	In      io.Reader
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// OpenStore picks the storage backend named by cfg.Database
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	database := cfg.DatabasePath()
	if cfg.UsesKeyring() {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("database is set to %q: %w", constants.KeyringDatabase, err)
		}
		database = connStr
	}
	if postgres.IsConnString(database) || strings.Contains(database, "host=") {
		return postgres.New(database), nil
	}
	return sqlite.New(database), nil
}

// NewTracker builds the tracker with a clock in the effective timezone: the
// DAYRAIL_TIMEZONE override, else the stored setting, else the config file.
func NewTracker(store storage.Provider, cfg *config.Config) (*tracker.Tracker, error) {
	tz := cfg.Timezone
	if os.Getenv(constants.EnvTimezone) == "" {
		stored, err := store.GetConfig(constants.SettingTimezone)
		switch {
		case err == nil && stored != "":
			tz = stored
		case err != nil && !errors.Is(err, storage.ErrConfigNotFound) && !errors.Is(err, storage.ErrNotInitialized):
			return nil, fmt.Errorf("failed to read timezone: %w", err)
		}
	}

	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return tracker.New(store, nil, tracker.SystemClock{Location: loc}), nil
}

// backupManager returns a manager for file-backed ledgers
func (c *Context) backupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrNoBackups
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup backs up a SQLite ledger and only logs failures
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.backupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// resolveDate accepts YYYY-MM-DD, "today", "yesterday" or "" (today)
func (c *Context) resolveDate(s string) (string, error) {
	now := c.Tracker.Now()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return utils.FormatDate(now), nil
	case "yesterday":
		return utils.FormatDate(now.AddDate(0, 0, -1)), nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD, 'today' or 'yesterday')", s)
	}
	return s, nil
}

// dayTypeFor returns the rule to judge date by: an explicit override, the
// current selection for today, or the day type recorded on a past date.
func (c *Context) dayTypeFor(date, override string) (models.DayType, error) {
	if override != "" {
		return tracker.ParseDayType(override)
	}
	if date == c.Tracker.Date() {
		return c.Tracker.DayType()
	}
	return c.Tracker.RecordedDayType(date)
}

// resolveHabit matches a habit by name, case-insensitively, or by its
// hyphenated slug ("focused-work").
func resolveHabit(s string) (models.HabitID, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, h := range models.CoreHabits {
		name := strings.ToLower(string(h))
		if norm == name || norm == strings.ReplaceAll(name, " ", "-") {
			return h, nil
		}
	}
	return models.ParseHabit(s)
}
