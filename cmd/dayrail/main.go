package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayrail/internal/cli"
	"github.com/julianstephens/dayrail/internal/config"
	"github.com/julianstephens/dayrail/internal/constants"
	apperrors "github.com/julianstephens/dayrail/internal/errors"
	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/internal/storage/memory"
	"github.com/julianstephens/dayrail/internal/storage/postgres"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Config file path." type:"path" default:"~/.config/dayrail/config.yaml"`
	Database  string `help:"Override the database from the config file. SQLite path or PostgreSQL URL without a password."`
	Debug     bool   `help:"Enable debug logging."`
	Ephemeral bool   `help:"Use an in-memory ledger that is discarded on exit."`

	Init      cli.InitCmd     `cmd:"" help:"Initialize dayrail storage and config."`
	Tui       cli.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Now       cli.NowCmd      `cmd:"" help:"Show the current scheduled activity."`
	Status    cli.StatusCmd   `cmd:"" help:"Show the day status."`
	Gaming    cli.GamingCmd   `cmd:"" help:"Show whether gaming is unlocked."`
	Habit     cli.HabitCmd    `cmd:"" help:"Record habit completions."`
	DayType   cli.DayTypeCmd  `cmd:"" name:"day-type" help:"Show or change today's day type."`
	Week      cli.WeekCmd     `cmd:"" help:"Show the trailing 7-day completion report."`
	History   cli.HistoryCmd  `cmd:"" help:"Show daily completion rates."`
	Schedule  cli.ScheduleCmd `cmd:"" help:"Show or check the schedule tables."`
	Export    cli.ExportCmd   `cmd:"" help:"Export the ledger as CSV."`
	Backup    cli.BackupCmd   `cmd:"" help:"Manage ledger backups."`
	ConfigCmd cli.ConfigCmd   `cmd:"" name:"config" help:"Manage configuration and credentials."`
	Doctor    cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd  cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// skipLoad lists commands that run before, or without, a usable ledger
var skipLoad = []string{
	"init",
	"doctor",
	"config set-connection",
	"config delete-connection",
	"debug db-path",
}

func needsLedger(command string) bool {
	for _, prefix := range skipLoad {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily schedule and habit-compliance tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Database != "" {
		if postgres.IsConnString(CLI.Database) {
			if err := postgres.ValidateConnString(CLI.Database); err != nil {
				apperrors.Fatal(err)
			}
		}
		cfg.Database = CLI.Database
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	command := ctx.Command()
	if err := logger.Init(logger.Options{
		Debug:  cfg.Debug,
		LogDir: cfg.LogPath(),
		Format: cfg.LogFormat,
		Quiet:  strings.HasPrefix(command, "tui"),
	}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Starting", "version", constants.Version, "command", command, "config", cfg.Path())

	var store storage.Provider
	if CLI.Ephemeral {
		store = memory.New()
	} else {
		store, err = cli.OpenStore(cfg)
		if err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if needsLedger(command) {
		if err := store.Load(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	tr, err := cli.NewTracker(store, cfg)
	if err != nil {
		store.Close()
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:   store,
		Tracker: tr,
		Config:  cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
