package constants

import "time"

const (
	AppName            = "dayrail"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/dayrail"
	DefaultConfigPath  = "~/.config/dayrail/dayrail.db"
	ConfigFileName     = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// EndOfDay is the only accepted time past 23:59, used as an exclusive schedule bound
	EndOfDay = "24:00"

	// MinutesPerDay is the length of a schedule table
	MinutesPerDay = 24 * 60

	// WeeklyWindowDays is the number of calendar days covered by weekly analytics (today inclusive)
	WeeklyWindowDays = 7

	// DefaultHistoryDays is the default window of the history command
	DefaultHistoryDays = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayrail-"
	BackupFileSuffix = ".db"

	// KeyringDatabase as the database setting reads the connection string from the OS keyring
	KeyringDatabase = "keyring"

	// Environment overrides
	EnvDBConnection = "DAYRAIL_DB_CONNECTION"
	EnvTimezone     = "DAYRAIL_TIMEZONE"

	// TickInterval is how often the TUI re-resolves the schedule
	TickInterval = 30 * time.Second
)
