package constants

const (
	// Config keys held by the storage provider
	SettingDayType  = "day_type"
	SettingTimezone = "timezone"

	// Default values
	DefaultDayType  = DayTypeCollege
	DefaultTimezone = "Local" // Use system local timezone by default
)
