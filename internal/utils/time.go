package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayrail/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// FormatDate returns the YYYY-MM-DD form of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
// "24:00" is accepted and maps to the end of the day.
func ParseTimeToMinutes(timeStr string) (int, error) {
	if timeStr == constants.EndOfDay {
		return constants.MinutesPerDay, nil
	}
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SecondOfDay returns the number of seconds elapsed since midnight for t's wall clock.
func SecondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// DateWindow returns the first and last date strings of the window of n calendar
// days ending on now's date, inclusive.
func DateWindow(now time.Time, n int) (string, string) {
	if n < 1 {
		n = 1
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -(n - 1))
	return FormatDate(start), FormatDate(end)
}

// DatesBetween lists every date from startDay to endDay inclusive.
func DatesBetween(startDay, endDay string) ([]string, error) {
	start, err := time.Parse(constants.DateFormat, startDay)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse(constants.DateFormat, endDay)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDate(d))
	}
	return days, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
