package tracker

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/storage"
)

// DayType returns the selected day type. An unset selection is the default,
// not an error.
func (t *Tracker) DayType() (models.DayType, error) {
	value, err := t.store.GetConfig(constants.SettingDayType)
	if errors.Is(err, storage.ErrConfigNotFound) {
		return models.DayType(constants.DefaultDayType), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read day type: %w", err)
	}

	dayType := models.DayType(value)
	if !dayType.IsValid() {
		return "", fmt.Errorf("%w: stored value %q", ErrInvalidDayType, value)
	}
	return dayType, nil
}

// SetDayType persists the selection. Existing records keep the day type they
// were written under.
func (t *Tracker) SetDayType(dayType models.DayType) error {
	if !dayType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDayType, dayType)
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := t.store.SetConfig(constants.SettingDayType, string(dayType)); err != nil {
		return fmt.Errorf("failed to save day type: %w", err)
	}
	logger.Debug("Day type changed", "day_type", dayType)
	return nil
}

// ParseDayType accepts a day type name, case-sensitively, plus the short
// aliases "college" and "holiday".
func ParseDayType(s string) (models.DayType, error) {
	switch s {
	case "college":
		return models.DayTypeCollege, nil
	case "holiday":
		return models.DayTypeHoliday, nil
	}
	d := models.DayType(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayType, s)
	}
	return d, nil
}
