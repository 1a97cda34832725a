package timeutils

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimezone = errors.New("invalid timezone identifier")

const (
	// Date labels use the pt-BR short date format. Two users in different
	// timezones can map different instants to the same label, which is the
	// intended per-user wall-clock day identity.
	dateLabelLayout = "02/01/2006"
	timeLabelLayout = "15:04"

	// Last timezone to roll over into the next day. The end-of-day sweep
	// runs at 23:59 in this zone, when the date is over everywhere.
	LastTimezoneName = "Etc/GMT+12"
)

func loadLocation(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, timezone)
	}
	return loc, nil
}

// LocalDateLabel renders the calendar date of the given instant in the given
// IANA timezone as DD/MM/YYYY. Used as the date key of daily entries.
func LocalDateLabel(timezone string, at time.Time) (string, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return "", err
	}
	return at.In(loc).Format(dateLabelLayout), nil
}

// LocalTimeLabel renders the wall-clock time of the given instant in the
// given IANA timezone as zero-padded 24h "HH:MM".
func LocalTimeLabel(timezone string, at time.Time) (string, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return "", err
	}
	return at.In(loc).Format(timeLabelLayout), nil
}

// LocalWeekdayName returns the full English weekday name of the given
// instant in the given IANA timezone, to compare against a form's
// notifyDays.
func LocalWeekdayName(timezone string, at time.Time) (string, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return "", err
	}
	return at.In(loc).Weekday().String(), nil
}

// ParseDateLabel converts a DD/MM/YYYY label back into a UTC midnight
// instant, for date range comparisons over stored labels.
func ParseDateLabel(label string) (time.Time, error) {
	return time.ParseInLocation(dateLabelLayout, label, time.UTC)
}
