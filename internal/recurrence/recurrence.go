// Package recurrence computes the next occurrence of a repeating reminder.
// All functions are pure: no clock reads, no I/O.
package recurrence

import (
	"fmt"
	"time"

	"github.com/example/carebot/internal/models"
)

// Next returns the occurrence following base for the given repeat type and
// interval. The interval is a positive multiplier ("every 3 days"); values
// below 1 are treated as 1.
//
// Monthly addition preserves the day-of-month and time-of-day, carrying year
// overflow. When the target month is shorter than the source day-of-month
// (Jan 31 + 1 month), the day is clamped to the last valid day of the target
// month rather than rolling into the following month.
func Next(base time.Time, repeatType models.RepeatType, interval int) (time.Time, error) {
	if interval < 1 {
		interval = 1
	}

	switch repeatType {
	case models.RepeatHourly:
		return base.Add(time.Duration(interval) * time.Hour), nil
	case models.RepeatDaily:
		return base.AddDate(0, 0, interval), nil
	case models.RepeatWeekly:
		return base.AddDate(0, 0, interval*7), nil
	case models.RepeatMonthly:
		return addMonthsClamped(base, interval), nil
	case models.RepeatOnce:
		return time.Time{}, fmt.Errorf("recurrence: once reminders have no successor")
	default:
		return time.Time{}, fmt.Errorf("recurrence: unknown repeat type %q", repeatType)
	}
}

// NextAfter advances base by whole intervals until the result is strictly
// after ref. It returns base's first occurrence in the future of ref while
// keeping the chain phase-aligned with the requested time-of-day. If base is
// already after ref it is returned unchanged.
func NextAfter(base, ref time.Time, repeatType models.RepeatType, interval int) (time.Time, error) {
	next := base
	for !next.After(ref) {
		advanced, err := Next(next, repeatType, interval)
		if err != nil {
			return time.Time{}, err
		}
		next = advanced
	}
	return next, nil
}

func addMonthsClamped(t time.Time, months int) time.Time {
	monthIndex := int(t.Month()) - 1 + months
	year := t.Year() + monthIndex/12
	month := time.Month(monthIndex%12 + 1)

	day := t.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
