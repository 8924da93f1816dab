package utils

import (
	"time"

	"memberclub-rental/internal/domain"
)

const (
	openingHour = 8
	closingHour = 20
)

// ReturnBy computes the business-hours deadline printed on receipts.
// Daily rentals are due at closing time on the last day. Hourly rentals that
// fall outside opening hours move to the next opening, with minutes rounded
// to the nearest quarter hour.
func ReturnBy(now time.Time, duration int, unit domain.RentalUnit) time.Time {
	if unit == domain.RentalUnitDaily {
		d := now.AddDate(0, 0, duration)
		return time.Date(d.Year(), d.Month(), d.Day(), closingHour, 0, 0, 0, now.Location())
	}

	t := now.Add(time.Duration(duration) * time.Hour)
	hour := t.Hour()
	switch {
	case hour >= closingHour:
		next := t.AddDate(0, 0, 1)
		return quarterHour(next, openingHour+(hour-closingHour), t.Minute())
	case hour < openingHour:
		return quarterHour(t, openingHour, t.Minute())
	default:
		return t
	}
}

func quarterHour(day time.Time, hour, minute int) time.Time {
	minute = (minute + 7) / 15 * 15
	if minute == 60 {
		minute = 0
		hour++
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
