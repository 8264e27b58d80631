package booking

import (
	"time"

	"courtside/models"
)

// IsBooked reports whether the slot collides with an existing reservation on
// the given date. Only the slot's start boundary is tested: the slot counts
// as booked when its start falls inside a reservation's half-open
// [start, end) interval, even if the slot's own end extends past it.
func IsBooked(bookings []models.Booking, slot models.TimeSlot, date string) bool {
	day := models.NormalizeDate(date)
	for _, b := range bookings {
		if models.NormalizeDate(b.BookingDate) != day {
			continue
		}
		if slot.Start >= b.StartTime && slot.Start < b.EndTime {
			return true
		}
	}
	return false
}

// IsPastSlot reports whether the slot's start, combined with the given date,
// lies strictly before now. For future dates this is always false.
func IsPastSlot(slot models.TimeSlot, date string, now time.Time) bool {
	day, err := time.ParseInLocation("2006-01-02", models.NormalizeDate(date), now.Location())
	if err != nil {
		return false
	}
	min, ok := parseClock(slot.Start)
	if !ok {
		return false
	}
	return day.Add(time.Duration(min) * time.Minute).Before(now)
}

// Classify resolves the single render state of a grid cell. Booked wins over
// everything; a past slot stays past even if it lingers in the working set;
// selected only applies to otherwise-available slots.
func Classify(slot models.TimeSlot, courtID int, bookings []models.Booking, selected []models.SelectedSlot, date string, now time.Time) models.SlotState {
	switch {
	case IsBooked(bookings, slot, date):
		return models.SlotBooked
	case IsPastSlot(slot, date, now):
		return models.SlotPast
	case isSelected(selected, courtID, slot):
		return models.SlotSelected
	default:
		return models.SlotAvailable
	}
}

func isSelected(selected []models.SelectedSlot, courtID int, slot models.TimeSlot) bool {
	for _, s := range selected {
		if s.Matches(courtID, slot) {
			return true
		}
	}
	return false
}
