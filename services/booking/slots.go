package booking

import (
	"fmt"

	"courtside/models"
)

// SlotWidthMinutes is the fixed width of every grid cell. Venues cannot
// override it.
const SlotWidthMinutes = 30

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(t string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(t, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// GenerateTimeSlots produces the fixed-width time grid between a venue's open
// and close times. A final partial slot that would extend past the close time
// is truncated away; open == close yields no slots. Same inputs always yield
// the same sequence.
func GenerateTimeSlots(openTime, closeTime string) []models.TimeSlot {
	open, ok := parseClock(openTime)
	if !ok {
		return nil
	}
	close, ok := parseClock(closeTime)
	if !ok {
		return nil
	}

	var slots []models.TimeSlot
	for cur := open; cur+SlotWidthMinutes <= close; cur += SlotWidthMinutes {
		slots = append(slots, models.TimeSlot{
			Start: formatClock(cur),
			End:   formatClock(cur + SlotWidthMinutes),
		})
	}
	return slots
}
