package booking

import (
	"sort"

	"courtside/models"
)

// Toggle flips a grid cell in the working set: an entry matching the same
// (court, start, end) is removed, otherwise a new one is added. Returns the
// updated set.
func Toggle(slots []models.SelectedSlot, courtID int, slot models.TimeSlot, date string) []models.SelectedSlot {
	for i, s := range slots {
		if s.Matches(courtID, slot) {
			return append(slots[:i:i], slots[i+1:]...)
		}
	}
	return append(slots, models.SelectedSlot{
		CourtID:   courtID,
		Date:      models.NormalizeDate(date),
		StartTime: slot.Start,
		EndTime:   slot.End,
	})
}

func sortedByStart(slots []models.SelectedSlot) []models.SelectedSlot {
	sorted := make([]models.SelectedSlot, len(slots))
	copy(sorted, slots)
	// Lexicographic order on "HH:MM" equals chronological order within a day.
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })
	return sorted
}

// MergeSlots sorts the selection by start time and coalesces adjacent slots
// where one ends exactly where the next begins. Input order is irrelevant.
func MergeSlots(slots []models.SelectedSlot) []models.MergedRange {
	if len(slots) == 0 {
		return nil
	}
	sorted := sortedByStart(slots)

	merged := []models.MergedRange{{StartTime: sorted[0].StartTime, EndTime: sorted[0].EndTime}}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.EndTime == s.StartTime {
			last.EndTime = s.EndTime
		} else {
			merged = append(merged, models.MergedRange{StartTime: s.StartTime, EndTime: s.EndTime})
		}
	}
	return merged
}

// ValidateForSubmit enforces the submit invariants on a working set: at least
// one slot, a single court, and a gap-free run of slots. On success it
// returns the coalesced ranges for the confirmation step. On failure the set
// is left untouched so the user can correct it.
func ValidateForSubmit(slots []models.SelectedSlot) ([]models.MergedRange, error) {
	if len(slots) == 0 {
		return nil, &ValidationError{Code: CodeEmptySelection, Message: "no slots selected"}
	}

	courtID := slots[0].CourtID
	for _, s := range slots[1:] {
		if s.CourtID != courtID {
			return nil, NewMultipleCourtsError()
		}
	}

	sorted := sortedByStart(slots)
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].EndTime != sorted[i+1].StartTime {
			return nil, NewNonContiguousError()
		}
	}

	return MergeSlots(sorted), nil
}
