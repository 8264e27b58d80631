package models

// TimeSlot is one fixed-width cell of the booking grid.
type TimeSlot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// SelectedSlot is a slot the user has picked for one court on one date.
// It lives only inside a selection session.
type SelectedSlot struct {
	CourtID   int    `json:"courtId"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Matches reports whether the entry refers to the same grid cell.
func (s SelectedSlot) Matches(courtID int, slot TimeSlot) bool {
	return s.CourtID == courtID && s.StartTime == slot.Start && s.EndTime == slot.End
}

// MergedRange is one or more contiguous selected slots coalesced into a
// single interval.
type MergedRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SlotState is the render state of a grid cell. The states are mutually
// exclusive; precedence is booked > past > selected > available.
type SlotState string

const (
	SlotBooked    SlotState = "booked"
	SlotSelected  SlotState = "selected"
	SlotPast      SlotState = "past"
	SlotAvailable SlotState = "available"
)

// Disabled reports whether a cell in this state accepts clicks.
func (s SlotState) Disabled() bool {
	return s == SlotBooked || s == SlotPast
}
