package models

import "encoding/json"

// CourtGroup is a venue holding one or more individually bookable courts.
type CourtGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullAddress string `json:"fullAddress"`
	OpenTime    string `json:"openTime"`  // "HH:MM"
	CloseTime   string `json:"closeTime"` // "HH:MM"
}

// Court is one bookable court inside a group, as delivered by a per-date snapshot.
type Court struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Bookings []Booking   `json:"bookings"`
	Prices   []PriceTier `json:"prices"`
}

// Booking is an existing reservation, read-only to this service.
type Booking struct {
	ID          int    `json:"id"`
	StartTime   string `json:"startTime"` // "HH:MM"
	EndTime     string `json:"endTime"`
	BookingDate string `json:"bookingDate"` // "YYYY-MM-DD"
	TotalPrice  int    `json:"totalPrice"`
}

// PriceTier prices a sub-interval of the day.
type PriceTier struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int    `json:"price"`
}

// GroupSnapshot is the normalized per-(group, date) booking and pricing state.
// CourtGroupID and Date echo the request parameters so consumers can discard
// responses that no longer match their current scope.
type GroupSnapshot struct {
	CourtGroupID string  `json:"courtGroupId"`
	GroupName    string  `json:"groupName"`
	FullAddress  string  `json:"fullAddress"`
	Date         string  `json:"date"` // "YYYY-MM-DD"
	Courts       []Court `json:"courts"`
}

// CourtByID returns the court with the given id, or nil when the snapshot
// does not contain it.
func (s *GroupSnapshot) CourtByID(id int) *Court {
	for i := range s.Courts {
		if s.Courts[i].ID == id {
			return &s.Courts[i]
		}
	}
	return nil
}

// NormalizeDate reduces an ISO datetime (or already plain date) to "YYYY-MM-DD".
func NormalizeDate(d string) string {
	if len(d) > 10 {
		return d[:10]
	}
	return d
}

// The court API has shipped both snake_case and camelCase field names across
// versions. Normalization happens here, once, so nothing downstream ever
// branches on the wire shape.

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// UnmarshalJSON accepts both startTime/endTime/bookingDate and the legacy
// start_time/end_time/booking_date variants.
func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int    `json:"id"`
		StartTime   string `json:"startTime"`
		EndTime     string `json:"endTime"`
		BookingDate string `json:"bookingDate"`
		TotalPrice  int    `json:"totalPrice"`

		LegacyStart string `json:"start_time"`
		LegacyEnd   string `json:"end_time"`
		LegacyDate  string `json:"booking_date"`
		LegacyPrice int    `json:"total_price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = raw.ID
	b.StartTime = firstNonEmpty(raw.StartTime, raw.LegacyStart)
	b.EndTime = firstNonEmpty(raw.EndTime, raw.LegacyEnd)
	b.BookingDate = NormalizeDate(firstNonEmpty(raw.BookingDate, raw.LegacyDate))
	b.TotalPrice = firstNonZero(raw.TotalPrice, raw.LegacyPrice)
	return nil
}

// UnmarshalJSON accepts both startTime/endTime and start_time/end_time.
func (p *PriceTier) UnmarshalJSON(data []byte) error {
	var raw struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Price     int    `json:"price"`

		LegacyStart string `json:"start_time"`
		LegacyEnd   string `json:"end_time"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.StartTime = firstNonEmpty(raw.StartTime, raw.LegacyStart)
	p.EndTime = firstNonEmpty(raw.EndTime, raw.LegacyEnd)
	p.Price = raw.Price
	return nil
}
