package models

import (
	"encoding/json"
	"time"
)

// Booking lifecycle states as the court API reports them.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// ConfirmationPayload is the locally-assembled summary of a pending booking,
// handed to the payment stage. It is immutable once built; a new submit
// builds a new payload.
type ConfirmationPayload struct {
	BookingID    string        `json:"bookingId"`
	UserID       string        `json:"userId,omitempty"`
	CourtGroupID string        `json:"courtGroupId"`
	CourtID      int           `json:"courtId"`
	CourtName    string        `json:"courtName"`
	FullAddress  string        `json:"fullAddress"`
	BookingDate  string        `json:"bookingDate"`
	TimeSlots    []MergedRange `json:"timeSlots"`
	TotalPrice   int           `json:"totalPrice"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ConfirmationRequest is the optional enrichment call to the court API.
type ConfirmationRequest struct {
	CourtGroupID  string        `json:"courtGroupId"`
	CourtID       int           `json:"courtId"`
	Date          string        `json:"date"`
	SelectedSlots []MergedRange `json:"selectedSlots"`
}

// ConfirmationResult is the court API's enriched view of a pending booking.
// Older deployments answer in snake_case.
type ConfirmationResult struct {
	BookingID   string        `json:"bookingId"`
	CourtName   string        `json:"courtName"`
	FullAddress string        `json:"fullAddress"`
	BookingDate string        `json:"bookingDate"`
	TimeSlots   []MergedRange `json:"timeSlots"`
	TotalPrice  int           `json:"totalPrice"`
}

func (r *ConfirmationResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		BookingID   string        `json:"bookingId"`
		CourtName   string        `json:"courtName"`
		FullAddress string        `json:"fullAddress"`
		BookingDate string        `json:"bookingDate"`
		TimeSlots   []MergedRange `json:"timeSlots"`
		TotalPrice  int           `json:"totalPrice"`

		LegacyBookingID   string `json:"booking_id"`
		LegacyCourtName   string `json:"court_name"`
		LegacyFullAddress string `json:"full_address"`
		LegacyBookingDate string `json:"booking_date"`
		LegacyTimeSlots   []struct {
			StartTime string `json:"start_time"`
			EndTime   string `json:"end_time"`
		} `json:"time_slots"`
		LegacyTotalPrice int `json:"total_price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.BookingID = firstNonEmpty(raw.BookingID, raw.LegacyBookingID)
	r.CourtName = firstNonEmpty(raw.CourtName, raw.LegacyCourtName)
	r.FullAddress = firstNonEmpty(raw.FullAddress, raw.LegacyFullAddress)
	r.BookingDate = NormalizeDate(firstNonEmpty(raw.BookingDate, raw.LegacyBookingDate))
	r.TotalPrice = firstNonZero(raw.TotalPrice, raw.LegacyTotalPrice)
	r.TimeSlots = raw.TimeSlots
	if len(r.TimeSlots) == 0 {
		for _, s := range raw.LegacyTimeSlots {
			r.TimeSlots = append(r.TimeSlots, MergedRange{StartTime: s.StartTime, EndTime: s.EndTime})
		}
	}
	return nil
}

// PaymentInfo describes how to settle a pending booking and when it expires.
type PaymentInfo struct {
	BookingID     string    `json:"bookingId"`
	TotalPrice    int       `json:"totalPrice"`
	BankAccount   string    `json:"bankAccount"`
	BankName      string    `json:"bankName"`
	TransferNote  string    `json:"transferNote"`
	ExpiresAt     time.Time `json:"expiresAt"`
	ProofImageURL string    `json:"proofImageUrl,omitempty"`
}

// ExpirePayload is the asynq task body for the payment-countdown sweeper.
type ExpirePayload struct {
	BookingID string    `json:"bookingId"`
	Deadline  time.Time `json:"deadline"`
}
