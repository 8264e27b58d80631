package upstream

import (
	"context"
	"net/http"
	"net/url"

	"courtside/models"
)

// rawGroup tolerates both naming generations of the court-group endpoint.
type rawGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullAddress string `json:"fullAddress"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`

	LegacyID      string `json:"_id"`
	LegacyAddress string `json:"full_address"`
	LegacyOpen    string `json:"open_time"`
	LegacyClose   string `json:"close_time"`
}

// GetCourtGroup loads a venue's static info (name, address, operating hours).
func (c *Client) GetCourtGroup(ctx context.Context, courtGroupID string) (*models.CourtGroup, error) {
	var raw rawGroup
	if err := c.do(ctx, http.MethodGet, "/court-groups/"+courtGroupID, nil, nil, &raw); err != nil {
		return nil, err
	}
	group := &models.CourtGroup{
		ID:          raw.ID,
		Name:        raw.Name,
		FullAddress: raw.FullAddress,
		OpenTime:    raw.OpenTime,
		CloseTime:   raw.CloseTime,
	}
	if group.ID == "" {
		group.ID = raw.LegacyID
	}
	if group.FullAddress == "" {
		group.FullAddress = raw.LegacyAddress
	}
	if group.OpenTime == "" {
		group.OpenTime = raw.LegacyOpen
	}
	if group.CloseTime == "" {
		group.CloseTime = raw.LegacyClose
	}
	return group, nil
}

// rawSnapshot tolerates both bookingCourts and booking_courts. Court,
// Booking and PriceTier normalization lives on the model types themselves.
type rawSnapshot struct {
	Name               string         `json:"name"`
	FullAddress        string         `json:"fullAddress"`
	BookingCourts      []models.Court `json:"bookingCourts"`
	LegacyCourtsField  []models.Court `json:"booking_courts"`
	LegacyAddressField string         `json:"full_address"`
}

// FetchBookingData loads the per-date booking and pricing snapshot for a
// court group. The returned snapshot echoes the requested (group, date) pair
// so callers can discard responses that no longer match their scope.
func (c *Client) FetchBookingData(ctx context.Context, courtGroupID, date string) (*models.GroupSnapshot, error) {
	date = models.NormalizeDate(date)
	query := url.Values{"date": {date}}

	var raw rawSnapshot
	path := "/court-groups/court-group/" + courtGroupID + "/data"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}

	courts := raw.BookingCourts
	if len(courts) == 0 {
		courts = raw.LegacyCourtsField
	}
	address := raw.FullAddress
	if address == "" {
		address = raw.LegacyAddressField
	}
	return &models.GroupSnapshot{
		CourtGroupID: courtGroupID,
		GroupName:    raw.Name,
		FullAddress:  address,
		Date:         date,
		Courts:       courts,
	}, nil
}

// GetBookingConfirmation asks the court API to enrich a pending booking.
// Callers treat failures as non-fatal.
func (c *Client) GetBookingConfirmation(ctx context.Context, req models.ConfirmationRequest) (*models.ConfirmationResult, error) {
	var result models.ConfirmationResult
	if err := c.do(ctx, http.MethodPost, "/bookings/confirmation", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
