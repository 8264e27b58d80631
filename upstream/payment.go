package upstream

import (
	"context"
	"net/http"

	"courtside/models"
)

// Payment lifecycle calls, used by the payment page flow and the expiry
// worker. The court API owns all payment state; these are thin passthroughs.

// ConfirmBooking marks a booking confirmed after payment was verified.
func (c *Client) ConfirmBooking(ctx context.Context, bookingID string) error {
	return c.do(ctx, http.MethodPost, "/bookings/"+bookingID+"/confirm", nil, nil, nil)
}

// GetPaymentInfo returns transfer details and the countdown deadline for a
// pending booking.
func (c *Client) GetPaymentInfo(ctx context.Context, bookingID string) (*models.PaymentInfo, error) {
	var info models.PaymentInfo
	if err := c.do(ctx, http.MethodGet, "/bookings/"+bookingID+"/payment-info", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ConfirmPayment submits the user's proof-of-payment for a pending booking.
func (c *Client) ConfirmPayment(ctx context.Context, bookingID, proofImageURL string) error {
	body := map[string]string{"proofImageUrl": proofImageURL}
	return c.do(ctx, http.MethodPost, "/bookings/"+bookingID+"/confirm-payment", nil, body, nil)
}

// CancelExpired cancels a pending booking whose payment window has elapsed.
func (c *Client) CancelExpired(ctx context.Context, bookingID string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+bookingID+"/cancel-expired", nil, nil, nil)
}
