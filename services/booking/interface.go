package booking

import (
	"context"
	"time"

	"courtside/models"
)

// CourtAPI is the boundary to the remote court service. It is the source of
// truth for venues, reservations and prices; this service never arbitrates
// booking conflicts locally.
type CourtAPI interface {
	GetCourtGroup(ctx context.Context, courtGroupID string) (*models.CourtGroup, error)
	FetchBookingData(ctx context.Context, courtGroupID, date string) (*models.GroupSnapshot, error)
	GetBookingConfirmation(ctx context.Context, req models.ConfirmationRequest) (*models.ConfirmationResult, error)
}

// SessionRepo is the slice of the session store the confirmation flow needs.
type SessionRepo interface {
	Get(ctx context.Context, sessionID string) (*SelectionSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionManager is the full selection-session surface the HTTP layer uses.
type SessionManager interface {
	SessionRepo
	Create(ctx context.Context, courtGroupID, date string) (*SelectionSession, error)
	Retarget(ctx context.Context, sessionID, courtGroupID, date string) (*SelectionSession, error)
	ToggleSlot(ctx context.Context, sessionID string, courtID int, slot models.TimeSlot) (*SelectionSession, error)
}

// GridService assembles the per-date booking grid a storefront renders from.
type GridService interface {
	BuildGrid(ctx context.Context, courtGroupID, date string, session *SelectionSession, now time.Time) (*BookingGrid, error)
}

// ConfirmationService turns a validated selection session into a pending
// booking payload for the payment stage.
type ConfirmationService interface {
	Confirm(ctx context.Context, sessionID, userID string) (*models.ConfirmationPayload, time.Time, error)
}

// ExpiryScheduler queues the countdown that cancels a pending booking whose
// payment never arrives.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, deadline time.Time) error
}
