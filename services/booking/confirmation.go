package booking

import (
	"context"
	"time"

	"courtside/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultConfirmationService implements ConfirmationService. The payload is
// computed entirely locally; the court API's confirmation endpoint only
// enriches it and its failure never blocks the handoff to payment.
type DefaultConfirmationService struct {
	Sessions      SessionRepo
	API           CourtAPI
	Expiry        ExpiryScheduler
	PaymentWindow time.Duration
	Logger        *zap.Logger
}

// Confirm validates the session's working set, prices it, builds the pending
// payload and schedules the payment countdown. The session is consumed on
// success and left untouched on validation failure.
func (cs *DefaultConfirmationService) Confirm(ctx context.Context, sessionID, userID string) (*models.ConfirmationPayload, time.Time, error) {
	session, err := cs.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if session.Date == "" {
		return nil, time.Time{}, &ValidationError{Code: CodeNoDate, Message: "select a date before booking"}
	}

	merged, err := ValidateForSubmit(session.Slots)
	if err != nil {
		return nil, time.Time{}, err
	}
	courtID := session.Slots[0].CourtID

	group, err := cs.API.GetCourtGroup(ctx, session.CourtGroupID)
	if err != nil {
		return nil, time.Time{}, &FetchError{Op: "court group", Err: err}
	}
	snapshot, err := cs.API.FetchBookingData(ctx, session.CourtGroupID, session.Date)
	if err != nil {
		return nil, time.Time{}, &FetchError{Op: "booking data", Err: err}
	}
	if snapshot.CourtGroupID != session.CourtGroupID || snapshot.Date != session.Date {
		return nil, time.Time{}, &FetchError{Op: "booking data", Err: ErrStaleSnapshot}
	}

	courtName := ""
	if court := snapshot.CourtByID(courtID); court != nil {
		courtName = court.Name
	}

	now := time.Now()
	payload := &models.ConfirmationPayload{
		BookingID:    uuid.New().String(),
		UserID:       userID,
		CourtGroupID: session.CourtGroupID,
		CourtID:      courtID,
		CourtName:    courtName,
		FullAddress:  group.FullAddress,
		BookingDate:  session.Date,
		TimeSlots:    merged,
		TotalPrice:   CalculateTotal(session.Slots, snapshot.Courts),
		Status:       models.StatusPending,
		CreatedAt:    now,
	}

	// Optional enrichment round-trip. Fail-open: a dead confirmation endpoint
	// must not strand the user before payment.
	result, err := cs.API.GetBookingConfirmation(ctx, models.ConfirmationRequest{
		CourtGroupID:  session.CourtGroupID,
		CourtID:       courtID,
		Date:          session.Date,
		SelectedSlots: merged,
	})
	if err != nil {
		cs.Logger.Warn("confirmation enrichment failed, using locally-built payload",
			zap.String("courtGroupId", session.CourtGroupID), zap.Error(err))
	} else {
		if result.BookingID != "" {
			payload.BookingID = result.BookingID
		}
		if result.CourtName != "" {
			payload.CourtName = result.CourtName
		}
		if result.FullAddress != "" {
			payload.FullAddress = result.FullAddress
		}
		if result.TotalPrice != 0 {
			payload.TotalPrice = result.TotalPrice
		}
	}

	deadline := now.Add(cs.PaymentWindow)
	if cs.Expiry != nil {
		if err := cs.Expiry.ScheduleExpiry(ctx, payload.BookingID, deadline); err != nil {
			cs.Logger.Warn("failed to schedule payment expiry",
				zap.String("bookingId", payload.BookingID), zap.Error(err))
		}
	}

	if err := cs.Sessions.Delete(ctx, sessionID); err != nil {
		cs.Logger.Warn("failed to delete consumed selection session",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	return payload, deadline, nil
}
