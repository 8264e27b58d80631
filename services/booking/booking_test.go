package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeCourtAPI stands in for the remote court service.
type fakeCourtAPI struct {
	group         *models.CourtGroup
	snapshot      *models.GroupSnapshot
	confirmResult *models.ConfirmationResult
	confirmErr    error
	gotConfirmReq *models.ConfirmationRequest
}

func (f *fakeCourtAPI) GetCourtGroup(ctx context.Context, id string) (*models.CourtGroup, error) {
	if f.group == nil {
		return nil, errors.New("no such group")
	}
	return f.group, nil
}

func (f *fakeCourtAPI) FetchBookingData(ctx context.Context, id, date string) (*models.GroupSnapshot, error) {
	if f.snapshot == nil {
		return nil, errors.New("no snapshot")
	}
	return f.snapshot, nil
}

func (f *fakeCourtAPI) GetBookingConfirmation(ctx context.Context, req models.ConfirmationRequest) (*models.ConfirmationResult, error) {
	f.gotConfirmReq = &req
	return f.confirmResult, f.confirmErr
}

type fakeSessions struct {
	sessions map[string]*SelectionSession
	deleted  []string
}

func (f *fakeSessions) Get(ctx context.Context, id string) (*SelectionSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeExpiry struct {
	bookingID string
	deadline  time.Time
}

func (f *fakeExpiry) ScheduleExpiry(ctx context.Context, bookingID string, deadline time.Time) error {
	f.bookingID = bookingID
	f.deadline = deadline
	return nil
}

func courtsideFixture() (*fakeCourtAPI, *fakeSessions) {
	date := "2025-01-10"
	api := &fakeCourtAPI{
		group: &models.CourtGroup{
			ID:          "group-1",
			Name:        "Riverside Sports Center",
			FullAddress: "12 Riverside Rd",
			OpenTime:    "06:00",
			CloseTime:   "23:00",
		},
		snapshot: &models.GroupSnapshot{
			CourtGroupID: "group-1",
			Date:         date,
			Courts: []models.Court{
				{
					ID:   1,
					Name: "Court A",
					Bookings: []models.Booking{
						{ID: 7, StartTime: "16:00", EndTime: "17:00", BookingDate: date},
					},
					Prices: []models.PriceTier{
						{StartTime: "06:00", EndTime: "17:30", Price: 25000},
						{StartTime: "17:30", EndTime: "23:00", Price: 50000},
					},
				},
			},
		},
	}
	sessions := &fakeSessions{sessions: map[string]*SelectionSession{
		"sess-1": {
			ID:           "sess-1",
			CourtGroupID: "group-1",
			Date:         date,
			Slots: []models.SelectedSlot{
				{CourtID: 1, Date: date, StartTime: "14:00", EndTime: "14:30"},
				{CourtID: 1, Date: date, StartTime: "14:30", EndTime: "15:00"},
			},
		},
	}}
	return api, sessions
}

func TestBuildGrid_EndToEnd(t *testing.T) {
	api, sessions := courtsideFixture()
	svc := &DefaultGridService{API: api, Logger: zap.NewNop()}

	session := sessions.sessions["sess-1"]
	now := time.Date(2025, 1, 10, 8, 15, 0, 0, time.UTC)

	grid, err := svc.BuildGrid(context.Background(), "group-1", "2025-01-10", session, now)
	assert.NoError(t, err)
	assert.Len(t, grid.Slots, 34) // (23:00-06:00)/30min
	assert.Len(t, grid.Courts, 1)

	states := map[string]models.SlotState{}
	for _, cell := range grid.Courts[0].Cells {
		states[cell.Slot.Start] = cell.State
	}
	assert.Equal(t, models.SlotBooked, states["16:00"])
	assert.Equal(t, models.SlotBooked, states["16:30"])
	assert.Equal(t, models.SlotAvailable, states["17:00"])
	assert.Equal(t, models.SlotSelected, states["14:00"])
	assert.Equal(t, models.SlotSelected, states["14:30"])
	assert.Equal(t, models.SlotPast, states["08:00"])

	// price(14:00) + price(14:30) from the off-peak tier.
	assert.Equal(t, 50000, grid.TotalPrice)
}

func TestBuildGrid_IgnoresSelectionFromOtherScope(t *testing.T) {
	api, _ := courtsideFixture()
	svc := &DefaultGridService{API: api, Logger: zap.NewNop()}

	session := &SelectionSession{
		ID:           "sess-2",
		CourtGroupID: "group-1",
		Date:         "2025-01-09",
		Slots:        []models.SelectedSlot{{CourtID: 1, Date: "2025-01-09", StartTime: "14:00", EndTime: "14:30"}},
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	grid, err := svc.BuildGrid(context.Background(), "group-1", "2025-01-10", session, now)
	assert.NoError(t, err)
	assert.Equal(t, 0, grid.TotalPrice)
	for _, cell := range grid.Courts[0].Cells {
		assert.NotEqual(t, models.SlotSelected, cell.State)
	}
}

func TestBuildGrid_RejectsStaleSnapshot(t *testing.T) {
	api, _ := courtsideFixture()
	api.snapshot.Date = "2025-01-09" // echo from an older request
	svc := &DefaultGridService{API: api, Logger: zap.NewNop()}

	_, err := svc.BuildGrid(context.Background(), "group-1", "2025-01-10", nil, time.Now())
	var ferr *FetchError
	if assert.True(t, errors.As(err, &ferr)) {
		assert.ErrorIs(t, err, ErrStaleSnapshot)
	}
}

func TestConfirm_EndToEnd_FailOpenEnrichment(t *testing.T) {
	api, sessions := courtsideFixture()
	api.confirmErr = errors.New("confirmation endpoint down")
	expiry := &fakeExpiry{}

	svc := &DefaultConfirmationService{
		Sessions:      sessions,
		API:           api,
		Expiry:        expiry,
		PaymentWindow: 15 * time.Minute,
		Logger:        zap.NewNop(),
	}

	payload, deadline, err := svc.Confirm(context.Background(), "sess-1", "user-9")
	assert.NoError(t, err, "a dead enrichment endpoint must not block the handoff")

	assert.Equal(t, "user-9", payload.UserID)
	assert.Equal(t, "group-1", payload.CourtGroupID)
	assert.Equal(t, 1, payload.CourtID)
	assert.Equal(t, "Court A", payload.CourtName)
	assert.Equal(t, "12 Riverside Rd", payload.FullAddress)
	assert.Equal(t, "2025-01-10", payload.BookingDate)
	assert.Equal(t, []models.MergedRange{{StartTime: "14:00", EndTime: "15:00"}}, payload.TimeSlots)
	assert.Equal(t, 50000, payload.TotalPrice)
	assert.Equal(t, models.StatusPending, payload.Status)
	assert.NotEmpty(t, payload.BookingID)

	assert.Equal(t, payload.BookingID, expiry.bookingID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), deadline, 5*time.Second)
	assert.Contains(t, sessions.deleted, "sess-1")
}

func TestConfirm_EnrichmentOverridesLocalFields(t *testing.T) {
	api, sessions := courtsideFixture()
	api.confirmResult = &models.ConfirmationResult{
		BookingID:   "bk-1001",
		CourtName:   "Court A (covered)",
		FullAddress: "12 Riverside Road, District 3",
		TotalPrice:  55000,
	}
	svc := &DefaultConfirmationService{
		Sessions:      sessions,
		API:           api,
		PaymentWindow: 15 * time.Minute,
		Logger:        zap.NewNop(),
	}

	payload, _, err := svc.Confirm(context.Background(), "sess-1", "")
	assert.NoError(t, err)
	assert.Equal(t, "bk-1001", payload.BookingID)
	assert.Equal(t, "Court A (covered)", payload.CourtName)
	assert.Equal(t, 55000, payload.TotalPrice)
	assert.Empty(t, payload.UserID, "anonymous submits carry no user id")

	// The enrichment request carries the merged ranges, not raw slots.
	if assert.NotNil(t, api.gotConfirmReq) {
		assert.Equal(t, []models.MergedRange{{StartTime: "14:00", EndTime: "15:00"}}, api.gotConfirmReq.SelectedSlots)
	}
}

func TestConfirm_ValidationFailureLeavesSessionIntact(t *testing.T) {
	api, sessions := courtsideFixture()
	sessions.sessions["sess-1"].Slots = append(sessions.sessions["sess-1"].Slots,
		models.SelectedSlot{CourtID: 2, Date: "2025-01-10", StartTime: "15:00", EndTime: "15:30"})

	svc := &DefaultConfirmationService{
		Sessions:      sessions,
		API:           api,
		PaymentWindow: 15 * time.Minute,
		Logger:        zap.NewNop(),
	}

	_, _, err := svc.Confirm(context.Background(), "sess-1", "")
	var verr *ValidationError
	if assert.True(t, errors.As(err, &verr)) {
		assert.Equal(t, CodeMultipleCourts, verr.Code)
	}
	assert.Empty(t, sessions.deleted, "failed validation must not consume the session")
}

func TestConfirm_MissingSession(t *testing.T) {
	api, sessions := courtsideFixture()
	svc := &DefaultConfirmationService{
		Sessions:      sessions,
		API:           api,
		PaymentWindow: 15 * time.Minute,
		Logger:        zap.NewNop(),
	}

	_, _, err := svc.Confirm(context.Background(), "nope", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
