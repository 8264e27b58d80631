package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtside/models"
	"courtside/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeGrid struct {
	grid *booking.BookingGrid
	err  error
}

func (f *fakeGrid) BuildGrid(ctx context.Context, groupID, date string, session *booking.SelectionSession, now time.Time) (*booking.BookingGrid, error) {
	return f.grid, f.err
}

type fakeSessionManager struct {
	session *booking.SelectionSession
	err     error
}

func (f *fakeSessionManager) Get(ctx context.Context, id string) (*booking.SelectionSession, error) {
	return f.session, f.err
}
func (f *fakeSessionManager) Delete(ctx context.Context, id string) error { return f.err }
func (f *fakeSessionManager) Create(ctx context.Context, groupID, date string) (*booking.SelectionSession, error) {
	return f.session, f.err
}
func (f *fakeSessionManager) Retarget(ctx context.Context, id, groupID, date string) (*booking.SelectionSession, error) {
	return f.session, f.err
}
func (f *fakeSessionManager) ToggleSlot(ctx context.Context, id string, courtID int, slot models.TimeSlot) (*booking.SelectionSession, error) {
	return f.session, f.err
}

type fakeConfirm struct {
	payload  *models.ConfirmationPayload
	deadline time.Time
	err      error
}

func (f *fakeConfirm) Confirm(ctx context.Context, sessionID, userID string) (*models.ConfirmationPayload, time.Time, error) {
	return f.payload, f.deadline, f.err
}

func newTestRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/booking/grid/:groupID", h.GetGrid)
	r.POST("/api/booking/session", h.CreateSession)
	r.POST("/api/booking/session/:sessionID/toggle", h.ToggleSlot)
	r.POST("/api/booking/session/:sessionID/confirm", h.ConfirmSession)
	return r
}

func TestGetGrid_RequiresDate(t *testing.T) {
	h := NewBookingHandler(&fakeGrid{}, &fakeSessionManager{}, &fakeConfirm{}, zap.NewNop())
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/booking/grid/group-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGrid_OK(t *testing.T) {
	grid := &booking.BookingGrid{CourtGroupID: "group-1", Date: "2025-01-10", TotalPrice: 50000}
	h := NewBookingHandler(&fakeGrid{grid: grid}, &fakeSessionManager{err: booking.ErrSessionNotFound}, &fakeConfirm{}, zap.NewNop())
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/booking/grid/group-1?date=2025-01-10&session=gone", nil)
	router.ServeHTTP(w, req)

	// An expired session degrades to an unselected grid, not an error.
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result booking.BookingGrid `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 50000, body.Result.TotalPrice)
}

func TestGetGrid_FetchErrorIsBadGateway(t *testing.T) {
	gridErr := &booking.FetchError{Op: "booking data", Err: booking.ErrStaleSnapshot}
	h := NewBookingHandler(&fakeGrid{err: gridErr}, &fakeSessionManager{}, &fakeConfirm{}, zap.NewNop())
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/booking/grid/group-1?date=2025-01-10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestToggleSlot_ValidationErrorIsBadRequest(t *testing.T) {
	sm := &fakeSessionManager{err: &booking.ValidationError{Code: booking.CodeNoDate, Message: "select a date before choosing slots"}}
	h := NewBookingHandler(&fakeGrid{}, sm, &fakeConfirm{}, zap.NewNop())
	router := newTestRouter(h)

	body, _ := json.Marshal(map[string]interface{}{"courtId": 1, "start": "14:00", "end": "14:30"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking/session/sess-1/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, booking.CodeNoDate, resp["code"])
}

func TestConfirmSession_MissingSessionIsNotFound(t *testing.T) {
	h := NewBookingHandler(&fakeGrid{}, &fakeSessionManager{}, &fakeConfirm{err: booking.ErrSessionNotFound}, zap.NewNop())
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking/session/gone/confirm", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmSession_OK(t *testing.T) {
	payload := &models.ConfirmationPayload{
		BookingID:   "bk-1",
		CourtID:     1,
		BookingDate: "2025-01-10",
		TimeSlots:   []models.MergedRange{{StartTime: "14:00", EndTime: "15:00"}},
		TotalPrice:  50000,
		Status:      models.StatusPending,
	}
	deadline := time.Now().Add(15 * time.Minute)
	h := NewBookingHandler(&fakeGrid{}, &fakeSessionManager{}, &fakeConfirm{payload: payload, deadline: deadline}, zap.NewNop())
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking/session/sess-1/confirm", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result          models.ConfirmationPayload `json:"result"`
		PaymentDeadline time.Time                  `json:"paymentDeadline"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.StatusPending, body.Result.Status)
	assert.WithinDuration(t, deadline, body.PaymentDeadline, time.Second)
}
