package handlers

import (
	"errors"
	"net/http"
	"time"

	"courtside/middleware"
	"courtside/models"
	"courtside/services/booking"
	"courtside/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking grid and the selection/confirmation flow.
type BookingHandler struct {
	Grid     booking.GridService
	Sessions booking.SessionManager
	Confirm  booking.ConfirmationService
	Logger   *zap.Logger
}

func NewBookingHandler(grid booking.GridService, sessions booking.SessionManager, confirm booking.ConfirmationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Grid: grid, Sessions: sessions, Confirm: confirm, Logger: logger}
}

// respondError maps service errors onto the storefront's error contract:
// validation errors are blocking and user-correctable, fetch errors are
// surfaced but leave prior state intact, a missing session is a 404.
func respondError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "code": verr.Code})
		return
	}
	if errors.Is(err, booking.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection session not found or expired"})
		return
	}
	var ferr *booking.FetchError
	if errors.As(err, &ferr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load booking data, please retry", "details": ferr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GetGrid returns the classified time grid for one court group and date,
// with the caller's selection overlaid when a session id is supplied.
func (h *BookingHandler) GetGrid(c *gin.Context) {
	groupID := c.Param("groupID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required (YYYY-MM-DD)"})
		return
	}

	var session *booking.SelectionSession
	if sessionID := c.Query("session"); sessionID != "" {
		var err error
		session, err = h.Sessions.Get(c.Request.Context(), sessionID)
		if err != nil && !errors.Is(err, booking.ErrSessionNotFound) {
			respondError(c, err)
			return
		}
	}

	ctx := upstream.WithBearer(c.Request.Context(), middleware.Bearer(c))
	grid, err := h.Grid.BuildGrid(ctx, groupID, date, session, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": grid})
}

// CreateSession opens a selection session scoped to a (group, date) pair.
func (h *BookingHandler) CreateSession(c *gin.Context) {
	var input struct {
		CourtGroupID string `json:"courtGroupId" binding:"required"`
		Date         string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Sessions.Create(c.Request.Context(), input.CourtGroupID, input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": session})
}

func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": session})
}

// RetargetSession moves a session to a new (group, date) scope; any change
// of scope clears the selected slots.
func (h *BookingHandler) RetargetSession(c *gin.Context) {
	var input struct {
		CourtGroupID string `json:"courtGroupId" binding:"required"`
		Date         string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Sessions.Retarget(c.Request.Context(), c.Param("sessionID"), input.CourtGroupID, input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": session})
}

// ToggleSlot flips one grid cell in the session's working set.
func (h *BookingHandler) ToggleSlot(c *gin.Context) {
	var input struct {
		CourtID int    `json:"courtId" binding:"required"`
		Start   string `json:"start" binding:"required"`
		End     string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Sessions.ToggleSlot(c.Request.Context(), c.Param("sessionID"),
		input.CourtID, models.TimeSlot{Start: input.Start, End: input.End})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": session})
}

func (h *BookingHandler) DeleteSession(c *gin.Context) {
	if err := h.Sessions.Delete(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "deleted"})
}

// ConfirmSession validates the working set, builds the pending booking
// payload and hands back the payment deadline.
func (h *BookingHandler) ConfirmSession(c *gin.Context) {
	ctx := upstream.WithBearer(c.Request.Context(), middleware.Bearer(c))
	payload, deadline, err := h.Confirm.Confirm(ctx, c.Param("sessionID"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":          payload,
		"paymentDeadline": deadline,
	})
}
