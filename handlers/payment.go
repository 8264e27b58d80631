package handlers

import (
	"net/http"

	"courtside/middleware"
	"courtside/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler proxies the payment lifecycle to the court API. The API
// owns all payment state; this never caches or arbitrates it.
type PaymentHandler struct {
	API    *upstream.Client
	Logger *zap.Logger
}

func NewPaymentHandler(api *upstream.Client, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{API: api, Logger: logger}
}

// GetPaymentInfo returns transfer details and the countdown deadline for a
// pending booking.
func (h *PaymentHandler) GetPaymentInfo(c *gin.Context) {
	ctx := upstream.WithBearer(c.Request.Context(), middleware.Bearer(c))
	info, err := h.API.GetPaymentInfo(ctx, c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load payment info", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": info})
}

// ConfirmPayment forwards the user's proof-of-payment.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		ProofImageURL string `json:"proofImageUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := upstream.WithBearer(c.Request.Context(), middleware.Bearer(c))
	if err := h.API.ConfirmPayment(ctx, c.Param("bookingID"), input.ProofImageURL); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit payment proof", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "submitted"})
}

// ConfirmBooking marks a booking confirmed once payment has been verified.
func (h *PaymentHandler) ConfirmBooking(c *gin.Context) {
	ctx := upstream.WithBearer(c.Request.Context(), middleware.Bearer(c))
	if err := h.API.ConfirmBooking(ctx, c.Param("bookingID")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to confirm booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "confirmed"})
}
