package routes

import (
	"net/http"
	"time"

	"courtside/handlers"
	"courtside/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the grid and selection/confirmation endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.OptionalAuth())
		bookingGroup.GET("/grid/:groupID", bh.GetGrid)
		bookingGroup.POST("/session", bh.CreateSession)
		bookingGroup.GET("/session/:sessionID", bh.GetSession)
		bookingGroup.PUT("/session/:sessionID/scope", bh.RetargetSession)
		bookingGroup.POST("/session/:sessionID/toggle", bh.ToggleSlot)
		bookingGroup.DELETE("/session/:sessionID", bh.DeleteSession)
		bookingGroup.POST("/session/:sessionID/confirm", bh.ConfirmSession)
	}
}

// RegisterPaymentRoutes sets up the payment lifecycle passthrough endpoints.
func RegisterPaymentRoutes(r *gin.Engine, ph *handlers.PaymentHandler) {
	paymentGroup := r.Group("/api/payments")
	{
		paymentGroup.Use(middleware.OptionalAuth())
		paymentGroup.GET("/:bookingID/payment-info", ph.GetPaymentInfo)
		paymentGroup.POST("/:bookingID/confirm-payment", ph.ConfirmPayment)
		paymentGroup.POST("/:bookingID/confirm", ph.ConfirmBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Courtside"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.PaymentHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterPaymentRoutes(r, ph)
}
