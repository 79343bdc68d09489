package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/service"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	service service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers the booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("/stats", h.Stats)
		bookings.GET("/recent", h.ListRecent)
		bookings.GET("/payment-status/:status", h.ListByPaymentStatus)
		bookings.GET("/status/:status", h.ListByBookingStatus)
		bookings.GET("/user/:userId", h.ListByUser)
		bookings.GET("/user/:userId/upcoming", h.ListUpcomingByUser)
		bookings.GET("/user/:userId/event/:eventId", h.GetByUserAndEvent)
		bookings.GET("/event/:eventId", h.ListConfirmedByEvent)
		bookings.GET("/event/:eventId/count", h.CountByEvent)
		bookings.GET("/:id", h.GetByID)
		bookings.PUT("/:id/status", h.UpdateStatus)
		bookings.PUT("/:id/payment", h.UpdatePayment)
		bookings.PUT("/:id/cancel", h.Cancel)
	}
}

// BookingRequest carries the query parameters of a booking request
type BookingRequest struct {
	UserID           uint   `form:"userId" binding:"required"`
	EventID          uint   `form:"eventId" binding:"required"`
	Notes            string `form:"notes"`
	EmergencyContact string `form:"emergencyContact"`
}

// Create books a user onto an event
func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), service.CreateBookingInput{
		UserID:           req.UserID,
		EventID:          req.EventID,
		Notes:            req.Notes,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Stats returns the total booking count
func (h *BookingHandler) Stats(c *gin.Context) {
	count, err := h.service.CountAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_bookings": count})
}

// ListRecent returns one page of bookings made in the last daysBack days
func (h *BookingHandler) ListRecent(c *gin.Context) {
	daysBack, err := strconv.Atoi(c.DefaultQuery("daysBack", "7"))
	if err != nil || daysBack <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "daysBack must be a positive integer", Code: "INVALID_REQUEST"})
		return
	}

	page, err := h.service.GetRecent(c.Request.Context(), daysBack, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListByPaymentStatus returns bookings in the given payment status
func (h *BookingHandler) ListByPaymentStatus(c *gin.Context) {
	status := model.PaymentStatus(c.Param("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unknown payment status", Code: "INVALID_REQUEST"})
		return
	}

	bookings, err := h.service.GetByPaymentStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListByBookingStatus returns bookings in the given booking status
func (h *BookingHandler) ListByBookingStatus(c *gin.Context) {
	status := model.BookingStatus(c.Param("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unknown booking status", Code: "INVALID_REQUEST"})
		return
	}

	bookings, err := h.service.GetByBookingStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListByUser returns one page of a user's bookings, newest first
func (h *BookingHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	page, err := h.service.GetByUser(c.Request.Context(), userID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListUpcomingByUser returns a user's confirmed bookings for events that
// have not happened yet
func (h *BookingHandler) ListUpcomingByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	bookings, err := h.service.GetUpcomingByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetByUserAndEvent returns the booking for a (user, event) pair
func (h *BookingHandler) GetByUserAndEvent(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	booking, err := h.service.GetByUserAndEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListConfirmedByEvent returns an event's confirmed bookings
func (h *BookingHandler) ListConfirmedByEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	bookings, err := h.service.GetConfirmedByEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CountByEvent returns the confirmed booking count held against an
// event's capacity
func (h *BookingHandler) CountByEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	count, err := h.service.CountConfirmedByEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmed_bookings": count})
}

// GetByID returns one booking with its user and event
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateStatus moves a booking through the status table
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	status := model.BookingStatus(c.Query("status"))
	if status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "query parameter status is required", Code: "INVALID_REQUEST"})
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdatePayment moves a booking's payment through the payment table
func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	status := model.PaymentStatus(c.Query("paymentStatus"))
	if status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "query parameter paymentStatus is required", Code: "INVALID_REQUEST"})
		return
	}

	booking, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, status, c.Query("paymentReference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Cancel cancels a confirmed booking while registration is still open
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
