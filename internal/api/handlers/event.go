package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
	"github.com/sportsevents/sports-events-api/internal/service"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	service service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterRoutes registers the event routes
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.List)
		events.GET("/available", h.ListAvailable)
		events.GET("/upcoming", h.ListUpcoming)
		events.GET("/upcoming/range", h.ListUpcomingInRange)
		events.GET("/stats", h.Stats)
		events.GET("/:id", h.GetByID)
		events.GET("/:id/availability", h.Availability)
		events.GET("/:id/registration-status", h.RegistrationStatus)
		events.POST("", h.Create)
		events.PUT("/:id", h.Update)
		events.DELETE("/:id", h.Delete)
	}
}

// EventRequest is the write payload for events
type EventRequest struct {
	Title                 string                 `json:"title" binding:"required"`
	Description           string                 `json:"description"`
	EventDate             time.Time              `json:"event_date" binding:"required"`
	RegistrationStartDate time.Time              `json:"registration_start_date" binding:"required"`
	RegistrationEndDate   time.Time              `json:"registration_end_date" binding:"required"`
	MaxParticipants       *int                   `json:"max_participants" binding:"omitempty,gt=0"`
	Price                 *float64               `json:"price"`
	ImageURL              string                 `json:"image_url"`
	BannerURL             string                 `json:"banner_url"`
	EventType             model.EventType        `json:"event_type" binding:"required"`
	DifficultyLevel       *model.DifficultyLevel `json:"difficulty_level"`
	Status                model.EventStatus      `json:"status"`
	Rules                 string                 `json:"rules"`
	PrizeInfo             string                 `json:"prize_info"`
	ContactInfo           string                 `json:"contact_info"`
	CategoryID            uint                   `json:"category_id" binding:"required"`
	VenueID               uint                   `json:"venue_id" binding:"required"`
}

func (r *EventRequest) toModel(id uint) *model.Event {
	status := r.Status
	if status == "" {
		status = model.EventStatusActive
	}
	return &model.Event{
		ID:                    id,
		Title:                 r.Title,
		Description:           r.Description,
		EventDate:             r.EventDate,
		RegistrationStartDate: r.RegistrationStartDate,
		RegistrationEndDate:   r.RegistrationEndDate,
		MaxParticipants:       r.MaxParticipants,
		Price:                 r.Price,
		ImageURL:              r.ImageURL,
		BannerURL:             r.BannerURL,
		EventType:             r.EventType,
		DifficultyLevel:       r.DifficultyLevel,
		Status:                status,
		Rules:                 r.Rules,
		PrizeInfo:             r.PrizeInfo,
		ContactInfo:           r.ContactInfo,
		CategoryID:            r.CategoryID,
		VenueID:               r.VenueID,
	}
}

// List returns one page of active events with open registration,
// narrowed by the optional category, city, type and q filters
func (h *EventHandler) List(c *gin.Context) {
	var filter repository.EventFilter
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "category must be an id", Code: "INVALID_REQUEST"})
			return
		}
		filter.CategoryID = uint(id)
	}
	filter.City = c.Query("city")
	filter.EventType = model.EventType(c.Query("type"))
	filter.Query = c.Query("q")

	if filter.EventType != "" && !filter.EventType.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unknown event type", Code: "INVALID_REQUEST"})
		return
	}

	page, err := h.service.List(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListAvailable returns one page of open events that still have free
// slots
func (h *EventHandler) ListAvailable(c *gin.Context) {
	page, err := h.service.GetWithAvailableSlots(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListUpcoming returns active events in the next seven days
func (h *EventHandler) ListUpcoming(c *gin.Context) {
	events, err := h.service.GetUpcoming(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListUpcomingInRange returns active events between startDate and
// endDate, both ISO-8601
func (h *EventHandler) ListUpcomingInRange(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "startDate must be ISO-8601", Code: "INVALID_REQUEST"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "endDate must be ISO-8601", Code: "INVALID_REQUEST"})
		return
	}

	events, err := h.service.GetUpcomingInRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Stats returns the count of active events
func (h *EventHandler) Stats(c *gin.Context) {
	count, err := h.service.CountActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_events": count})
}

// GetByID returns one event with its category and venue
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Availability reports whether the event still has free slots
func (h *EventHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	available, err := h.service.HasAvailableSlots(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// RegistrationStatus reports whether the event's registration window is
// currently open
func (h *EventHandler) RegistrationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	open, err := h.service.IsRegistrationOpen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration_open": open})
}

// Create creates a new event
func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.toModel(0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// Update replaces an existing event
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), req.toModel(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an event
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
