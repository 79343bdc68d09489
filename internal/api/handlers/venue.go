package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/service"
)

// VenueHandler handles venue HTTP requests
type VenueHandler struct {
	service service.VenueService
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(service service.VenueService) *VenueHandler {
	return &VenueHandler{service: service}
}

// RegisterRoutes registers the venue routes
func (h *VenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	venues := rg.Group("/venues")
	{
		venues.GET("", h.List)
		venues.GET("/cities", h.ListCities)
		venues.GET("/with-events", h.ListWithUpcomingEvents)
		venues.GET("/search", h.Search)
		venues.GET("/city/:city", h.GetByCity)
		venues.GET("/capacity/:min", h.GetByMinCapacity)
		venues.GET("/:id", h.GetByID)
		venues.POST("", h.Create)
		venues.PUT("/:id", h.Update)
		venues.DELETE("/:id", h.Delete)
	}
}

// VenueRequest is the write payload for venues
type VenueRequest struct {
	Name        string   `json:"name" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	City        string   `json:"city" binding:"required"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postal_code"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Capacity    *int     `json:"capacity" binding:"omitempty,gt=0"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Amenities   string   `json:"amenities"`
}

func (r *VenueRequest) toModel(id uint) *model.Venue {
	return &model.Venue{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Capacity:    r.Capacity,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Amenities:   r.Amenities,
	}
}

// List returns one page of venues
func (h *VenueHandler) List(c *gin.Context) {
	page, err := h.service.GetAll(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListCities returns the distinct cities that have venues
func (h *VenueHandler) ListCities(c *gin.Context) {
	cities, err := h.service.GetCities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// ListWithUpcomingEvents returns venues hosting at least one upcoming
// active event
func (h *VenueHandler) ListWithUpcomingEvents(c *gin.Context) {
	venues, err := h.service.GetWithUpcomingEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venues)
}

// Search returns one page of venues matching the query by name or city
func (h *VenueHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "query parameter q is required", Code: "INVALID_REQUEST"})
		return
	}

	page, err := h.service.Search(c.Request.Context(), query, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByCity returns the venues in a city
func (h *VenueHandler) GetByCity(c *gin.Context) {
	venues, err := h.service.GetByCity(c.Request.Context(), c.Param("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venues)
}

// GetByMinCapacity returns venues that hold at least min people
func (h *VenueHandler) GetByMinCapacity(c *gin.Context) {
	min, err := strconv.Atoi(c.Param("min"))
	if err != nil || min <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "minimum capacity must be a positive integer", Code: "INVALID_REQUEST"})
		return
	}

	venues, err := h.service.GetByMinCapacity(c.Request.Context(), min)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venues)
}

// GetByID returns one venue
func (h *VenueHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	venue, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

// Create creates a new venue
func (h *VenueHandler) Create(c *gin.Context) {
	var req VenueRequest
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

// Update replaces an existing venue
func (h *VenueHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req VenueRequest
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

// Delete removes a venue with no events
func (h *VenueHandler) Delete(c *gin.Context) {
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
