package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/model"
)

// eventSortColumns whitelists sortable event fields
var eventSortColumns = map[string]string{
	"eventDate": "events.event_date",
	"title":     "events.title",
	"price":     "events.price",
	"createdAt": "events.created_at",
}

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	CategoryID uint
	City       string
	EventType  model.EventType
	Query      string
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	FindOpenForRegistration(ctx context.Context, now time.Time, filter EventFilter, req PageRequest) (Page[model.Event], error)
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindWithAvailableSlots(ctx context.Context, now time.Time, req PageRequest) (Page[model.Event], error)
	FindUpcoming(ctx context.Context, from, until time.Time) ([]model.Event, error)
	CountByStatus(ctx context.Context, status model.EventStatus) (int64, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountByVenue(ctx context.Context, venueID uint) (int64, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
}

// eventRepository implements EventRepository
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// openRegistrationScope keeps active events whose registration window
// contains now. The window is half-open: [start, end).
func openRegistrationScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("events.status = ?", model.EventStatusActive).
			Where("events.registration_start_date <= ? AND events.registration_end_date > ?", now, now)
	}
}

// FindOpenForRegistration returns one page of active events with open
// registration, narrowed by the filter
func (r *eventRepository) FindOpenForRegistration(ctx context.Context, now time.Time, filter EventFilter, req PageRequest) (Page[model.Event], error) {
	var events []model.Event
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Event{}).Scopes(openRegistrationScope(now))

	if filter.CategoryID != 0 {
		base = base.Where("events.category_id = ?", filter.CategoryID)
	}
	if filter.City != "" {
		base = base.Joins("INNER JOIN venues ON venues.id = events.venue_id").
			Where("venues.city = ?", filter.City)
	}
	if filter.EventType != "" {
		base = base.Where("events.event_type = ?", filter.EventType)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		base = base.Where("events.title ILIKE ? OR events.description ILIKE ?", pattern, pattern)
	}

	if err := base.Count(&total).Error; err != nil {
		return Page[model.Event]{}, err
	}

	err := base.
		Preload("Category").
		Preload("Venue").
		Order(req.OrderClause(eventSortColumns, "events.event_date ASC")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&events).Error
	if err != nil {
		return Page[model.Event]{}, err
	}

	return NewPage(events, req, total), nil
}

// FindByID finds an event by id with its category and venue loaded
func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Venue").
		First(&event, id).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindWithAvailableSlots returns one page of open-registration events
// that still have confirmed-booking capacity. Capacity is recomputed
// from live booking counts, never denormalized.
func (r *eventRepository) FindWithAvailableSlots(ctx context.Context, now time.Time, req PageRequest) (Page[model.Event], error) {
	var events []model.Event
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Event{}).
		Scopes(openRegistrationScope(now)).
		Where("events.max_participants IS NULL OR "+
			"(SELECT COUNT(*) FROM bookings WHERE bookings.event_id = events.id AND bookings.booking_status = ?) < events.max_participants",
			model.BookingStatusConfirmed)

	if err := base.Count(&total).Error; err != nil {
		return Page[model.Event]{}, err
	}

	err := base.
		Preload("Category").
		Preload("Venue").
		Order(req.OrderClause(eventSortColumns, "events.event_date ASC")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&events).Error
	if err != nil {
		return Page[model.Event]{}, err
	}

	return NewPage(events, req, total), nil
}

// FindUpcoming returns active events taking place in [from, until]
func (r *eventRepository) FindUpcoming(ctx context.Context, from, until time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Venue").
		Where("status = ? AND event_date BETWEEN ? AND ?", model.EventStatusActive, from, until).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CountByStatus counts events in a given status
func (r *eventRepository) CountByStatus(ctx context.Context, status model.EventStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByCategory counts events referencing a category
func (r *eventRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// CountByVenue counts events referencing a venue
func (r *eventRepository) CountByVenue(ctx context.Context, venueID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("venue_id = ?", venueID).
		Count(&count).Error
	return count, err
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update saves an existing event
func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event by id
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
