package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/model"
)

// venueSortColumns whitelists sortable venue fields
var venueSortColumns = map[string]string{
	"name":     "name",
	"city":     "city",
	"capacity": "capacity",
}

// VenueRepository defines the interface for venue data access
type VenueRepository interface {
	FindAll(ctx context.Context, req PageRequest) (Page[model.Venue], error)
	FindByID(ctx context.Context, id uint) (*model.Venue, error)
	FindByCity(ctx context.Context, city string) ([]model.Venue, error)
	FindAllCities(ctx context.Context) ([]string, error)
	FindWithUpcomingEvents(ctx context.Context, now time.Time) ([]model.Venue, error)
	Search(ctx context.Context, query string, req PageRequest) (Page[model.Venue], error)
	FindByMinCapacity(ctx context.Context, minCapacity int) ([]model.Venue, error)
	Create(ctx context.Context, venue *model.Venue) error
	Update(ctx context.Context, venue *model.Venue) error
	Delete(ctx context.Context, id uint) error
}

// venueRepository implements VenueRepository
type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

// FindAll returns one page of venues
func (r *venueRepository) FindAll(ctx context.Context, req PageRequest) (Page[model.Venue], error) {
	var venues []model.Venue
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Venue{}).Count(&total).Error; err != nil {
		return Page[model.Venue]{}, err
	}

	err := r.db.WithContext(ctx).
		Order(req.OrderClause(venueSortColumns, "name ASC")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&venues).Error
	if err != nil {
		return Page[model.Venue]{}, err
	}

	return NewPage(venues, req, total), nil
}

// FindByID finds a venue by id
func (r *venueRepository) FindByID(ctx context.Context, id uint) (*model.Venue, error) {
	var venue model.Venue
	err := r.db.WithContext(ctx).First(&venue, id).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &venue, nil
}

// FindByCity returns venues in a city ordered by name
func (r *venueRepository) FindByCity(ctx context.Context, city string) ([]model.Venue, error) {
	var venues []model.Venue
	err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("name ASC").
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// FindAllCities returns the distinct cities that have venues
func (r *venueRepository) FindAllCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).Model(&model.Venue{}).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// FindWithUpcomingEvents returns venues hosting at least one upcoming
// active event
func (r *venueRepository) FindWithUpcomingEvents(ctx context.Context, now time.Time) ([]model.Venue, error) {
	var venues []model.Venue
	err := r.db.WithContext(ctx).
		Distinct("venues.*").
		Joins("INNER JOIN events ON events.venue_id = venues.id").
		Where("events.status = ? AND events.event_date >= ?", model.EventStatusActive, now).
		Order("venues.name ASC").
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// Search returns one page of venues whose name or city contains the query
func (r *venueRepository) Search(ctx context.Context, query string, req PageRequest) (Page[model.Venue], error) {
	var venues []model.Venue
	var total int64

	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&model.Venue{}).
		Where("name ILIKE ? OR city ILIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return Page[model.Venue]{}, err
	}

	err := base.
		Order(req.OrderClause(venueSortColumns, "name ASC")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&venues).Error
	if err != nil {
		return Page[model.Venue]{}, err
	}

	return NewPage(venues, req, total), nil
}

// FindByMinCapacity returns venues with at least the given capacity
func (r *venueRepository) FindByMinCapacity(ctx context.Context, minCapacity int) ([]model.Venue, error) {
	var venues []model.Venue
	err := r.db.WithContext(ctx).
		Where("capacity >= ?", minCapacity).
		Order("capacity DESC").
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// Create creates a new venue
func (r *venueRepository) Create(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

// Update saves an existing venue
func (r *venueRepository) Update(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

// Delete removes a venue by id
func (r *venueRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Venue{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
