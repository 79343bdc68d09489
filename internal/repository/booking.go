package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/model"
)

// bookingSortColumns whitelists sortable booking fields
var bookingSortColumns = map[string]string{
	"bookingDate": "bookings.booking_date",
	"createdAt":   "bookings.created_at",
}

// BookingRepository defines the interface for booking data access.
// The capacity-guarded insert itself lives in the booking service, which
// runs it inside one transaction with a row lock on the event.
type BookingRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
	FindByUser(ctx context.Context, userID uint, req PageRequest) (Page[model.Booking], error)
	FindConfirmedByEvent(ctx context.Context, eventID uint) ([]model.Booking, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error)
	FindUpcomingByUser(ctx context.Context, userID uint, now time.Time) ([]model.Booking, error)
	FindRecent(ctx context.Context, since time.Time, req PageRequest) (Page[model.Booking], error)
	FindByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]model.Booking, error)
	FindByBookingStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountConfirmedByEvent(ctx context.Context, eventID uint) (int64, error)
	Update(ctx context.Context, booking *model.Booking) error
}

// bookingRepository implements BookingRepository
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// FindByID finds a booking by id with its user and event loaded
func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		First(&booking, id).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByUser returns one page of a user's bookings, newest first, with
// event, venue and category details loaded
func (r *bookingRepository) FindByUser(ctx context.Context, userID uint, req PageRequest) (Page[model.Booking], error) {
	var bookings []model.Booking
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Booking{}).Where("user_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return Page[model.Booking]{}, err
	}

	err := base.
		Preload("Event").
		Preload("Event.Venue").
		Preload("Event.Category").
		Order(req.OrderClause(bookingSortColumns, "bookings.booking_date DESC")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&bookings).Error
	if err != nil {
		return Page[model.Booking]{}, err
	}

	return NewPage(bookings, req, total), nil
}

// FindConfirmedByEvent returns an event's confirmed bookings, oldest first
func (r *bookingRepository) FindConfirmedByEvent(ctx context.Context, eventID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ? AND booking_status = ?", eventID, model.BookingStatusConfirmed).
		Order("booking_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByUserAndEvent finds the single booking for a (user, event) pair
func (r *bookingRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&booking).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindUpcomingByUser returns a user's confirmed bookings for events that
// have not taken place yet
func (r *bookingRepository) FindUpcomingByUser(ctx context.Context, userID uint, now time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Venue").
		Joins("INNER JOIN events ON events.id = bookings.event_id").
		Where("bookings.user_id = ? AND bookings.booking_status = ? AND events.event_date >= ?",
			userID, model.BookingStatusConfirmed, now).
		Order("events.event_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindRecent returns one page of bookings made since the given time,
// newest first
func (r *bookingRepository) FindRecent(ctx context.Context, since time.Time, req PageRequest) (Page[model.Booking], error) {
	var bookings []model.Booking
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Booking{}).Where("booking_date >= ?", since)

	if err := base.Count(&total).Error; err != nil {
		return Page[model.Booking]{}, err
	}

	err := base.
		Preload("User").
		Preload("Event").
		Preload("Event.Venue").
		Order(req.OrderClause(bookingSortColumns, "bookings.booking_date DESC")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&bookings).Error
	if err != nil {
		return Page[model.Booking]{}, err
	}

	return NewPage(bookings, req, total), nil
}

// FindByPaymentStatus returns bookings with the given payment status,
// newest first
func (r *bookingRepository) FindByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("payment_status = ?", status).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByBookingStatus returns bookings with the given booking status,
// newest first
func (r *bookingRepository) FindByBookingStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("booking_status = ?", status).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountAll counts all bookings
func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).Count(&count).Error
	return count, err
}

// CountConfirmedByEvent counts the confirmed bookings held against an
// event's capacity
func (r *bookingRepository) CountConfirmedByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("event_id = ? AND booking_status = ?", eventID, model.BookingStatusConfirmed).
		Count(&count).Error
	return count, err
}

// Update saves an existing booking
func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}
