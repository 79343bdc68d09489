package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
	"github.com/sportsevents/sports-events-api/internal/tracing"
)

// CreateBookingInput carries the caller-supplied fields of a new booking.
// Booking date, amount and initial statuses are set by the service.
type CreateBookingInput struct {
	UserID           uint
	EventID          uint
	Notes            string
	EmergencyContact string
}

// BookingService defines the interface for booking operations
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*model.Booking, error)
	GetByID(ctx context.Context, id uint) (*model.Booking, error)
	GetByUser(ctx context.Context, userID uint, req repository.PageRequest) (repository.Page[model.Booking], error)
	GetConfirmedByEvent(ctx context.Context, eventID uint) ([]model.Booking, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error)
	GetUpcomingByUser(ctx context.Context, userID uint) ([]model.Booking, error)
	GetRecent(ctx context.Context, daysBack int, req repository.PageRequest) (repository.Page[model.Booking], error)
	GetByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]model.Booking, error)
	GetByBookingStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountConfirmedByEvent(ctx context.Context, eventID uint) (int64, error)
	UpdateBookingStatus(ctx context.Context, id uint, next model.BookingStatus) (*model.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id uint, next model.PaymentStatus, paymentReference string) (*model.Booking, error)
	CancelBooking(ctx context.Context, id uint) (*model.Booking, error)
}

// bookingService implements BookingService. It holds the raw database
// handle in addition to the repositories because the create path must
// run its checks and the insert inside a single transaction holding a
// row lock on the event.
type bookingService struct {
	db       *gorm.DB
	repo     repository.BookingRepository
	userRepo repository.UserRepository
	tracer   tracing.Tracer
	nowFn    func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(gdb *gorm.DB, repo repository.BookingRepository, userRepo repository.UserRepository, tracer tracing.Tracer) BookingService {
	return &bookingService{
		db:       gdb,
		repo:     repo,
		userRepo: userRepo,
		tracer:   tracer,
		nowFn:    time.Now,
	}
}

// CreateBooking books a user onto an event. The event row is locked for
// the duration of the transaction so that the duplicate check and the
// capacity check cannot race with a concurrent booking for the same
// event. The checks run in a fixed order and the first failure wins:
// duplicate, then capacity, then registration window. Precondition
// failures come back as conflict errors; the booking is created
// CONFIRMED with payment PENDING.
func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*model.Booking, error) {
	txn := s.tracer.StartTransaction("booking.create")
	defer s.tracer.EndTransaction(txn)
	s.tracer.AddAttribute(txn, "event_id", input.EventID)
	s.tracer.AddAttribute(txn, "user_id", input.UserID)

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	now := s.nowFn()
	var booking *model.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, input.EventID).Error; err != nil {
			if db.IsRecordNotFoundError(err) {
				return repository.ErrNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&model.Booking{}).
			Where("user_id = ? AND event_id = ?", input.UserID, input.EventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateBooking
		}

		var confirmed int64
		if err := tx.Model(&model.Booking{}).
			Where("event_id = ? AND booking_status = ?", input.EventID, model.BookingStatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if !event.HasAvailableSlots(confirmed) {
			return ErrCapacityExceeded
		}

		if !event.IsRegistrationOpen(now) {
			return ErrRegistrationClosed
		}

		booking = &model.Booking{
			UserID:           input.UserID,
			EventID:          input.EventID,
			BookingDate:      now,
			TotalAmount:      event.Price,
			PaymentStatus:    model.PaymentStatusPending,
			BookingStatus:    model.BookingStatusConfirmed,
			Notes:            input.Notes,
			EmergencyContact: input.EmergencyContact,
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		s.tracer.RecordError(txn, err)
		return nil, err
	}

	return booking, nil
}

// GetByID gets a booking by id with its user and event loaded
func (s *bookingService) GetByID(ctx context.Context, id uint) (*model.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByUser returns one page of a user's bookings, newest first
func (s *bookingService) GetByUser(ctx context.Context, userID uint, req repository.PageRequest) (repository.Page[model.Booking], error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return repository.Page[model.Booking]{}, err
	}
	return s.repo.FindByUser(ctx, userID, req)
}

// GetConfirmedByEvent returns an event's confirmed bookings
func (s *bookingService) GetConfirmedByEvent(ctx context.Context, eventID uint) ([]model.Booking, error) {
	return s.repo.FindConfirmedByEvent(ctx, eventID)
}

// GetByUserAndEvent finds the booking for a (user, event) pair
func (s *bookingService) GetByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error) {
	return s.repo.FindByUserAndEvent(ctx, userID, eventID)
}

// GetUpcomingByUser returns a user's confirmed bookings for events that
// have not taken place yet
func (s *bookingService) GetUpcomingByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	return s.repo.FindUpcomingByUser(ctx, userID, s.nowFn())
}

// GetRecent returns one page of bookings made in the last daysBack days
func (s *bookingService) GetRecent(ctx context.Context, daysBack int, req repository.PageRequest) (repository.Page[model.Booking], error) {
	if daysBack <= 0 {
		return repository.Page[model.Booking]{}, errors.New("daysBack must be positive")
	}
	since := s.nowFn().AddDate(0, 0, -daysBack)
	return s.repo.FindRecent(ctx, since, req)
}

// GetByPaymentStatus returns bookings with the given payment status
func (s *bookingService) GetByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]model.Booking, error) {
	if !status.Valid() {
		return nil, ErrUnknownEnumValue
	}
	return s.repo.FindByPaymentStatus(ctx, status)
}

// GetByBookingStatus returns bookings with the given booking status
func (s *bookingService) GetByBookingStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	if !status.Valid() {
		return nil, ErrUnknownEnumValue
	}
	return s.repo.FindByBookingStatus(ctx, status)
}

// CountAll counts all bookings
func (s *bookingService) CountAll(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

// CountConfirmedByEvent counts the confirmed bookings held against an
// event's capacity
func (s *bookingService) CountConfirmedByEvent(ctx context.Context, eventID uint) (int64, error) {
	return s.repo.CountConfirmedByEvent(ctx, eventID)
}

// UpdateBookingStatus moves a booking to the given status. Only
// transitions allowed by the booking status table go through; anything
// else is a conflict.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, id uint, next model.BookingStatus) (*model.Booking, error) {
	if !next.Valid() {
		return nil, ErrUnknownEnumValue
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.BookingStatus.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	booking.BookingStatus = next
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdatePaymentStatus moves a booking's payment to the given status.
// The payment reference is recorded when provided.
func (s *bookingService) UpdatePaymentStatus(ctx context.Context, id uint, next model.PaymentStatus, paymentReference string) (*model.Booking, error) {
	if !next.Valid() {
		return nil, ErrUnknownEnumValue
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.PaymentStatus.CanTransitionTo(next) {
		return nil, ErrInvalidPaymentTransition
	}

	booking.PaymentStatus = next
	if paymentReference != "" {
		booking.PaymentReference = paymentReference
	}
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking cancels a confirmed booking while the event's
// registration window is still open. A cancelled booking frees its slot
// immediately because capacity only counts CONFIRMED bookings.
func (s *bookingService) CancelBooking(ctx context.Context, id uint) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Event == nil {
		return nil, errors.New("booking loaded without its event")
	}

	if !booking.CanBeCancelled(booking.Event, s.nowFn()) {
		return nil, ErrBookingNotCancellable
	}

	booking.BookingStatus = model.BookingStatusCancelled
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}
