package service

import (
	"context"
	"errors"
	"time"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
)

// upcomingWindow is how far ahead the default upcoming listing looks.
const upcomingWindow = 7 * 24 * time.Hour

// EventService defines the interface for event operations. Event reads
// are never cached: bookings mutate an event's availability far too
// often for the coarse partition-clear cache to stay truthful.
type EventService interface {
	List(ctx context.Context, filter repository.EventFilter, req repository.PageRequest) (repository.Page[model.Event], error)
	GetByID(ctx context.Context, id uint) (*model.Event, error)
	GetWithAvailableSlots(ctx context.Context, req repository.PageRequest) (repository.Page[model.Event], error)
	GetUpcoming(ctx context.Context) ([]model.Event, error)
	GetUpcomingInRange(ctx context.Context, start, end time.Time) ([]model.Event, error)
	HasAvailableSlots(ctx context.Context, id uint) (bool, error)
	IsRegistrationOpen(ctx context.Context, id uint) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id uint) error
}

// eventService implements EventService
type eventService struct {
	repo         repository.EventRepository
	categoryRepo repository.CategoryRepository
	venueRepo    repository.VenueRepository
	bookingRepo  repository.BookingRepository
	nowFn        func() time.Time
}

// NewEventService creates a new event service
func NewEventService(
	repo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	venueRepo repository.VenueRepository,
	bookingRepo repository.BookingRepository,
) EventService {
	return &eventService{
		repo:         repo,
		categoryRepo: categoryRepo,
		venueRepo:    venueRepo,
		bookingRepo:  bookingRepo,
		nowFn:        time.Now,
	}
}

// List returns one page of active, open-registration events narrowed by
// the filter
func (s *eventService) List(ctx context.Context, filter repository.EventFilter, req repository.PageRequest) (repository.Page[model.Event], error) {
	return s.repo.FindOpenForRegistration(ctx, s.nowFn(), filter, req)
}

// GetByID gets an event by id with category and venue details
func (s *eventService) GetByID(ctx context.Context, id uint) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// GetWithAvailableSlots returns one page of bookable events
func (s *eventService) GetWithAvailableSlots(ctx context.Context, req repository.PageRequest) (repository.Page[model.Event], error) {
	return s.repo.FindWithAvailableSlots(ctx, s.nowFn(), req)
}

// GetUpcoming returns active events in the next seven days
func (s *eventService) GetUpcoming(ctx context.Context) ([]model.Event, error) {
	now := s.nowFn()
	return s.repo.FindUpcoming(ctx, now, now.Add(upcomingWindow))
}

// GetUpcomingInRange returns active events within [start, end]
func (s *eventService) GetUpcomingInRange(ctx context.Context, start, end time.Time) ([]model.Event, error) {
	if end.Before(start) {
		return nil, ErrValidation
	}
	return s.repo.FindUpcoming(ctx, start, end)
}

// HasAvailableSlots reports whether the event can take another confirmed
// booking right now
func (s *eventService) HasAvailableSlots(ctx context.Context, id uint) (bool, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if event.MaxParticipants == nil {
		return true, nil
	}
	count, err := s.bookingRepo.CountConfirmedByEvent(ctx, id)
	if err != nil {
		return false, err
	}
	return event.HasAvailableSlots(count), nil
}

// IsRegistrationOpen reports whether the event's registration window is
// currently open
func (s *eventService) IsRegistrationOpen(ctx context.Context, id uint) (bool, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return event.IsRegistrationOpen(s.nowFn()), nil
}

// CountActive counts active events
func (s *eventService) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, model.EventStatusActive)
}

// Create creates a new event after validating its references and its
// registration window
func (s *eventService) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := s.validate(ctx, event); err != nil {
		return nil, err
	}
	if event.Status == "" {
		event.Status = model.EventStatusActive
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, event.ID)
}

// Update saves an existing event after re-validating it
func (s *eventService) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	if _, err := s.repo.FindByID(ctx, event.ID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, event); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, event.ID)
}

// Delete removes an event by id
func (s *eventService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *eventService) validate(ctx context.Context, event *model.Event) error {
	if !event.RegistrationStartDate.Before(event.RegistrationEndDate) {
		return ErrInvalidRegistrationWindow
	}
	if !event.EventType.Valid() {
		return ErrUnknownEnumValue
	}
	if event.DifficultyLevel != nil && !event.DifficultyLevel.Valid() {
		return ErrUnknownEnumValue
	}
	if event.Status != "" && !event.Status.Valid() {
		return ErrUnknownEnumValue
	}
	if event.Price != nil && *event.Price < 0 {
		return ErrValidation
	}
	if _, err := s.categoryRepo.FindByID(ctx, event.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownReference
		}
		return err
	}
	if _, err := s.venueRepo.FindByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownReference
		}
		return err
	}
	return nil
}
