package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sportsevents/sports-events-api/internal/cache"
	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
)

// VenueService defines the interface for venue operations
type VenueService interface {
	GetAll(ctx context.Context, req repository.PageRequest) (repository.Page[model.Venue], error)
	GetByID(ctx context.Context, id uint) (*model.Venue, error)
	GetByCity(ctx context.Context, city string) ([]model.Venue, error)
	GetCities(ctx context.Context) ([]string, error)
	GetWithUpcomingEvents(ctx context.Context) ([]model.Venue, error)
	Search(ctx context.Context, query string, req repository.PageRequest) (repository.Page[model.Venue], error)
	GetByMinCapacity(ctx context.Context, minCapacity int) ([]model.Venue, error)
	Create(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	Update(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	Delete(ctx context.Context, id uint) error
}

// venueService implements VenueService with the same read-through cache
// discipline as categories: any write clears the venue partition.
type venueService struct {
	repo      repository.VenueRepository
	eventRepo repository.EventRepository
	cache     cache.CacheClient
	nowFn     func() time.Time
}

// NewVenueService creates a new venue service
func NewVenueService(repo repository.VenueRepository, eventRepo repository.EventRepository, cacheClient cache.CacheClient) VenueService {
	return &venueService{
		repo:      repo,
		eventRepo: eventRepo,
		cache:     cacheClient,
		nowFn:     time.Now,
	}
}

// GetAll returns one page of venues
func (s *venueService) GetAll(ctx context.Context, req repository.PageRequest) (repository.Page[model.Venue], error) {
	key := cache.VenuesKey(req.Page, req.Size, req.SortBy, req.SortDir)

	var cached repository.Page[model.Venue]
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	page, err := s.repo.FindAll(ctx, req)
	if err != nil {
		return repository.Page[model.Venue]{}, err
	}

	if err := s.cache.Set(ctx, key, page); err != nil {
		log.Warn().Err(err).Msg("Failed to cache venue listing")
	}

	return page, nil
}

// GetByID gets a venue by id
func (s *venueService) GetByID(ctx context.Context, id uint) (*model.Venue, error) {
	var cached model.Venue
	if err := s.cache.Get(ctx, cache.VenueIDKey(id), &cached); err == nil {
		return &cached, nil
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.VenueIDKey(id), venue); err != nil {
		log.Warn().Err(err).Uint("venue_id", id).Msg("Failed to cache venue")
	}

	return venue, nil
}

// GetByCity returns venues in a city
func (s *venueService) GetByCity(ctx context.Context, city string) ([]model.Venue, error) {
	var cached []model.Venue
	if err := s.cache.Get(ctx, cache.VenuesByCityKey(city), &cached); err == nil {
		return cached, nil
	}

	venues, err := s.repo.FindByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.VenuesByCityKey(city), venues); err != nil {
		log.Warn().Err(err).Str("city", city).Msg("Failed to cache venues by city")
	}

	return venues, nil
}

// GetCities returns the distinct cities that have venues
func (s *venueService) GetCities(ctx context.Context) ([]string, error) {
	var cached []string
	if err := s.cache.Get(ctx, cache.VenueCitiesKey(), &cached); err == nil {
		return cached, nil
	}

	cities, err := s.repo.FindAllCities(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.VenueCitiesKey(), cities); err != nil {
		log.Warn().Err(err).Msg("Failed to cache city listing")
	}

	return cities, nil
}

// GetWithUpcomingEvents returns venues hosting upcoming active events
func (s *venueService) GetWithUpcomingEvents(ctx context.Context) ([]model.Venue, error) {
	var cached []model.Venue
	if err := s.cache.Get(ctx, cache.VenuesWithEventsKey(), &cached); err == nil {
		return cached, nil
	}

	venues, err := s.repo.FindWithUpcomingEvents(ctx, s.nowFn())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.VenuesWithEventsKey(), venues); err != nil {
		log.Warn().Err(err).Msg("Failed to cache venues with events")
	}

	return venues, nil
}

// Search returns one page of venues matching the query by name or city
func (s *venueService) Search(ctx context.Context, query string, req repository.PageRequest) (repository.Page[model.Venue], error) {
	key := cache.VenueSearchKey(query, req.Page, req.Size)

	var cached repository.Page[model.Venue]
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	page, err := s.repo.Search(ctx, query, req)
	if err != nil {
		return repository.Page[model.Venue]{}, err
	}

	if err := s.cache.Set(ctx, key, page); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Failed to cache venue search")
	}

	return page, nil
}

// GetByMinCapacity returns venues with at least the given capacity
func (s *venueService) GetByMinCapacity(ctx context.Context, minCapacity int) ([]model.Venue, error) {
	var cached []model.Venue
	if err := s.cache.Get(ctx, cache.VenuesByCapacityKey(minCapacity), &cached); err == nil {
		return cached, nil
	}

	venues, err := s.repo.FindByMinCapacity(ctx, minCapacity)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.VenuesByCapacityKey(minCapacity), venues); err != nil {
		log.Warn().Err(err).Int("min_capacity", minCapacity).Msg("Failed to cache venues by capacity")
	}

	return venues, nil
}

// Create creates a new venue
func (s *venueService) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return venue, nil
}

// Update saves an existing venue
func (s *venueService) Update(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if _, err := s.repo.FindByID(ctx, venue.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return venue, nil
}

// Delete removes a venue. Deleting never cascades: a venue that still
// has events is rejected with a conflict so event data cannot be lost
// silently.
func (s *venueService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.eventRepo.CountByVenue(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrVenueHasEvents
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *venueService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePartition(ctx, cache.VenuePartition); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate venue cache partition")
	}
}
