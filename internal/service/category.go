package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sportsevents/sports-events-api/internal/cache"
	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
)

// CategoryService defines the interface for category operations
type CategoryService interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	GetWithActiveEvents(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

// categoryService implements CategoryService with read-through caching.
// Categories change rarely relative to read volume, so any write clears
// the whole category cache partition.
type categoryService struct {
	repo      repository.CategoryRepository
	eventRepo repository.EventRepository
	cache     cache.CacheClient
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository, eventRepo repository.EventRepository, cacheClient cache.CacheClient) CategoryService {
	return &categoryService{
		repo:      repo,
		eventRepo: eventRepo,
		cache:     cacheClient,
	}
}

// GetAll returns all categories ordered by name
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if err := s.cache.Get(ctx, cache.CategoriesKey(), &cached); err == nil {
		return cached, nil
	}

	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.CategoriesKey(), categories); err != nil {
		log.Warn().Err(err).Msg("Failed to cache category listing")
	}

	return categories, nil
}

// GetByID gets a category by id
func (s *categoryService) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var cached model.Category
	if err := s.cache.Get(ctx, cache.CategoryIDKey(id), &cached); err == nil {
		return &cached, nil
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.CategoryIDKey(id), category); err != nil {
		log.Warn().Err(err).Uint("category_id", id).Msg("Failed to cache category")
	}

	return category, nil
}

// GetByName gets a category by its unique name
func (s *categoryService) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var cached model.Category
	if err := s.cache.Get(ctx, cache.CategoryNameKey(name), &cached); err == nil {
		return &cached, nil
	}

	category, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.CategoryNameKey(name), category); err != nil {
		log.Warn().Err(err).Str("category", name).Msg("Failed to cache category")
	}

	return category, nil
}

// GetWithActiveEvents returns categories with at least one active event
func (s *categoryService) GetWithActiveEvents(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if err := s.cache.Get(ctx, cache.CategoriesWithEventsKey(), &cached); err == nil {
		return cached, nil
	}

	categories, err := s.repo.FindWithActiveEvents(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.CategoriesWithEventsKey(), categories); err != nil {
		log.Warn().Err(err).Msg("Failed to cache categories with events")
	}

	return categories, nil
}

// Create creates a new category. The name must be unique.
func (s *categoryService) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	taken, err := s.repo.ExistsByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return category, nil
}

// Update saves an existing category
func (s *categoryService) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	existing, err := s.repo.FindByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	if category.Name != existing.Name {
		taken, err := s.repo.ExistsByName(ctx, category.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCategoryNameTaken
		}
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return category, nil
}

// Delete removes a category. Deleting never cascades: a category that
// still has events is rejected with a conflict.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.eventRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasEvents
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePartition(ctx, cache.CategoryPartition); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate category cache partition")
	}
}
