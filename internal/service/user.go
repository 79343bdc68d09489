package service

import (
	"context"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
)

// UserService defines the interface for user operations
type UserService interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByCity(ctx context.Context, city string) ([]model.User, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

// userService implements UserService. User reads are not cached: they
// are low-volume and always want fresh contact details.
type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// GetByID gets a user by id
func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByEmail gets a user by their unique email
func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// GetByCity returns users in a city ordered by name
func (s *userService) GetByCity(ctx context.Context, city string) ([]model.User, error) {
	return s.repo.FindByCity(ctx, city)
}

// CountAll counts all registered users
func (s *userService) CountAll(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

// Create registers a new user. The email must be unique.
func (s *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	taken, err := s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update saves an existing user. Changing the email re-checks uniqueness.
func (s *userService) Update(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if user.Email != existing.Email {
		taken, err := s.repo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user by id
func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
