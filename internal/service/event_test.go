package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindOpenForRegistration(ctx context.Context, now time.Time, filter repository.EventFilter, req repository.PageRequest) (repository.Page[model.Event], error) {
	args := m.Called(ctx, now, filter, req)
	return args.Get(0).(repository.Page[model.Event]), args.Error(1)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if event, ok := args.Get(0).(*model.Event); ok {
		return event, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) FindWithAvailableSlots(ctx context.Context, now time.Time, req repository.PageRequest) (repository.Page[model.Event], error) {
	args := m.Called(ctx, now, req)
	return args.Get(0).(repository.Page[model.Event]), args.Error(1)
}

func (m *MockEventRepository) FindUpcoming(ctx context.Context, from, until time.Time) ([]model.Event, error) {
	args := m.Called(ctx, from, until)
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventRepository) CountByStatus(ctx context.Context, status model.EventStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) CountByVenue(ctx context.Context, venueID uint) (int64, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) FindAll(ctx context.Context, req repository.PageRequest) (repository.Page[model.Venue], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(repository.Page[model.Venue]), args.Error(1)
}

func (m *MockVenueRepository) FindByID(ctx context.Context, id uint) (*model.Venue, error) {
	args := m.Called(ctx, id)
	if venue, ok := args.Get(0).(*model.Venue); ok {
		return venue, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVenueRepository) FindByCity(ctx context.Context, city string) ([]model.Venue, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]model.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindAllCities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockVenueRepository) FindWithUpcomingEvents(ctx context.Context, now time.Time) ([]model.Venue, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]model.Venue), args.Error(1)
}

func (m *MockVenueRepository) Search(ctx context.Context, query string, req repository.PageRequest) (repository.Page[model.Venue], error) {
	args := m.Called(ctx, query, req)
	return args.Get(0).(repository.Page[model.Venue]), args.Error(1)
}

func (m *MockVenueRepository) FindByMinCapacity(ctx context.Context, minCapacity int) ([]model.Venue, error) {
	args := m.Called(ctx, minCapacity)
	return args.Get(0).([]model.Venue), args.Error(1)
}

func (m *MockVenueRepository) Create(ctx context.Context, venue *model.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockVenueRepository) Update(ctx context.Context, venue *model.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validEvent() *model.Event {
	return &model.Event{
		Title:                 "City Marathon",
		EventDate:             testNow.AddDate(0, 1, 0),
		RegistrationStartDate: testNow.AddDate(0, 0, -5),
		RegistrationEndDate:   testNow.AddDate(0, 0, 20),
		EventType:             model.EventTypeMarathon,
		CategoryID:            1,
		VenueID:               1,
	}
}

func TestEventCreateRejectsInvertedWindow(t *testing.T) {
	event := validEvent()
	event.RegistrationStartDate = event.RegistrationEndDate.Add(time.Hour)

	service := &eventService{nowFn: func() time.Time { return testNow }}

	_, err := service.Create(context.Background(), event)
	require.ErrorIs(t, err, ErrInvalidRegistrationWindow)
	require.ErrorIs(t, err, ErrValidation)
}

func TestEventCreateRejectsUnknownEventType(t *testing.T) {
	event := validEvent()
	event.EventType = "SNOOKER"

	service := &eventService{nowFn: func() time.Time { return testNow }}

	_, err := service.Create(context.Background(), event)
	require.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestEventCreateRejectsUnknownCategory(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	mockCategoryRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, repository.ErrNotFound)

	service := &eventService{
		categoryRepo: mockCategoryRepo,
		nowFn:        func() time.Time { return testNow },
	}

	_, err := service.Create(context.Background(), validEvent())
	require.ErrorIs(t, err, ErrUnknownReference)
}

func TestEventCreate(t *testing.T) {
	event := validEvent()

	mockCategoryRepo := new(MockCategoryRepository)
	mockCategoryRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1}, nil)

	mockVenueRepo := new(MockVenueRepository)
	mockVenueRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Venue{ID: 1}, nil)

	mockRepo := new(MockEventRepository)
	mockRepo.On("Create", mock.Anything, event).Return(nil)
	mockRepo.On("FindByID", mock.Anything, event.ID).Return(event, nil)

	service := &eventService{
		repo:         mockRepo,
		categoryRepo: mockCategoryRepo,
		venueRepo:    mockVenueRepo,
		nowFn:        func() time.Time { return testNow },
	}

	created, err := service.Create(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, model.EventStatusActive, created.Status)
	mockRepo.AssertExpectations(t)
}

func TestEventGetUpcomingInRangeRejectsInvertedRange(t *testing.T) {
	service := &eventService{nowFn: func() time.Time { return testNow }}

	_, err := service.GetUpcomingInRange(context.Background(), testNow, testNow.Add(-time.Hour))
	require.ErrorIs(t, err, ErrValidation)
}

func TestEventHasAvailableSlotsUnlimited(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Event{ID: 1, MaxParticipants: nil}, nil)

	service := &eventService{repo: mockRepo, nowFn: func() time.Time { return testNow }}

	// Unlimited events never consult the booking count
	available, err := service.HasAvailableSlots(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, available)
}
