package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
	"github.com/sportsevents/sports-events-api/internal/service"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, input service.CreateBookingInput) (*model.Booking, error) {
	args := m.Called(ctx, input)
	if booking, ok := args.Get(0).(*model.Booking); ok {
		return booking, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) GetByID(ctx context.Context, id uint) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if booking, ok := args.Get(0).(*model.Booking); ok {
		return booking, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) GetByUser(ctx context.Context, userID uint, req repository.PageRequest) (repository.Page[model.Booking], error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(repository.Page[model.Booking]), args.Error(1)
}

func (m *MockBookingService) GetConfirmedByEvent(ctx context.Context, eventID uint) ([]model.Booking, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) GetByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error) {
	args := m.Called(ctx, userID, eventID)
	if booking, ok := args.Get(0).(*model.Booking); ok {
		return booking, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) GetUpcomingByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) GetRecent(ctx context.Context, daysBack int, req repository.PageRequest) (repository.Page[model.Booking], error) {
	args := m.Called(ctx, daysBack, req)
	return args.Get(0).(repository.Page[model.Booking]), args.Error(1)
}

func (m *MockBookingService) GetByPaymentStatus(ctx context.Context, status model.PaymentStatus) ([]model.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) GetByBookingStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingService) CountConfirmedByEvent(ctx context.Context, eventID uint) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, id uint, next model.BookingStatus) (*model.Booking, error) {
	args := m.Called(ctx, id, next)
	if booking, ok := args.Get(0).(*model.Booking); ok {
		return booking, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) UpdatePaymentStatus(ctx context.Context, id uint, next model.PaymentStatus, paymentReference string) (*model.Booking, error) {
	args := m.Called(ctx, id, next, paymentReference)
	if booking, ok := args.Get(0).(*model.Booking); ok {
		return booking, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, id uint) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if booking, ok := args.Get(0).(*model.Booking); ok {
		return booking, args.Error(1)
	}
	return nil, args.Error(1)
}

func newBookingRouter(svc service.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func TestCreateBookingEndpoint(t *testing.T) {
	mockService := new(MockBookingService)
	mockService.On("CreateBooking", mock.Anything, service.CreateBookingInput{
		UserID:  7,
		EventID: 1,
		Notes:   "first marathon",
	}).Return(&model.Booking{
		ID:            42,
		UserID:        7,
		EventID:       1,
		BookingDate:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		BookingStatus: model.BookingStatusConfirmed,
		PaymentStatus: model.PaymentStatusPending,
	}, nil)

	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings?userId=7&eventId=1&notes=first+marathon", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":42`)
	mockService.AssertExpectations(t)
}

func TestCreateBookingEndpointRequiresIDs(t *testing.T) {
	mockService := new(MockBookingService)
	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings?userId=7", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingEndpointMapsConflictTo400(t *testing.T) {
	mockService := new(MockBookingService)
	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, service.ErrDuplicateBooking)

	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings?userId=7&eventId=1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "CONFLICT")
}

func TestCreateBookingEndpointMapsNotFoundTo404(t *testing.T) {
	mockService := new(MockBookingService)
	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, repository.ErrNotFound)

	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings?userId=7&eventId=999", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingByUserAndEventEndpoint(t *testing.T) {
	mockService := new(MockBookingService)
	mockService.On("GetByUserAndEvent", mock.Anything, uint(7), uint(1)).
		Return(nil, repository.ErrNotFound)

	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/user/7/event/1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBookingStatusEndpoint(t *testing.T) {
	mockService := new(MockBookingService)
	mockService.On("UpdateBookingStatus", mock.Anything, uint(5), model.BookingStatusAttended).
		Return(&model.Booking{ID: 5, BookingStatus: model.BookingStatusAttended}, nil)

	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/5/status?status=ATTENDED", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ATTENDED")
}
