package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/service"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*model.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) GetByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if category, ok := args.Get(0).(*model.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) GetWithActiveEvents(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, category)
	if created, ok := args.Get(0).(*model.Category); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, category)
	if updated, ok := args.Get(0).(*model.Category); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCategoryRouter(svc service.CategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCategoryHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func TestCreateCategoryAnswersOK(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Create", mock.Anything, mock.Anything).
		Return(&model.Category{ID: 7, Name: "Running"}, nil)

	router := newCategoryRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Running"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"Running"`)
	svc.AssertExpectations(t)
}

func TestDeleteCategoryAnswersOK(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Delete", mock.Anything, uint(7)).Return(nil)

	router := newCategoryRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/categories/7", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDeleteCategoryWithEventsConflicts(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Delete", mock.Anything, uint(7)).Return(service.ErrCategoryHasEvents)

	router := newCategoryRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/categories/7", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "CONFLICT")
	svc.AssertExpectations(t)
}
