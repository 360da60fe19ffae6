package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMissionUseCase struct {
	mock.Mock
}

func (m *MockMissionUseCase) List(ctx context.Context) ([]domain.Mission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Mission), args.Error(1)
}

func (m *MockMissionUseCase) GetByID(ctx context.Context, id int64) (*domain.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionUseCase) Create(ctx context.Context, mission domain.Mission) (*domain.Mission, error) {
	args := m.Called(ctx, mission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionUseCase) Update(ctx context.Context, id int64, mission domain.Mission) (*domain.Mission, error) {
	args := m.Called(ctx, id, mission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionUseCase) Patch(ctx context.Context, id int64, patch domain.MissionPatch) (*domain.Mission, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func apollo() *domain.Mission {
	return &domain.Mission{
		ID:           1,
		Name:         "Apollo 11",
		LaunchDate:   time.Date(1969, 7, 16, 0, 0, 0, 0, time.UTC),
		LaunchSite:   "Kennedy",
		LandingDate:  time.Date(1969, 7, 24, 0, 0, 0, 0, time.UTC),
		LandingSite:  "Pacific",
		CrewCapacity: 3,
	}
}

func TestMissionHandler_list(t *testing.T) {
	mockService := &MockMissionUseCase{}
	handler := NewMissionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/missions/", nil)

	mockService.On("List", c.Request.Context()).Return([]domain.Mission{*apollo()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Apollo 11","launch_date":"1969-07-16","launch_site":"Kennedy","landing_date":"1969-07-24","landing_site":"Pacific","crew_capacity":3}]`, w.Body.String())
}

func TestMissionHandler_create(t *testing.T) {
	mockService := &MockMissionUseCase{}
	handler := NewMissionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/missions/", gin.H{
		"name":          "Apollo 11",
		"launch_date":   "1969-07-16",
		"launch_site":   "Kennedy",
		"landing_date":  "1969-07-24",
		"landing_site":  "Pacific",
		"crew_capacity": 3,
	})

	want := *apollo()
	want.ID = 0
	mockService.On("Create", c.Request.Context(), want).Return(apollo(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestMissionHandler_create_DuplicateName(t *testing.T) {
	mockService := &MockMissionUseCase{}
	handler := NewMissionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/missions/", gin.H{
		"name": "Apollo 11", "launch_date": "1969-07-16", "launch_site": "K",
		"landing_date": "1969-07-24", "landing_site": "P", "crew_capacity": 3,
	})

	mockService.On("Create", c.Request.Context(), mock.Anything).Return(nil, domain.ErrAlreadyExists)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissionHandler_update_NotFound(t *testing.T) {
	mockService := &MockMissionUseCase{}
	handler := NewMissionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = jsonRequest("PUT", "/missions/42/", gin.H{
		"name": "Apollo 11", "launch_date": "1969-07-16", "launch_site": "K",
		"landing_date": "1969-07-24", "landing_site": "P", "crew_capacity": 3,
	})

	mockService.On("Update", c.Request.Context(), int64(42), mock.Anything).Return(nil, domain.ErrMissionNotFound)

	handler.update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 404, decodeError(t, w).Code)
}

func TestMissionHandler_patch(t *testing.T) {
	mockService := &MockMissionUseCase{}
	handler := NewMissionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = jsonRequest("PATCH", "/missions/1/", gin.H{"crew_capacity": 4})

	mockService.On("Patch", c.Request.Context(), int64(1), mock.MatchedBy(func(p domain.MissionPatch) bool {
		return p.CrewCapacity != nil && *p.CrewCapacity == 4 && p.Name == nil
	})).Return(apollo(), nil)

	handler.patch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestMissionHandler_delete(t *testing.T) {
	mockService := &MockMissionUseCase{}
	handler := NewMissionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/missions/1/", nil)

	mockService.On("Delete", c.Request.Context(), int64(1)).Return(nil)

	handler.delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}
