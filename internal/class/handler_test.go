package class

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListUpcoming(ctx context.Context) ([]Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Class), args.Error(1)
}

func (m *MockService) ListToday(ctx context.Context) ([]Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Class), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, req CreateClassRequest, coachID int) (*Class, error) {
	args := m.Called(ctx, req, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id int, req UpdateClassRequest) (*Class, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", 2)
		c.Set("user_email", "coach@example.com")
		c.Set("user_role", "coach")
	})
	router.GET("/classes", handler.ListUpcoming)
	router.GET("/classes/today", handler.ListToday)
	router.POST("/classes", handler.Create)
	router.PUT("/classes/:classID", handler.Update)
	router.DELETE("/classes/:classID", handler.Delete)

	return router
}

func TestHandler_Create(t *testing.T) {
	createReq := CreateClassRequest{
		Name:      "CrossFit WOD",
		Date:      "2024-06-02",
		StartTime: "18:00:00",
		EndTime:   "19:00:00",
		Capacity:  10,
	}

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "date taken", serviceErr: ErrDateTaken, wantStatus: http.StatusBadRequest},
		{name: "coach not found", serviceErr: ErrCoachNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid time range", serviceErr: ErrInvalidTimeRange, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			call := svc.On("Create", mock.Anything, createReq, 2)
			if tt.serviceErr != nil {
				call.Return(nil, tt.serviceErr)
			} else {
				call.Return(&Class{ID: 1, Name: createReq.Name, Capacity: 10, CoachID: 2}, nil)
			}

			body, _ := json.Marshal(createReq)
			req := httptest.NewRequest("POST", "/classes", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			setupRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "not found", serviceErr: ErrClassNotFound, wantStatus: http.StatusNotFound},
		{name: "has reservations", serviceErr: ErrClassHasReservations, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Delete", mock.Anything, 4).Return(tt.serviceErr)

			req := httptest.NewRequest("DELETE", "/classes/4", nil)
			w := httptest.NewRecorder()

			setupRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_ListUpcoming(t *testing.T) {
	svc := new(MockService)
	svc.On("ListUpcoming", mock.Anything).Return([]Class{
		{ID: 1, Name: "CrossFit WOD", StartTime: "18:00:00", EndTime: "19:00:00", Capacity: 10, CoachID: 2},
	}, nil)

	req := httptest.NewRequest("GET", "/classes", nil)
	w := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []Class
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "CrossFit WOD", got[0].Name)
}
