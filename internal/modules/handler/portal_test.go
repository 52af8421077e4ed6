package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/middleware"
	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPortalService struct {
	mock.Mock
}

func (m *MockPortalService) Login(ctx context.Context, accessCode string) (*model.Client, string, error) {
	args := m.Called(ctx, accessCode)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.Client), args.String(1), args.Error(2)
}

func (m *MockPortalService) ListProjects(ctx context.Context, clientID int64) ([]model.ClientProject, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClientProject), args.Error(1)
}

func (m *MockPortalService) GetProject(ctx context.Context, projectID, clientID int64) (*model.ClientProject, error) {
	args := m.Called(ctx, projectID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientProject), args.Error(1)
}

func (m *MockPortalService) ListMilestones(ctx context.Context, projectID, clientID int64) ([]model.ProjectMilestone, error) {
	args := m.Called(ctx, projectID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMilestone), args.Error(1)
}

func (m *MockPortalService) ListVisibleUpdates(ctx context.Context, projectID, clientID int64) ([]model.ProjectUpdate, error) {
	args := m.Called(ctx, projectID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectUpdate), args.Error(1)
}

func portalTestRouter(svc service.PortalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	h := NewPortalHandler(svc)
	r := gin.New()
	r.POST("/portal/login", h.Login)

	authed := r.Group("")
	authed.Use(func(c *gin.Context) { c.Set(middleware.ClientIDKey, int64(1)) })
	authed.GET("/portal/projects/:project_id", h.GetProject)
	return r
}

func TestPortalHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(*MockPortalService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "valid code returns client and token",
			body: `{"access_code":"K7MWPX3R"}`,
			setup: func(svc *MockPortalService) {
				svc.On("Login", mock.Anything, "K7MWPX3R").
					Return(&model.Client{ID: 7, Name: "Acme"}, "token123", nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp serializer.Response
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				data := resp.Data.(map[string]interface{})
				assert.Equal(t, "token123", data["token"])
			},
		},
		{
			name: "unknown code is unauthorized",
			body: `{"access_code":"WRONG234"}`,
			setup: func(svc *MockPortalService) {
				svc.On("Login", mock.Anything, "WRONG234").
					Return(nil, "", service.ErrInvalidAccessCode)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing code is a binding failure",
			body:           `{}`,
			setup:          func(svc *MockPortalService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPortalService{}
			tt.setup(svc)
			r := portalTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/portal/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPortalHandler_GetProject(t *testing.T) {
	t.Run("owned project", func(t *testing.T) {
		svc := &MockPortalService{}
		svc.On("GetProject", mock.Anything, int64(3), int64(1)).
			Return(&model.ClientProject{ID: 3, ClientID: 1, Status: model.ProjectStatusReview, Progress: 90}, nil)
		r := portalTestRouter(svc)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/projects/3", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp serializer.Response
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(90), data["progress"])
	})

	t.Run("foreign project maps to 404", func(t *testing.T) {
		svc := &MockPortalService{}
		svc.On("GetProject", mock.Anything, int64(3), int64(1)).Return(nil, service.ErrNotFound)
		r := portalTestRouter(svc)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/projects/3", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		r := portalTestRouter(&MockPortalService{})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/projects/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
