package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, c *model.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepo) GetByAccessCode(ctx context.Context, code string) (*model.Client, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepo) List(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

type MockClientProjectRepo struct {
	mock.Mock
}

func (m *MockClientProjectRepo) Create(ctx context.Context, p *model.ClientProject) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockClientProjectRepo) GetOwned(ctx context.Context, projectID, clientID int64) (*model.ClientProject, error) {
	args := m.Called(ctx, projectID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientProject), args.Error(1)
}

func (m *MockClientProjectRepo) GetByID(ctx context.Context, projectID int64) (*model.ClientProject, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientProject), args.Error(1)
}

func (m *MockClientProjectRepo) ListByClient(ctx context.Context, clientID int64) ([]model.ClientProject, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClientProject), args.Error(1)
}

func (m *MockClientProjectRepo) ListAll(ctx context.Context) ([]model.ClientProject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClientProject), args.Error(1)
}

func (m *MockClientProjectRepo) UpdateCAS(ctx context.Context, projectID, revision int64, updates map[string]interface{}) (*model.ClientProject, error) {
	args := m.Called(ctx, projectID, revision, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientProject), args.Error(1)
}

type MockProjectMilestoneRepo struct {
	mock.Mock
}

func (m *MockProjectMilestoneRepo) Create(ctx context.Context, ms *model.ProjectMilestone) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockProjectMilestoneRepo) GetByID(ctx context.Context, milestoneID int64) (*model.ProjectMilestone, error) {
	args := m.Called(ctx, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMilestone), args.Error(1)
}

func (m *MockProjectMilestoneRepo) ListByProject(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMilestone), args.Error(1)
}

func (m *MockProjectMilestoneRepo) UpdateCAS(ctx context.Context, milestoneID, revision int64, updates map[string]interface{}) (*model.ProjectMilestone, error) {
	args := m.Called(ctx, milestoneID, revision, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMilestone), args.Error(1)
}

type MockProjectUpdateRepo struct {
	mock.Mock
}

func (m *MockProjectUpdateRepo) Create(ctx context.Context, u *model.ProjectUpdate) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockProjectUpdateRepo) GetByID(ctx context.Context, updateID int64) (*model.ProjectUpdate, error) {
	args := m.Called(ctx, updateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectUpdate), args.Error(1)
}

func (m *MockProjectUpdateRepo) ListByProject(ctx context.Context, projectID int64, visibleOnly bool) ([]model.ProjectUpdate, error) {
	args := m.Called(ctx, projectID, visibleOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectUpdate), args.Error(1)
}

func (m *MockProjectUpdateRepo) Update(ctx context.Context, updateID int64, updates map[string]interface{}) (*model.ProjectUpdate, error) {
	args := m.Called(ctx, updateID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectUpdate), args.Error(1)
}

func portalTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "studio-api"},
		Portal: config.PortalConfig{
			JWTSecret:     "test-secret",
			SessionTTLMin: 60,
		},
	}
}

func newTestPortalService(clients *MockClientRepo, projects *MockClientProjectRepo, milestones *MockProjectMilestoneRepo, updates *MockProjectUpdateRepo) PortalService {
	return NewPortalService(clients, projects, milestones, updates, nil, portalTestConfig(), zap.NewNop())
}

func TestPortalService_Login(t *testing.T) {
	stored := &model.Client{ID: 7, Name: "Acme", Email: "ops@acme.test", AccessCode: "K7MWPX3R"}

	tests := []struct {
		name      string
		code      string
		setup     func(*MockClientRepo)
		expectErr error
	}{
		{
			name: "exact match succeeds",
			code: "K7MWPX3R",
			setup: func(r *MockClientRepo) {
				r.On("GetByAccessCode", mock.Anything, "K7MWPX3R").Return(stored, nil)
			},
		},
		{
			name:      "empty code rejected before any lookup",
			code:      "",
			setup:     func(r *MockClientRepo) {},
			expectErr: ErrInvalidAccessCode,
		},
		{
			name: "prefix does not match",
			code: "K7MW",
			setup: func(r *MockClientRepo) {
				r.On("GetByAccessCode", mock.Anything, "K7MW").Return(nil, gorm.ErrRecordNotFound)
			},
			expectErr: ErrInvalidAccessCode,
		},
		{
			name: "code with suffix does not match",
			code: "K7MWPX3R9",
			setup: func(r *MockClientRepo) {
				r.On("GetByAccessCode", mock.Anything, "K7MWPX3R9").Return(nil, gorm.ErrRecordNotFound)
			},
			expectErr: ErrInvalidAccessCode,
		},
		{
			name: "case variant does not match",
			code: "k7mwpx3r",
			setup: func(r *MockClientRepo) {
				r.On("GetByAccessCode", mock.Anything, "k7mwpx3r").Return(nil, gorm.ErrRecordNotFound)
			},
			expectErr: ErrInvalidAccessCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := &MockClientRepo{}
			tt.setup(clients)
			svc := newTestPortalService(clients, &MockClientProjectRepo{}, &MockProjectMilestoneRepo{}, &MockProjectUpdateRepo{})

			client, token, err := svc.Login(context.Background(), tt.code)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, client)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.ID, client.ID)
				assert.NotEmpty(t, token)

				claims := &jwt.RegisteredClaims{}
				parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
					return []byte("test-secret"), nil
				})
				assert.NoError(t, err)
				assert.True(t, parsed.Valid)
				assert.Equal(t, "7", claims.Subject)
			}
			clients.AssertExpectations(t)
		})
	}
}

func TestPortalService_GetProject_OwnershipIsolation(t *testing.T) {
	projects := &MockClientProjectRepo{}
	// project 3 belongs to client 1; client 2 asking for it reads not found
	projects.On("GetOwned", mock.Anything, int64(3), int64(2)).Return(nil, gorm.ErrRecordNotFound)
	projects.On("GetOwned", mock.Anything, int64(3), int64(1)).Return(&model.ClientProject{
		ID: 3, ClientID: 1, Status: model.ProjectStatusInProgress, Revision: 1,
	}, nil)

	svc := newTestPortalService(&MockClientRepo{}, projects, &MockProjectMilestoneRepo{}, &MockProjectUpdateRepo{})

	_, err := svc.GetProject(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.GetProject(context.Background(), 3, 1)
	assert.NoError(t, err)
	assert.Equal(t, 60, p.Progress)
}

func TestPortalService_ListMilestones_ResolvesThroughProject(t *testing.T) {
	projects := &MockClientProjectRepo{}
	milestones := &MockProjectMilestoneRepo{}

	projects.On("GetOwned", mock.Anything, int64(5), int64(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestPortalService(&MockClientRepo{}, projects, milestones, &MockProjectUpdateRepo{})

	_, err := svc.ListMilestones(context.Background(), 5, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	// the child repo is never touched when the aggregate check fails
	milestones.AssertNotCalled(t, "ListByProject", mock.Anything, mock.Anything)
}

func TestPortalService_ListVisibleUpdates(t *testing.T) {
	projects := &MockClientProjectRepo{}
	updates := &MockProjectUpdateRepo{}

	projects.On("GetOwned", mock.Anything, int64(4), int64(1)).Return(&model.ClientProject{
		ID: 4, ClientID: 1, Status: model.ProjectStatusPending, Revision: 1,
	}, nil)
	updates.On("ListByProject", mock.Anything, int64(4), true).Return([]model.ProjectUpdate{
		{ID: 1, ProjectID: 4, Title: "kickoff", IsClientVisible: true},
		{ID: 2, ProjectID: 4, Title: "design ready", IsClientVisible: true, AttachmentURL: "https://cdn.example.com/mockup.png"},
	}, nil)

	svc := newTestPortalService(&MockClientRepo{}, projects, &MockProjectMilestoneRepo{}, updates)

	out, err := svc.ListVisibleUpdates(context.Background(), 4, 1)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	// non-s3 attachment URLs pass through untouched
	assert.Equal(t, "https://cdn.example.com/mockup.png", out[1].AttachmentURL)

	updates.AssertCalled(t, "ListByProject", mock.Anything, int64(4), true)
}
