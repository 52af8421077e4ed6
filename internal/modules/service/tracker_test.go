package service

import (
	"context"
	"testing"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repo mocks are defined in portal_test.go.

func newTestTrackerService(clients *MockClientRepo, projects *MockClientProjectRepo, milestones *MockProjectMilestoneRepo, updates *MockProjectUpdateRepo) TrackerService {
	return NewTrackerService(clients, projects, milestones, updates, nil, zap.NewNop())
}

func TestTrackerService_CreateClient(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateClientInput
		setup     func(*MockClientRepo)
		expectErr bool
		check     func(*testing.T, *model.Client)
	}{
		{
			name:  "generates a code when none supplied",
			input: CreateClientInput{Name: "Acme", Email: "ops@acme.test"},
			setup: func(r *MockClientRepo) {
				r.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Client) bool {
					return len(c.AccessCode) == 8
				})).Return(nil)
			},
			check: func(t *testing.T, c *model.Client) {
				assert.Len(t, c.AccessCode, 8)
			},
		},
		{
			name:  "accepts a supplied code of minimum length",
			input: CreateClientInput{Name: "Acme", Email: "ops@acme.test", AccessCode: "ABC234"},
			setup: func(r *MockClientRepo) {
				r.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, c *model.Client) {
				assert.Equal(t, "ABC234", c.AccessCode)
			},
		},
		{
			name:      "rejects a short code",
			input:     CreateClientInput{Name: "Acme", Email: "ops@acme.test", AccessCode: "AB1"},
			setup:     func(r *MockClientRepo) {},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := &MockClientRepo{}
			tt.setup(clients)
			svc := newTestTrackerService(clients, &MockClientProjectRepo{}, &MockProjectMilestoneRepo{}, &MockProjectUpdateRepo{})

			c, err := svc.CreateClient(context.Background(), tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.check(t, c)
			}
			clients.AssertExpectations(t)
		})
	}
}

func TestTrackerService_CreateProject_PaidCap(t *testing.T) {
	clients := &MockClientRepo{}
	svc := newTestTrackerService(clients, &MockClientProjectRepo{}, &MockProjectMilestoneRepo{}, &MockProjectUpdateRepo{})

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{
		ClientID:   1,
		Title:      "Site redesign",
		TotalCost:  500000,
		PaidAmount: 600000,
	})
	assert.ErrorIs(t, err, ErrPaidExceedsTotal)
	// rejected before the client lookup
	clients.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTrackerService_UpdateProject(t *testing.T) {
	base := &model.ClientProject{
		ID: 3, ClientID: 1, Title: "Site redesign",
		Status: model.ProjectStatusInProgress, TotalCost: 500000, PaidAmount: 100000, Revision: 2,
	}

	newStatus := model.ProjectStatusReview
	bigPaid := int64(600000)

	tests := []struct {
		name      string
		revision  int64
		input     UpdateProjectInput
		setup     func(*MockClientProjectRepo)
		expectErr error
		check     func(*testing.T, *model.ClientProject)
	}{
		{
			name:     "status change bumps derived progress",
			revision: 2,
			input:    UpdateProjectInput{Status: &newStatus},
			setup: func(r *MockClientProjectRepo) {
				r.On("GetByID", mock.Anything, int64(3)).Return(base, nil)
				r.On("UpdateCAS", mock.Anything, int64(3), int64(2), mock.MatchedBy(func(u map[string]interface{}) bool {
					return u["status"] == model.ProjectStatusReview
				})).Return(&model.ClientProject{
					ID: 3, ClientID: 1, Status: model.ProjectStatusReview,
					TotalCost: 500000, PaidAmount: 100000, Revision: 3,
				}, nil)
			},
			check: func(t *testing.T, p *model.ClientProject) {
				assert.Equal(t, 90, p.Progress)
				assert.Equal(t, int64(3), p.Revision)
			},
		},
		{
			name:     "stale revision surfaces as conflict",
			revision: 1,
			input:    UpdateProjectInput{Status: &newStatus},
			setup: func(r *MockClientProjectRepo) {
				r.On("GetByID", mock.Anything, int64(3)).Return(base, nil)
				r.On("UpdateCAS", mock.Anything, int64(3), int64(1), mock.Anything).
					Return(nil, repo.ErrStaleRevision)
			},
			expectErr: ErrStaleRevision,
		},
		{
			name:     "paid amount may not exceed total",
			revision: 2,
			input:    UpdateProjectInput{PaidAmount: &bigPaid},
			setup: func(r *MockClientProjectRepo) {
				r.On("GetByID", mock.Anything, int64(3)).Return(base, nil)
			},
			expectErr: ErrPaidExceedsTotal,
		},
		{
			name:     "missing project",
			revision: 2,
			input:    UpdateProjectInput{Status: &newStatus},
			setup: func(r *MockClientProjectRepo) {
				r.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := &MockClientProjectRepo{}
			tt.setup(projects)
			svc := newTestTrackerService(&MockClientRepo{}, projects, &MockProjectMilestoneRepo{}, &MockProjectUpdateRepo{})

			p, err := svc.UpdateProject(context.Background(), 3, tt.revision, tt.input)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				tt.check(t, p)
			}
			projects.AssertExpectations(t)
		})
	}
}

func TestTrackerService_UpdateMilestone_StaleRevision(t *testing.T) {
	milestones := &MockProjectMilestoneRepo{}
	title := "Wireframes"
	milestones.On("UpdateCAS", mock.Anything, int64(11), int64(4), mock.Anything).
		Return(nil, repo.ErrStaleRevision)

	svc := newTestTrackerService(&MockClientRepo{}, &MockClientProjectRepo{}, milestones, &MockProjectUpdateRepo{})

	_, err := svc.UpdateMilestone(context.Background(), 11, 4, UpdateMilestoneInput{Title: &title})
	assert.ErrorIs(t, err, ErrStaleRevision)
}

func TestTrackerService_CreateUpdate_DefaultsVisible(t *testing.T) {
	projects := &MockClientProjectRepo{}
	updates := &MockProjectUpdateRepo{}

	projects.On("GetByID", mock.Anything, int64(3)).Return(&model.ClientProject{ID: 3, Revision: 1}, nil)
	updates.On("Create", mock.Anything, mock.MatchedBy(func(u *model.ProjectUpdate) bool {
		return u.IsClientVisible && u.Type == model.UpdateTypeUpdate
	})).Return(nil)

	svc := newTestTrackerService(&MockClientRepo{}, projects, &MockProjectMilestoneRepo{}, updates)

	u, err := svc.CreateUpdate(context.Background(), CreateUpdateInput{
		ProjectID: 3, Title: "Homepage deployed", Message: "Staging is live.",
	})
	assert.NoError(t, err)
	assert.True(t, u.IsClientVisible)
	updates.AssertExpectations(t)
}
