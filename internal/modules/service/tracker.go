package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pixelforge-studio/studio-api/internal/infra/blob"
	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"github.com/pixelforge-studio/studio-api/internal/pkg/accesscode"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TrackerService is the admin surface over clients, projects, milestones and
// updates. Authorization happens at the middleware; any authenticated admin
// may mutate any client's data.
type TrackerService interface {
	CreateClient(ctx context.Context, in CreateClientInput) (*model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)

	CreateProject(ctx context.Context, in CreateProjectInput) (*model.ClientProject, error)
	UpdateProject(ctx context.Context, projectID, revision int64, in UpdateProjectInput) (*model.ClientProject, error)
	ListAllProjects(ctx context.Context) ([]model.ClientProject, error)

	CreateMilestone(ctx context.Context, in CreateMilestoneInput) (*model.ProjectMilestone, error)
	UpdateMilestone(ctx context.Context, milestoneID, revision int64, in UpdateMilestoneInput) (*model.ProjectMilestone, error)
	ListMilestones(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error)

	CreateUpdate(ctx context.Context, in CreateUpdateInput) (*model.ProjectUpdate, error)
	ListUpdates(ctx context.Context, projectID int64) ([]model.ProjectUpdate, error)
	AttachFile(ctx context.Context, updateID int64, filename string, data []byte) (*model.ProjectUpdate, error)
}

type trackerService struct {
	clients    repo.ClientRepo
	projects   repo.ClientProjectRepo
	milestones repo.ProjectMilestoneRepo
	updates    repo.ProjectUpdateRepo
	blob       *blob.S3Deps
	log        *zap.Logger
}

func NewTrackerService(
	clients repo.ClientRepo,
	projects repo.ClientProjectRepo,
	milestones repo.ProjectMilestoneRepo,
	updates repo.ProjectUpdateRepo,
	blobDeps *blob.S3Deps,
	log *zap.Logger,
) TrackerService {
	return &trackerService{
		clients:    clients,
		projects:   projects,
		milestones: milestones,
		updates:    updates,
		blob:       blobDeps,
		log:        log,
	}
}

type CreateClientInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Company    string `json:"company"`
	Phone      string `json:"phone"`
	AccessCode string `json:"access_code"`
}

func (s *trackerService) CreateClient(ctx context.Context, in CreateClientInput) (*model.Client, error) {
	code := in.AccessCode
	if code == "" {
		generated, err := accesscode.Generate()
		if err != nil {
			return nil, err
		}
		code = generated
	} else if err := accesscode.Validate(code); err != nil {
		return nil, err
	}

	client := &model.Client{
		Name:       in.Name,
		Email:      in.Email,
		Company:    in.Company,
		Phone:      in.Phone,
		AccessCode: code,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *trackerService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}

type CreateProjectInput struct {
	ClientID    int64           `json:"client_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Package     string          `json:"package"`
	TotalCost   int64           `json:"total_cost"`
	PaidAmount  int64           `json:"paid_amount"`
	StartDate   *datatypes.Date `json:"start_date"`
	DueDate     *datatypes.Date `json:"due_date"`
}

func (s *trackerService) CreateProject(ctx context.Context, in CreateProjectInput) (*model.ClientProject, error) {
	if in.PaidAmount > in.TotalCost {
		return nil, ErrPaidExceedsTotal
	}
	if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %d: %w", in.ClientID, ErrNotFound)
		}
		return nil, err
	}

	p := &model.ClientProject{
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Package:     in.Package,
		TotalCost:   in.TotalCost,
		PaidAmount:  in.PaidAmount,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusPending
	}
	if p.Priority == "" {
		p.Priority = model.ProjectPriorityMedium
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Derive()
	return p, nil
}

type UpdateProjectInput struct {
	Title         *string         `json:"title"`
	Description   *string         `json:"description"`
	Status        *string         `json:"status"`
	Priority      *string         `json:"priority"`
	Package       *string         `json:"package"`
	TotalCost     *int64          `json:"total_cost"`
	PaidAmount    *int64          `json:"paid_amount"`
	StartDate     *datatypes.Date `json:"start_date"`
	DueDate       *datatypes.Date `json:"due_date"`
	CompletedDate *datatypes.Date `json:"completed_date"`
}

func (s *trackerService) UpdateProject(ctx context.Context, projectID, revision int64, in UpdateProjectInput) (*model.ClientProject, error) {
	current, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Enforce paid <= total against the values the row will end up with.
	total := current.TotalCost
	paid := current.PaidAmount
	if in.TotalCost != nil {
		total = *in.TotalCost
	}
	if in.PaidAmount != nil {
		paid = *in.PaidAmount
	}
	if paid > total {
		return nil, ErrPaidExceedsTotal
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Priority != nil {
		updates["priority"] = *in.Priority
	}
	if in.Package != nil {
		updates["package"] = *in.Package
	}
	if in.TotalCost != nil {
		updates["total_cost"] = *in.TotalCost
	}
	if in.PaidAmount != nil {
		updates["paid_amount"] = *in.PaidAmount
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.CompletedDate != nil {
		updates["completed_date"] = *in.CompletedDate
	}
	if len(updates) == 0 {
		current.Derive()
		return current, nil
	}

	p, err := s.projects.UpdateCAS(ctx, projectID, revision, updates)
	if err != nil {
		return nil, mapCASErr(err)
	}
	p.Derive()
	return p, nil
}

func (s *trackerService) ListAllProjects(ctx context.Context) ([]model.ClientProject, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Derive()
	}
	return projects, nil
}

type CreateMilestoneInput struct {
	ProjectID   int64           `json:"project_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Order       int             `json:"order"`
	DueDate     *datatypes.Date `json:"due_date"`
}

func (s *trackerService) CreateMilestone(ctx context.Context, in CreateMilestoneInput) (*model.ProjectMilestone, error) {
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", in.ProjectID, ErrNotFound)
		}
		return nil, err
	}

	m := &model.ProjectMilestone{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Order:       in.Order,
		DueDate:     in.DueDate,
	}
	if m.Status == "" {
		m.Status = model.MilestoneStatusPending
	}
	if err := s.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

type UpdateMilestoneInput struct {
	Title         *string         `json:"title"`
	Description   *string         `json:"description"`
	Status        *string         `json:"status"`
	Order         *int            `json:"order"`
	DueDate       *datatypes.Date `json:"due_date"`
	CompletedDate *datatypes.Date `json:"completed_date"`
}

func (s *trackerService) UpdateMilestone(ctx context.Context, milestoneID, revision int64, in UpdateMilestoneInput) (*model.ProjectMilestone, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Order != nil {
		updates["order"] = *in.Order
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.CompletedDate != nil {
		updates["completed_date"] = *in.CompletedDate
	}
	if len(updates) == 0 {
		m, err := s.milestones.GetByID(ctx, milestoneID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return m, nil
	}

	m, err := s.milestones.UpdateCAS(ctx, milestoneID, revision, updates)
	if err != nil {
		return nil, mapCASErr(err)
	}
	return m, nil
}

func (s *trackerService) ListMilestones(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error) {
	return s.milestones.ListByProject(ctx, projectID)
}

type CreateUpdateInput struct {
	ProjectID       int64  `json:"project_id"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	Type            string `json:"type"`
	IsClientVisible *bool  `json:"is_client_visible"`
	AttachmentURL   string `json:"attachment_url"`
}

func (s *trackerService) CreateUpdate(ctx context.Context, in CreateUpdateInput) (*model.ProjectUpdate, error) {
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", in.ProjectID, ErrNotFound)
		}
		return nil, err
	}

	visible := true
	if in.IsClientVisible != nil {
		visible = *in.IsClientVisible
	}

	u := &model.ProjectUpdate{
		ProjectID:       in.ProjectID,
		Title:           in.Title,
		Message:         in.Message,
		Type:            in.Type,
		IsClientVisible: visible,
		AttachmentURL:   in.AttachmentURL,
	}
	if u.Type == "" {
		u.Type = model.UpdateTypeUpdate
	}
	if err := s.updates.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUpdates is the admin view: hidden updates included.
func (s *trackerService) ListUpdates(ctx context.Context, projectID int64) ([]model.ProjectUpdate, error) {
	return s.updates.ListByProject(ctx, projectID, false)
}

func (s *trackerService) AttachFile(ctx context.Context, updateID int64, filename string, data []byte) (*model.ProjectUpdate, error) {
	if _, err := s.updates.GetByID(ctx, updateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.blob == nil {
		return nil, errors.New("attachment storage not configured")
	}

	contentType := mimetype.Detect(data).String()
	key := fmt.Sprintf("updates/%d/%d-%s", updateID, time.Now().UnixMilli(), filepath.Base(filename))

	url, err := s.blob.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	u, err := s.updates.Update(ctx, updateID, map[string]interface{}{"attachment_url": url})
	if err != nil {
		return nil, err
	}
	s.log.Info("attachment stored",
		zap.Int64("update_id", updateID),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))
	return u, nil
}

func mapCASErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrStaleRevision):
		return ErrStaleRevision
	default:
		return err
	}
}
