package repo

import (
	"context"
	"errors"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectMilestoneRepo interface {
	Create(ctx context.Context, m *model.ProjectMilestone) error
	GetByID(ctx context.Context, milestoneID int64) (*model.ProjectMilestone, error)
	// ListByProject returns milestones in display sequence. Order values are
	// not unique, so id breaks ties for a stable sort.
	ListByProject(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error)
	UpdateCAS(ctx context.Context, milestoneID, revision int64, updates map[string]interface{}) (*model.ProjectMilestone, error)
}

type projectMilestoneRepo struct{ db *gorm.DB }

func NewProjectMilestoneRepo(db *gorm.DB) ProjectMilestoneRepo {
	return &projectMilestoneRepo{db: db}
}

func (r *projectMilestoneRepo) Create(ctx context.Context, m *model.ProjectMilestone) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *projectMilestoneRepo) GetByID(ctx context.Context, milestoneID int64) (*model.ProjectMilestone, error) {
	var m model.ProjectMilestone
	if err := r.db.WithContext(ctx).First(&m, milestoneID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *projectMilestoneRepo) ListByProject(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error) {
	var milestones []model.ProjectMilestone
	return milestones, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order(`"order" ASC, id ASC`).
		Find(&milestones).Error
}

func (r *projectMilestoneRepo) UpdateCAS(ctx context.Context, milestoneID, revision int64, updates map[string]interface{}) (*model.ProjectMilestone, error) {
	updates["revision"] = gorm.Expr("revision + 1")

	res := r.db.WithContext(ctx).
		Model(&model.ProjectMilestone{}).
		Where("id = ? AND revision = ?", milestoneID, revision).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var exists model.ProjectMilestone
		err := r.db.WithContext(ctx).Select("id").First(&exists, milestoneID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrStaleRevision
	}

	var m model.ProjectMilestone
	if err := r.db.WithContext(ctx).First(&m, milestoneID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
