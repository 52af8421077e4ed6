package repo

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectUpdateRepo interface {
	Create(ctx context.Context, u *model.ProjectUpdate) error
	GetByID(ctx context.Context, updateID int64) (*model.ProjectUpdate, error)
	// ListByProject returns updates oldest first. With visibleOnly set the
	// result is restricted to rows flagged client-visible.
	ListByProject(ctx context.Context, projectID int64, visibleOnly bool) ([]model.ProjectUpdate, error)
	Update(ctx context.Context, updateID int64, updates map[string]interface{}) (*model.ProjectUpdate, error)
}

type projectUpdateRepo struct{ db *gorm.DB }

func NewProjectUpdateRepo(db *gorm.DB) ProjectUpdateRepo {
	return &projectUpdateRepo{db: db}
}

func (r *projectUpdateRepo) Create(ctx context.Context, u *model.ProjectUpdate) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *projectUpdateRepo) GetByID(ctx context.Context, updateID int64) (*model.ProjectUpdate, error) {
	var u model.ProjectUpdate
	if err := r.db.WithContext(ctx).First(&u, updateID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *projectUpdateRepo) ListByProject(ctx context.Context, projectID int64, visibleOnly bool) ([]model.ProjectUpdate, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if visibleOnly {
		q = q.Where("is_client_visible = ?", true)
	}

	var updates []model.ProjectUpdate
	return updates, q.Order("created_at ASC, id ASC").Find(&updates).Error
}

func (r *projectUpdateRepo) Update(ctx context.Context, updateID int64, updates map[string]interface{}) (*model.ProjectUpdate, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProjectUpdate{}).
		Where("id = ?", updateID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var u model.ProjectUpdate
	if err := r.db.WithContext(ctx).First(&u, updateID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
