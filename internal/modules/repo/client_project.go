package repo

import (
	"context"
	"errors"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type ClientProjectRepo interface {
	Create(ctx context.Context, p *model.ClientProject) error
	// GetOwned applies the compound ownership filter: the project must both
	// exist and belong to clientID, otherwise gorm.ErrRecordNotFound.
	GetOwned(ctx context.Context, projectID, clientID int64) (*model.ClientProject, error)
	GetByID(ctx context.Context, projectID int64) (*model.ClientProject, error)
	ListByClient(ctx context.Context, clientID int64) ([]model.ClientProject, error)
	ListAll(ctx context.Context) ([]model.ClientProject, error)
	// UpdateCAS applies updates only when the stored revision matches; the
	// revision is bumped as part of the same statement. Returns
	// ErrStaleRevision when the row exists at a different revision.
	UpdateCAS(ctx context.Context, projectID, revision int64, updates map[string]interface{}) (*model.ClientProject, error)
}

type clientProjectRepo struct{ db *gorm.DB }

func NewClientProjectRepo(db *gorm.DB) ClientProjectRepo {
	return &clientProjectRepo{db: db}
}

func (r *clientProjectRepo) Create(ctx context.Context, p *model.ClientProject) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *clientProjectRepo) GetOwned(ctx context.Context, projectID, clientID int64) (*model.ClientProject, error) {
	var p model.ClientProject
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", projectID, clientID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *clientProjectRepo) GetByID(ctx context.Context, projectID int64) (*model.ClientProject, error) {
	var p model.ClientProject
	if err := r.db.WithContext(ctx).First(&p, projectID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *clientProjectRepo) ListByClient(ctx context.Context, clientID int64) ([]model.ClientProject, error) {
	var projects []model.ClientProject
	return projects, r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at ASC, id ASC").
		Find(&projects).Error
}

func (r *clientProjectRepo) ListAll(ctx context.Context) ([]model.ClientProject, error) {
	var projects []model.ClientProject
	return projects, r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&projects).Error
}

func (r *clientProjectRepo) UpdateCAS(ctx context.Context, projectID, revision int64, updates map[string]interface{}) (*model.ClientProject, error) {
	updates["revision"] = gorm.Expr("revision + 1")

	res := r.db.WithContext(ctx).
		Model(&model.ClientProject{}).
		Where("id = ? AND revision = ?", projectID, revision).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing row from a lost race.
		var exists model.ClientProject
		err := r.db.WithContext(ctx).Select("id").First(&exists, projectID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrStaleRevision
	}

	var p model.ClientProject
	if err := r.db.WithContext(ctx).First(&p, projectID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
