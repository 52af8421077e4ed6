package repo

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type ShowcaseProjectRepo interface {
	Create(ctx context.Context, p *model.ShowcaseProject) error
	List(ctx context.Context) ([]model.ShowcaseProject, error)
	ListFeatured(ctx context.Context) ([]model.ShowcaseProject, error)
}

type showcaseProjectRepo struct{ db *gorm.DB }

func NewShowcaseProjectRepo(db *gorm.DB) ShowcaseProjectRepo {
	return &showcaseProjectRepo{db: db}
}

func (r *showcaseProjectRepo) Create(ctx context.Context, p *model.ShowcaseProject) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *showcaseProjectRepo) List(ctx context.Context) ([]model.ShowcaseProject, error) {
	var projects []model.ShowcaseProject
	return projects, r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&projects).Error
}

func (r *showcaseProjectRepo) ListFeatured(ctx context.Context) ([]model.ShowcaseProject, error) {
	var projects []model.ShowcaseProject
	return projects, r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC, id DESC").
		Find(&projects).Error
}
