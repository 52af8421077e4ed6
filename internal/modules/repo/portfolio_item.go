package repo

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type PortfolioItemRepo interface {
	Create(ctx context.Context, item *model.PortfolioItem) error
	GetByID(ctx context.Context, id int64) (*model.PortfolioItem, error)
	GetBySlug(ctx context.Context, slug string) (*model.PortfolioItem, error)
	List(ctx context.Context) ([]model.PortfolioItem, error)
	ListFeatured(ctx context.Context) ([]model.PortfolioItem, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.PortfolioItem, error)
	Delete(ctx context.Context, id int64) error
}

type portfolioItemRepo struct{ db *gorm.DB }

func NewPortfolioItemRepo(db *gorm.DB) PortfolioItemRepo {
	return &portfolioItemRepo{db: db}
}

func (r *portfolioItemRepo) Create(ctx context.Context, item *model.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *portfolioItemRepo) GetByID(ctx context.Context, id int64) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioItemRepo) GetBySlug(ctx context.Context, slug string) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioItemRepo) List(ctx context.Context) ([]model.PortfolioItem, error) {
	var items []model.PortfolioItem
	return items, r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}

// ListFeatured returns the public marketing subset: featured, not archived,
// explicit display order first.
func (r *portfolioItemRepo) ListFeatured(ctx context.Context) ([]model.PortfolioItem, error) {
	var items []model.PortfolioItem
	return items, r.db.WithContext(ctx).
		Where("featured = ? AND status <> ?", true, model.PortfolioStatusArchived).
		Order(`"order" ASC, created_at DESC`).
		Find(&items).Error
}

func (r *portfolioItemRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.PortfolioItem, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PortfolioItem{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var item model.PortfolioItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioItemRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.PortfolioItem{}, id).Error
}
