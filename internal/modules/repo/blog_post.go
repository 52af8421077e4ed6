package repo

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type BlogPostRepo interface {
	Create(ctx context.Context, p *model.BlogPost) error
	GetByID(ctx context.Context, id int64) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context) ([]model.BlogPost, error)
	ListPublished(ctx context.Context) ([]model.BlogPost, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.BlogPost, error)
	Delete(ctx context.Context, id int64) error
}

type blogPostRepo struct{ db *gorm.DB }

func NewBlogPostRepo(db *gorm.DB) BlogPostRepo {
	return &blogPostRepo{db: db}
}

func (r *blogPostRepo) Create(ctx context.Context, p *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *blogPostRepo) GetByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	var p model.BlogPost
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *blogPostRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var p model.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *blogPostRepo) List(ctx context.Context) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	return posts, r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
}

func (r *blogPostRepo) ListPublished(ctx context.Context) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	return posts, r.db.WithContext(ctx).
		Where("status = ?", model.BlogStatusPublished).
		Order("published_at DESC, id DESC").
		Find(&posts).Error
}

func (r *blogPostRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.BlogPost, error) {
	res := r.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var p model.BlogPost
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *blogPostRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.BlogPost{}, id).Error
}
