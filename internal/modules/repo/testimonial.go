package repo

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type TestimonialRepo interface {
	Create(ctx context.Context, t *model.Testimonial) error
	List(ctx context.Context) ([]model.Testimonial, error)
	ListFeatured(ctx context.Context) ([]model.Testimonial, error)
}

type testimonialRepo struct{ db *gorm.DB }

func NewTestimonialRepo(db *gorm.DB) TestimonialRepo {
	return &testimonialRepo{db: db}
}

func (r *testimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *testimonialRepo) List(ctx context.Context) ([]model.Testimonial, error) {
	var testimonials []model.Testimonial
	return testimonials, r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&testimonials).Error
}

func (r *testimonialRepo) ListFeatured(ctx context.Context) ([]model.Testimonial, error) {
	var testimonials []model.Testimonial
	return testimonials, r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC, id DESC").
		Find(&testimonials).Error
}
