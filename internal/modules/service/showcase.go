package service

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
)

// ShowcaseService backs the public marketing grids: work samples and
// testimonials. Both are append-only from the admin side.
type ShowcaseService interface {
	CreateShowcase(ctx context.Context, in CreateShowcaseInput) (*model.ShowcaseProject, error)
	ListShowcase(ctx context.Context, featuredOnly bool) ([]model.ShowcaseProject, error)

	CreateTestimonial(ctx context.Context, in CreateTestimonialInput) (*model.Testimonial, error)
	ListTestimonials(ctx context.Context, featuredOnly bool) ([]model.Testimonial, error)
}

type showcaseService struct {
	showcase     repo.ShowcaseProjectRepo
	testimonials repo.TestimonialRepo
}

func NewShowcaseService(showcase repo.ShowcaseProjectRepo, testimonials repo.TestimonialRepo) ShowcaseService {
	return &showcaseService{showcase: showcase, testimonials: testimonials}
}

type CreateShowcaseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
}

func (s *showcaseService) CreateShowcase(ctx context.Context, in CreateShowcaseInput) (*model.ShowcaseProject, error) {
	p := &model.ShowcaseProject{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Featured:    in.Featured,
	}
	if err := s.showcase.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *showcaseService) ListShowcase(ctx context.Context, featuredOnly bool) ([]model.ShowcaseProject, error) {
	if featuredOnly {
		return s.showcase.ListFeatured(ctx)
	}
	return s.showcase.List(ctx)
}

type CreateTestimonialInput struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Company   string `json:"company"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	AvatarURL string `json:"avatar_url"`
	Featured  bool   `json:"featured"`
}

func (s *showcaseService) CreateTestimonial(ctx context.Context, in CreateTestimonialInput) (*model.Testimonial, error) {
	t := &model.Testimonial{
		Name:      in.Name,
		Position:  in.Position,
		Company:   in.Company,
		Content:   in.Content,
		Rating:    in.Rating,
		AvatarURL: in.AvatarURL,
		Featured:  in.Featured,
	}
	if t.Rating == 0 {
		t.Rating = 5
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *showcaseService) ListTestimonials(ctx context.Context, featuredOnly bool) ([]model.Testimonial, error) {
	if featuredOnly {
		return s.testimonials.ListFeatured(ctx)
	}
	return s.testimonials.List(ctx)
}
