package service

import (
	"context"
	"errors"
	"time"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentService manages marketing content: blog posts and portfolio items.
// Public readers only ever see published posts and featured, non-archived
// portfolio work; the full sets are admin-only.
type ContentService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*model.BlogPost, error)
	UpdatePost(ctx context.Context, postID int64, in UpdatePostInput) (*model.BlogPost, error)
	DeletePost(ctx context.Context, postID int64) error
	ListPosts(ctx context.Context) ([]model.BlogPost, error)
	ListPublishedPosts(ctx context.Context) ([]model.BlogPost, error)
	GetPublishedPost(ctx context.Context, slug string) (*model.BlogPost, error)

	CreatePortfolioItem(ctx context.Context, in CreatePortfolioItemInput) (*model.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, itemID int64, in UpdatePortfolioItemInput) (*model.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, itemID int64) error
	ListPortfolioItems(ctx context.Context) ([]model.PortfolioItem, error)
	ListFeaturedPortfolio(ctx context.Context) ([]model.PortfolioItem, error)
	GetPublicPortfolioItem(ctx context.Context, slug string) (*model.PortfolioItem, error)
}

type contentService struct {
	posts     repo.BlogPostRepo
	portfolio repo.PortfolioItemRepo
	log       *zap.Logger
}

func NewContentService(posts repo.BlogPostRepo, portfolio repo.PortfolioItemRepo, log *zap.Logger) ContentService {
	return &contentService{posts: posts, portfolio: portfolio, log: log}
}

type CreatePostInput struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	CoverURL string   `json:"cover_url"`
	Status   string   `json:"status"`
}

func (s *contentService) CreatePost(ctx context.Context, in CreatePostInput) (*model.BlogPost, error) {
	if err := s.checkPostSlugFree(ctx, in.Slug, 0); err != nil {
		return nil, err
	}

	post := &model.BlogPost{
		Title:    in.Title,
		Slug:     in.Slug,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		Tags:     datatypes.JSONSlice[string](in.Tags),
		CoverURL: in.CoverURL,
		Status:   in.Status,
	}
	if post.Status == "" {
		post.Status = model.BlogStatusDraft
	}
	if post.Status == model.BlogStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

type UpdatePostInput struct {
	Title    *string   `json:"title"`
	Slug     *string   `json:"slug"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	CoverURL *string   `json:"cover_url"`
	Status   *string   `json:"status"`
}

func (s *contentService) UpdatePost(ctx context.Context, postID int64, in UpdatePostInput) (*model.BlogPost, error) {
	current, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Slug != nil && *in.Slug != current.Slug {
		if err := s.checkPostSlugFree(ctx, *in.Slug, postID); err != nil {
			return nil, err
		}
		updates["slug"] = *in.Slug
	}
	if in.Excerpt != nil {
		updates["excerpt"] = *in.Excerpt
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*in.Tags)
	}
	if in.CoverURL != nil {
		updates["cover_url"] = *in.CoverURL
	}
	if in.Status != nil {
		updates["status"] = *in.Status
		// First transition into published stamps the time; re-publishing
		// after un-publishing keeps the original timestamp.
		if *in.Status == model.BlogStatusPublished && current.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	if len(updates) == 0 {
		return current, nil
	}

	post, err := s.posts.Update(ctx, postID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *contentService) DeletePost(ctx context.Context, postID int64) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.posts.Delete(ctx, postID)
}

func (s *contentService) ListPosts(ctx context.Context) ([]model.BlogPost, error) {
	return s.posts.List(ctx)
}

func (s *contentService) ListPublishedPosts(ctx context.Context) ([]model.BlogPost, error) {
	return s.posts.ListPublished(ctx)
}

// GetPublishedPost serves the public detail page. Drafts and archived posts
// read as not found so their slugs leak nothing.
func (s *contentService) GetPublishedPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.Status != model.BlogStatusPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *contentService) checkPostSlugFree(ctx context.Context, slug string, selfID int64) error {
	existing, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrSlugTaken
	}
	return nil
}

type CreatePortfolioItemInput struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url"`
	ProjectURL   string   `json:"project_url"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status"`
	Order        int      `json:"order"`
}

func (s *contentService) CreatePortfolioItem(ctx context.Context, in CreatePortfolioItemInput) (*model.PortfolioItem, error) {
	if err := s.checkItemSlugFree(ctx, in.Slug, 0); err != nil {
		return nil, err
	}

	item := &model.PortfolioItem{
		Title:        in.Title,
		Slug:         in.Slug,
		Description:  in.Description,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		ProjectURL:   in.ProjectURL,
		Technologies: datatypes.JSONSlice[string](in.Technologies),
		Featured:     in.Featured,
		Status:       in.Status,
		Order:        in.Order,
	}
	if item.Status == "" {
		item.Status = model.PortfolioStatusActive
	}
	if err := s.portfolio.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

type UpdatePortfolioItemInput struct {
	Title        *string   `json:"title"`
	Slug         *string   `json:"slug"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	ImageURL     *string   `json:"image_url"`
	ProjectURL   *string   `json:"project_url"`
	Technologies *[]string `json:"technologies"`
	Featured     *bool     `json:"featured"`
	Status       *string   `json:"status"`
	Order        *int      `json:"order"`
}

func (s *contentService) UpdatePortfolioItem(ctx context.Context, itemID int64, in UpdatePortfolioItemInput) (*model.PortfolioItem, error) {
	current, err := s.portfolio.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Slug != nil && *in.Slug != current.Slug {
		if err := s.checkItemSlugFree(ctx, *in.Slug, itemID); err != nil {
			return nil, err
		}
		updates["slug"] = *in.Slug
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.ProjectURL != nil {
		updates["project_url"] = *in.ProjectURL
	}
	if in.Technologies != nil {
		updates["technologies"] = datatypes.JSONSlice[string](*in.Technologies)
	}
	if in.Featured != nil {
		updates["featured"] = *in.Featured
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Order != nil {
		updates["order"] = *in.Order
	}
	if len(updates) == 0 {
		return current, nil
	}

	item, err := s.portfolio.Update(ctx, itemID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *contentService) DeletePortfolioItem(ctx context.Context, itemID int64) error {
	if _, err := s.portfolio.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.portfolio.Delete(ctx, itemID)
}

func (s *contentService) ListPortfolioItems(ctx context.Context) ([]model.PortfolioItem, error) {
	return s.portfolio.List(ctx)
}

func (s *contentService) ListFeaturedPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	return s.portfolio.ListFeatured(ctx)
}

// GetPublicPortfolioItem serves the public detail page. Archived work reads
// as not found.
func (s *contentService) GetPublicPortfolioItem(ctx context.Context, slug string) (*model.PortfolioItem, error) {
	item, err := s.portfolio.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Status == model.PortfolioStatusArchived {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *contentService) checkItemSlugFree(ctx context.Context, slug string, selfID int64) error {
	existing, err := s.portfolio.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrSlugTaken
	}
	return nil
}
