package service

import (
	"context"
	"testing"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockBlogPostRepo struct {
	mock.Mock
}

func (m *MockBlogPostRepo) Create(ctx context.Context, p *model.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBlogPostRepo) GetByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) List(ctx context.Context) ([]model.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) ListPublished(ctx context.Context) ([]model.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.BlogPost, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPortfolioItemRepo struct {
	mock.Mock
}

func (m *MockPortfolioItemRepo) Create(ctx context.Context, item *model.PortfolioItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPortfolioItemRepo) GetByID(ctx context.Context, id int64) (*model.PortfolioItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioItemRepo) GetBySlug(ctx context.Context, slug string) (*model.PortfolioItem, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioItemRepo) List(ctx context.Context) ([]model.PortfolioItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioItemRepo) ListFeatured(ctx context.Context) ([]model.PortfolioItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioItemRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.PortfolioItem, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioItemRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestContentService(posts *MockBlogPostRepo, portfolio *MockPortfolioItemRepo) ContentService {
	return NewContentService(posts, portfolio, zap.NewNop())
}

func TestContentService_CreatePost(t *testing.T) {
	t.Run("publishing at creation stamps published_at", func(t *testing.T) {
		posts := &MockBlogPostRepo{}
		posts.On("GetBySlug", mock.Anything, "launch").Return(nil, gorm.ErrRecordNotFound)
		posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.BlogPost) bool {
			return p.Status == model.BlogStatusPublished && p.PublishedAt != nil
		})).Return(nil)

		svc := newTestContentService(posts, &MockPortfolioItemRepo{})
		post, err := svc.CreatePost(context.Background(), CreatePostInput{
			Title: "Launch", Slug: "launch", Content: "We shipped.", Status: model.BlogStatusPublished,
		})
		assert.NoError(t, err)
		assert.NotNil(t, post.PublishedAt)
	})

	t.Run("draft is the default and carries no publish time", func(t *testing.T) {
		posts := &MockBlogPostRepo{}
		posts.On("GetBySlug", mock.Anything, "draft-post").Return(nil, gorm.ErrRecordNotFound)
		posts.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := newTestContentService(posts, &MockPortfolioItemRepo{})
		post, err := svc.CreatePost(context.Background(), CreatePostInput{
			Title: "WIP", Slug: "draft-post", Content: "...",
		})
		assert.NoError(t, err)
		assert.Equal(t, model.BlogStatusDraft, post.Status)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("taken slug rejected", func(t *testing.T) {
		posts := &MockBlogPostRepo{}
		posts.On("GetBySlug", mock.Anything, "launch").Return(&model.BlogPost{ID: 99, Slug: "launch"}, nil)

		svc := newTestContentService(posts, &MockPortfolioItemRepo{})
		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			Title: "Launch again", Slug: "launch", Content: "...",
		})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestContentService_UpdatePost_PublishTransition(t *testing.T) {
	published := model.BlogStatusPublished
	draft := &model.BlogPost{ID: 5, Slug: "launch", Status: model.BlogStatusDraft}

	posts := &MockBlogPostRepo{}
	posts.On("GetByID", mock.Anything, int64(5)).Return(draft, nil)
	posts.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(u map[string]interface{}) bool {
		_, stamped := u["published_at"]
		return u["status"] == model.BlogStatusPublished && stamped
	})).Return(&model.BlogPost{ID: 5, Slug: "launch", Status: model.BlogStatusPublished}, nil)

	svc := newTestContentService(posts, &MockPortfolioItemRepo{})
	post, err := svc.UpdatePost(context.Background(), 5, UpdatePostInput{Status: &published})
	assert.NoError(t, err)
	assert.Equal(t, model.BlogStatusPublished, post.Status)
	posts.AssertExpectations(t)
}

func TestContentService_GetPublishedPost(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*MockBlogPostRepo)
		expectErr error
	}{
		{
			name: "published post served",
			setup: func(r *MockBlogPostRepo) {
				r.On("GetBySlug", mock.Anything, "launch").
					Return(&model.BlogPost{ID: 5, Slug: "launch", Status: model.BlogStatusPublished}, nil)
			},
		},
		{
			name: "draft slug reads as not found",
			setup: func(r *MockBlogPostRepo) {
				r.On("GetBySlug", mock.Anything, "launch").
					Return(&model.BlogPost{ID: 5, Slug: "launch", Status: model.BlogStatusDraft}, nil)
			},
			expectErr: ErrNotFound,
		},
		{
			name: "archived slug reads as not found",
			setup: func(r *MockBlogPostRepo) {
				r.On("GetBySlug", mock.Anything, "launch").
					Return(&model.BlogPost{ID: 5, Slug: "launch", Status: model.BlogStatusArchived}, nil)
			},
			expectErr: ErrNotFound,
		},
		{
			name: "unknown slug",
			setup: func(r *MockBlogPostRepo) {
				r.On("GetBySlug", mock.Anything, "launch").Return(nil, gorm.ErrRecordNotFound)
			},
			expectErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &MockBlogPostRepo{}
			tt.setup(posts)
			svc := newTestContentService(posts, &MockPortfolioItemRepo{})

			post, err := svc.GetPublishedPost(context.Background(), "launch")
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.BlogStatusPublished, post.Status)
			}
		})
	}
}

func TestContentService_GetPublicPortfolioItem(t *testing.T) {
	tests := []struct {
		name      string
		item      *model.PortfolioItem
		repoErr   error
		expectErr error
	}{
		{name: "active item served", item: &model.PortfolioItem{ID: 4, Slug: "my-site", Status: model.PortfolioStatusActive}},
		{name: "featured item served", item: &model.PortfolioItem{ID: 4, Slug: "my-site", Status: model.PortfolioStatusFeatured}},
		{name: "archived item hidden", item: &model.PortfolioItem{ID: 4, Slug: "my-site", Status: model.PortfolioStatusArchived}, expectErr: ErrNotFound},
		{name: "unknown slug", repoErr: gorm.ErrRecordNotFound, expectErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			portfolio := &MockPortfolioItemRepo{}
			portfolio.On("GetBySlug", mock.Anything, "my-site").Return(tt.item, tt.repoErr)

			svc := newTestContentService(&MockBlogPostRepo{}, portfolio)
			item, err := svc.GetPublicPortfolioItem(context.Background(), "my-site")
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(4), item.ID)
			}
		})
	}
}

func TestContentService_UpdatePortfolioItem_SlugConflict(t *testing.T) {
	slug := "other-site"
	portfolio := &MockPortfolioItemRepo{}
	portfolio.On("GetByID", mock.Anything, int64(2)).
		Return(&model.PortfolioItem{ID: 2, Slug: "my-site"}, nil)
	portfolio.On("GetBySlug", mock.Anything, "other-site").
		Return(&model.PortfolioItem{ID: 8, Slug: "other-site"}, nil)

	svc := newTestContentService(&MockBlogPostRepo{}, portfolio)
	_, err := svc.UpdatePortfolioItem(context.Background(), 2, UpdatePortfolioItemInput{Slug: &slug})
	assert.ErrorIs(t, err, ErrSlugTaken)
}
