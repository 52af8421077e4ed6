package repo

import (
	"context"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type ClientRepo interface {
	Create(ctx context.Context, c *model.Client) error
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetByAccessCode(ctx context.Context, code string) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepo(db *gorm.DB) ClientRepo {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByAccessCode is the access gate's lookup: exact, case-sensitive match on
// the stored code. Postgres text comparison is case-sensitive, so no extra
// normalization happens here.
func (r *clientRepo) GetByAccessCode(ctx context.Context, code string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).
		Where("access_code = ?", code).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	return clients, r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&clients).Error
}
