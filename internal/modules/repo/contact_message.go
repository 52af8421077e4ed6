package repo

import (
	"context"
	"time"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type ContactMessageRepo interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	// ListWithCursor pages newest-first over (created_at, id).
	ListWithCursor(ctx context.Context, afterCreatedAt time.Time, afterID int64, limit int) ([]model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.ContactMessage, error)
}

type contactMessageRepo struct{ db *gorm.DB }

func NewContactMessageRepo(db *gorm.DB) ContactMessageRepo {
	return &contactMessageRepo{db: db}
}

func (r *contactMessageRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *contactMessageRepo) ListWithCursor(ctx context.Context, afterCreatedAt time.Time, afterID int64, limit int) ([]model.ContactMessage, error) {
	q := r.db.WithContext(ctx)

	if !afterCreatedAt.IsZero() && afterID != 0 {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	var messages []model.ContactMessage
	return messages, q.Order("created_at DESC, id DESC").Limit(limit).Find(&messages).Error
}

func (r *contactMessageRepo) UpdateStatus(ctx context.Context, id int64, status string) (*model.ContactMessage, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var m model.ContactMessage
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
