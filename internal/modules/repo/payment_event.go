package repo

import (
	"context"
	"errors"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"gorm.io/gorm"
)

type PaymentEventRepo interface {
	Create(ctx context.Context, e *model.PaymentEvent) error
	// CreateWithProjectCredit records the event and moves the project's paid
	// amount in one transaction, guarded by the project's revision, so a
	// credit never commits without its event row. Returns ErrStaleRevision
	// when the revision moved and gorm.ErrRecordNotFound when the project is
	// gone.
	CreateWithProjectCredit(ctx context.Context, e *model.PaymentEvent, revision, newPaid int64) error
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.PaymentEvent, error)
}

type paymentEventRepo struct{ db *gorm.DB }

func NewPaymentEventRepo(db *gorm.DB) PaymentEventRepo {
	return &paymentEventRepo{db: db}
}

func (r *paymentEventRepo) Create(ctx context.Context, e *model.PaymentEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *paymentEventRepo) CreateWithProjectCredit(ctx context.Context, e *model.PaymentEvent, revision, newPaid int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ClientProject{}).
			Where("id = ? AND revision = ?", e.ProjectID, revision).
			Updates(map[string]interface{}{
				"paid_amount": newPaid,
				"revision":    gorm.Expr("revision + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists model.ClientProject
			err := tx.Select("id").First(&exists, e.ProjectID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			if err != nil {
				return err
			}
			return ErrStaleRevision
		}
		return tx.Create(e).Error
	})
}

func (r *paymentEventRepo) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var e model.PaymentEvent
	err := r.db.WithContext(ctx).
		Select("id").
		Where("reference = ?", reference).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *paymentEventRepo) ListByProject(ctx context.Context, projectID int64) ([]model.PaymentEvent, error) {
	var events []model.PaymentEvent
	return events, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
}
