package service

import (
	"context"
	"errors"
	"time"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"github.com/pixelforge-studio/studio-api/internal/pkg/paging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const contactPageSize = 50

// ContactService takes public contact-form submissions and gives admins a
// paged inbox over them.
type ContactService interface {
	Submit(ctx context.Context, in SubmitContactInput) (*model.ContactMessage, error)
	List(ctx context.Context, cursor string, limit int) (*ContactPage, error)
	UpdateStatus(ctx context.Context, messageID int64, status string) (*model.ContactMessage, error)
}

type contactService struct {
	messages repo.ContactMessageRepo
	log      *zap.Logger
}

func NewContactService(messages repo.ContactMessageRepo, log *zap.Logger) ContactService {
	return &contactService{messages: messages, log: log}
}

type SubmitContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

func (s *contactService) Submit(ctx context.Context, in SubmitContactInput) (*model.ContactMessage, error) {
	m := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Message: in.Message,
		Status:  model.ContactStatusNew,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("contact message received",
		zap.Int64("message_id", m.ID),
		zap.String("service", m.Service))
	return m, nil
}

type ContactPage struct {
	Messages   []model.ContactMessage `json:"messages"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

func (s *contactService) List(ctx context.Context, cursor string, limit int) (*ContactPage, error) {
	if limit <= 0 || limit > contactPageSize {
		limit = contactPageSize
	}

	var (
		after   time.Time
		afterID int64
	)
	if cursor != "" {
		var err error
		after, afterID, err = paging.DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
	}

	// Fetch one extra row to know whether another page exists.
	messages, err := s.messages.ListWithCursor(ctx, after, afterID, limit+1)
	if err != nil {
		return nil, err
	}

	page := &ContactPage{Messages: messages}
	if len(messages) > limit {
		page.Messages = messages[:limit]
		last := page.Messages[limit-1]
		page.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, messageID int64, status string) (*model.ContactMessage, error) {
	m, err := s.messages.UpdateStatus(ctx, messageID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
