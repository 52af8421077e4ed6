package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/infra/payments"
	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// casRetries bounds how often a confirmation re-reads a project whose
// revision moved between the read and the paid-amount write.
const casRetries = 3

var ErrInvalidAmount = errors.New("amount must be positive")

// EventPublisher is the broker surface billing needs; satisfied by
// mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchangeName, routingKey string, body any) error
}

// BillingService creates payment intents against the gateway and applies the
// confirmations that come back on the billing queue. Confirmation is the only
// path that moves a project's paid amount automatically; admins can still set
// it directly through the tracker.
type BillingService interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*IntentResult, error)
	// CreatePublicIntent backs the marketing checkout: no project row yet, so
	// nothing is recorded or credited until a confirmation arrives.
	CreatePublicIntent(ctx context.Context, amount int64, packageName string) (*IntentResult, error)
	ListEvents(ctx context.Context, projectID int64) ([]model.PaymentEvent, error)
	// HandleConfirmation is the queue consumer entrypoint; the raw body is a
	// ConfirmationMessage.
	HandleConfirmation(ctx context.Context, body []byte) error
}

type billingService struct {
	projects repo.ClientProjectRepo
	events   repo.PaymentEventRepo
	gateway  *payments.GatewayClient
	pub      EventPublisher
	cfg      *config.Config
	log      *zap.Logger
}

func NewBillingService(
	projects repo.ClientProjectRepo,
	events repo.PaymentEventRepo,
	gateway *payments.GatewayClient,
	pub EventPublisher,
	cfg *config.Config,
	log *zap.Logger,
) BillingService {
	return &billingService{
		projects: projects,
		events:   events,
		gateway:  gateway,
		pub:      pub,
		cfg:      cfg,
		log:      log,
	}
}

type CreateIntentInput struct {
	ProjectID int64 `json:"project_id"`
	// Amount in minor units. Zero means the project's outstanding balance.
	Amount int64 `json:"amount"`
}

type IntentResult struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func (s *billingService) CreateIntent(ctx context.Context, in CreateIntentInput) (*IntentResult, error) {
	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	amount := in.Amount
	if amount == 0 {
		amount = project.TotalCost - project.PaidAmount
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if project.PaidAmount+amount > project.TotalCost {
		return nil, ErrPaidExceedsTotal
	}

	currency := s.cfg.Payments.Currency
	intent, err := s.gateway.CreateIntent(ctx, amount, currency,
		strconv.FormatInt(project.ID, 10), project.Package)
	if err != nil {
		return nil, fmt.Errorf("gateway create intent: %w", err)
	}

	event := &model.PaymentEvent{
		ProjectID: project.ID,
		Reference: intent.Reference,
		Kind:      model.PaymentEventIntentCreated,
		Amount:    amount,
		Payload: datatypes.JSONMap{
			"currency": currency,
			"package":  project.Package,
		},
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	if err := s.pub.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName,
		s.cfg.RabbitMQ.RoutingKey.PaymentIntentCreated,
		ConfirmationMessage{Reference: intent.Reference, ProjectID: project.ID, Amount: amount},
	); err != nil {
		// The intent is already created and recorded; losing the
		// notification only delays downstream listeners.
		s.log.Warn("publish intent_created failed",
			zap.String("reference", intent.Reference), zap.Error(err))
	}

	s.log.Info("payment intent created",
		zap.Int64("project_id", project.ID),
		zap.String("reference", intent.Reference),
		zap.Int64("amount", amount))

	return &IntentResult{
		Reference:    intent.Reference,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (s *billingService) CreatePublicIntent(ctx context.Context, amount int64, packageName string) (*IntentResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	currency := s.cfg.Payments.Currency
	intent, err := s.gateway.CreateIntent(ctx, amount, currency, "", packageName)
	if err != nil {
		return nil, fmt.Errorf("gateway create intent: %w", err)
	}

	s.log.Info("public payment intent created",
		zap.String("reference", intent.Reference),
		zap.String("package", packageName),
		zap.Int64("amount", amount))

	return &IntentResult{
		Reference:    intent.Reference,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (s *billingService) ListEvents(ctx context.Context, projectID int64) ([]model.PaymentEvent, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.events.ListByProject(ctx, projectID)
}

// ConfirmationMessage is the wire shape on the billing exchange.
type ConfirmationMessage struct {
	Reference string `json:"reference"`
	ProjectID int64  `json:"project_id"`
	Amount    int64  `json:"amount"`
}

func (s *billingService) HandleConfirmation(ctx context.Context, body []byte) error {
	var msg ConfirmationMessage
	if err := sonic.Unmarshal(body, &msg); err != nil {
		// Malformed messages never become valid; drop them.
		s.log.Error("confirmation message undecodable", zap.Error(err))
		return nil
	}
	if msg.Reference == "" || msg.ProjectID == 0 || msg.Amount <= 0 {
		s.log.Error("confirmation message invalid",
			zap.String("reference", msg.Reference),
			zap.Int64("project_id", msg.ProjectID),
			zap.Int64("amount", msg.Amount))
		return nil
	}
	return s.applyConfirmation(ctx, msg)
}

func (s *billingService) applyConfirmation(ctx context.Context, msg ConfirmationMessage) error {
	ref := confirmedReference(msg.Reference)
	seen, err := s.events.ExistsByReference(ctx, ref)
	if err != nil {
		return err
	}
	if seen {
		s.log.Debug("confirmation already applied", zap.String("reference", msg.Reference))
		return nil
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		project, err := s.projects.GetByID(ctx, msg.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Project deleted after payment; nothing left to credit.
				s.log.Warn("confirmation for missing project",
					zap.Int64("project_id", msg.ProjectID),
					zap.String("reference", msg.Reference))
				return nil
			}
			return err
		}

		newPaid := project.PaidAmount + msg.Amount
		if newPaid > project.TotalCost {
			s.log.Warn("confirmation exceeds total cost, clamping",
				zap.Int64("project_id", project.ID),
				zap.String("reference", msg.Reference),
				zap.Int64("paid", project.PaidAmount),
				zap.Int64("amount", msg.Amount),
				zap.Int64("total", project.TotalCost))
			newPaid = project.TotalCost
		}

		event := &model.PaymentEvent{
			ProjectID: project.ID,
			Reference: ref,
			Kind:      model.PaymentEventConfirmed,
			Amount:    msg.Amount,
			Payload: datatypes.JSONMap{
				"gateway_reference": msg.Reference,
			},
		}
		// The credit and its event row commit together, so a redelivery
		// after a failed write cannot double-credit.
		err = s.events.CreateWithProjectCredit(ctx, event, project.Revision, newPaid)
		if errors.Is(err, repo.ErrStaleRevision) {
			continue
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("confirmation for missing project",
				zap.Int64("project_id", msg.ProjectID),
				zap.String("reference", msg.Reference))
			return nil
		}
		if err != nil {
			return err
		}

		s.log.Info("payment confirmed",
			zap.Int64("project_id", project.ID),
			zap.String("reference", msg.Reference),
			zap.Int64("amount", msg.Amount),
			zap.Int64("paid_amount", newPaid))
		return nil
	}
	return fmt.Errorf("apply confirmation %s: revision kept moving", msg.Reference)
}

// confirmedReference namespaces the stored reference so the intent_created
// row for the same gateway reference does not trip the idempotency check.
func confirmedReference(ref string) string {
	return "confirmed:" + ref
}
