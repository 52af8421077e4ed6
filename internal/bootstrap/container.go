package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/infra/blob"
	"github.com/pixelforge-studio/studio-api/internal/infra/cache"
	"github.com/pixelforge-studio/studio-api/internal/infra/db"
	"github.com/pixelforge-studio/studio-api/internal/infra/logger"
	"github.com/pixelforge-studio/studio-api/internal/infra/payments"
	mq "github.com/pixelforge-studio/studio-api/internal/infra/queue"
	"github.com/pixelforge-studio/studio-api/internal/modules/handler"
	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/pixelforge-studio/studio-api/internal/modules/repo"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(
				&model.Client{},
				&model.ClientProject{},
				&model.ProjectMilestone{},
				&model.ProjectUpdate{},
				&model.PaymentEvent{},
				&model.BlogPost{},
				&model.PortfolioItem{},
				&model.ShowcaseProject{},
				&model.Testimonial{},
				&model.ContactMessage{},
			); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		cfg := do.MustInvoke[*config.Config](i)

		dialFn := func() (*amqp.Connection, error) {
			useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")

			if useTLS {
				tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
				url := cfg.RabbitMQ.URL
				if strings.HasPrefix(url, "amqp://") {
					url = strings.Replace(url, "amqp://", "amqps://", 1)
				}
				return amqp.DialTLS(url, tlsConfig)
			}
			return amqp.Dial(cfg.RabbitMQ.URL)
		}
		return dialFn, nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return dialFn()
	})

	// RabbitMQ Publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		return mq.NewPublisher(conn, log, cfg)
	})

	// Billing confirmation consumer
	do.Provide(inj, func(i *do.Injector) (*mq.Consumer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		return mq.NewConsumer(conn, cfg.RabbitMQ.ConfirmQueue,
			cfg.RabbitMQ.RoutingKey.PaymentConfirmed, log, cfg)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// Payment gateway client
	do.Provide(inj, func(i *do.Injector) (*payments.GatewayClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return payments.NewGatewayClient(cfg, log), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ClientRepo, error) {
		return repo.NewClientRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ClientProjectRepo, error) {
		return repo.NewClientProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectMilestoneRepo, error) {
		return repo.NewProjectMilestoneRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectUpdateRepo, error) {
		return repo.NewProjectUpdateRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PaymentEventRepo, error) {
		return repo.NewPaymentEventRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.BlogPostRepo, error) {
		return repo.NewBlogPostRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PortfolioItemRepo, error) {
		return repo.NewPortfolioItemRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ShowcaseProjectRepo, error) {
		return repo.NewShowcaseProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TestimonialRepo, error) {
		return repo.NewTestimonialRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ContactMessageRepo, error) {
		return repo.NewContactMessageRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.PortalService, error) {
		return service.NewPortalService(
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[repo.ClientProjectRepo](i),
			do.MustInvoke[repo.ProjectMilestoneRepo](i),
			do.MustInvoke[repo.ProjectUpdateRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TrackerService, error) {
		return service.NewTrackerService(
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[repo.ClientProjectRepo](i),
			do.MustInvoke[repo.ProjectMilestoneRepo](i),
			do.MustInvoke[repo.ProjectUpdateRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContentService, error) {
		return service.NewContentService(
			do.MustInvoke[repo.BlogPostRepo](i),
			do.MustInvoke[repo.PortfolioItemRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ShowcaseService, error) {
		return service.NewShowcaseService(
			do.MustInvoke[repo.ShowcaseProjectRepo](i),
			do.MustInvoke[repo.TestimonialRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContactService, error) {
		return service.NewContactService(
			do.MustInvoke[repo.ContactMessageRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.BillingService, error) {
		return service.NewBillingService(
			do.MustInvoke[repo.ClientProjectRepo](i),
			do.MustInvoke[repo.PaymentEventRepo](i),
			do.MustInvoke[*payments.GatewayClient](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.PortalHandler, error) {
		return handler.NewPortalHandler(do.MustInvoke[service.PortalService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TrackerHandler, error) {
		return handler.NewTrackerHandler(do.MustInvoke[service.TrackerService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ContentHandler, error) {
		return handler.NewContentHandler(do.MustInvoke[service.ContentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ShowcaseHandler, error) {
		return handler.NewShowcaseHandler(do.MustInvoke[service.ShowcaseService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ContactHandler, error) {
		return handler.NewContactHandler(do.MustInvoke[service.ContactService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.BillingHandler, error) {
		return handler.NewBillingHandler(
			do.MustInvoke[service.BillingService](i),
			do.MustInvoke[service.PortalService](i),
		), nil
	})

	return inj
}
