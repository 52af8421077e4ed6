package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/bootstrap"
	"github.com/pixelforge-studio/studio-api/internal/config"
	mq "github.com/pixelforge-studio/studio-api/internal/infra/queue"
	"github.com/pixelforge-studio/studio-api/internal/modules/handler"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
	"github.com/pixelforge-studio/studio-api/internal/router"
	"github.com/pixelforge-studio/studio-api/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//	@title			PixelForge Studio API
//	@version		0.1.0
//	@description	Client portal, project tracker and marketing content API.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token: admin API token on /admin routes, portal session token on /portal routes.

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Fatal("tracing setup failed", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Warn("tracing shutdown failed", zap.Error(err))
			}
		}()
	}

	r := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Redis:           do.MustInvoke[*redis.Client](inj),
		Log:             log,
		PortalHandler:   do.MustInvoke[*handler.PortalHandler](inj),
		TrackerHandler:  do.MustInvoke[*handler.TrackerHandler](inj),
		ContentHandler:  do.MustInvoke[*handler.ContentHandler](inj),
		ShowcaseHandler: do.MustInvoke[*handler.ShowcaseHandler](inj),
		ContactHandler:  do.MustInvoke[*handler.ContactHandler](inj),
		BillingHandler:  do.MustInvoke[*handler.BillingHandler](inj),
	})

	srv := &http.Server{
		Addr:    cfg.App.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		consumer := do.MustInvoke[*mq.Consumer](inj)
		billing := do.MustInvoke[service.BillingService](inj)
		log.Info("billing consumer started",
			zap.String("queue", cfg.RabbitMQ.ConfirmQueue))
		return consumer.Consume(gctx, billing.HandleConfirmation)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
