package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/pixelforge-studio/studio-api/docs"
	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/middleware"
	"github.com/pixelforge-studio/studio-api/internal/modules/handler"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/pkg/accesscode"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerBindings() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accesscode", func(fl validator.FieldLevel) bool {
			return accesscode.Validate(fl.Field().String()) == nil
		})
	}
}

type RouterDeps struct {
	Config          *config.Config
	Redis           *redis.Client
	Log             *zap.Logger
	PortalHandler   *handler.PortalHandler
	TrackerHandler  *handler.TrackerHandler
	ContentHandler  *handler.ContentHandler
	ShowcaseHandler *handler.ShowcaseHandler
	ContactHandler  *handler.ContactHandler
	BillingHandler  *handler.BillingHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)
	registerBindings()

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// public marketing surface, no auth
		v1.GET("/blog", d.ContentHandler.ListPublishedPosts)
		v1.GET("/blog/:slug", d.ContentHandler.GetPublishedPost)
		v1.GET("/portfolio", d.ContentHandler.ListFeaturedPortfolio)
		v1.GET("/portfolio/:slug", d.ContentHandler.GetPortfolioItem)
		v1.GET("/showcase", d.ShowcaseHandler.ListShowcase)
		v1.GET("/showcase/featured", d.ShowcaseHandler.ListFeaturedShowcase)
		v1.GET("/testimonials", d.ShowcaseHandler.ListTestimonials)
		v1.GET("/testimonials/featured", d.ShowcaseHandler.ListFeaturedTestimonials)
		v1.POST("/contact", d.ContactHandler.Submit)
		v1.POST("/payments/intent", d.BillingHandler.CreatePublicIntent)

		portal := v1.Group("/portal")
		{
			portal.POST("/login",
				middleware.LoginRateLimit(d.Config, d.Redis, d.Log),
				d.PortalHandler.Login)

			authed := portal.Group("")
			authed.Use(middleware.ClientAuth(d.Config))
			{
				authed.GET("/projects", d.PortalHandler.ListProjects)
				authed.GET("/projects/:project_id", d.PortalHandler.GetProject)
				authed.GET("/projects/:project_id/milestones", d.PortalHandler.ListMilestones)
				authed.GET("/projects/:project_id/updates", d.PortalHandler.ListUpdates)
				authed.POST("/projects/:project_id/payment_intents", d.BillingHandler.CreateIntent)
			}
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(d.Config))
		{
			admin.POST("/clients", d.TrackerHandler.CreateClient)
			admin.GET("/clients", d.TrackerHandler.ListClients)

			admin.POST("/projects", d.TrackerHandler.CreateProject)
			admin.GET("/projects", d.TrackerHandler.ListProjects)
			admin.PATCH("/projects/:project_id", d.TrackerHandler.UpdateProject)

			admin.POST("/projects/:project_id/milestones", d.TrackerHandler.CreateMilestone)
			admin.GET("/projects/:project_id/milestones", d.TrackerHandler.ListMilestones)
			admin.PATCH("/milestones/:milestone_id", d.TrackerHandler.UpdateMilestone)

			admin.POST("/projects/:project_id/updates", d.TrackerHandler.CreateUpdate)
			admin.GET("/projects/:project_id/updates", d.TrackerHandler.ListUpdates)
			admin.POST("/updates/:update_id/attachment", d.TrackerHandler.AttachFile)

			admin.GET("/projects/:project_id/payment_events", d.BillingHandler.ListEvents)

			admin.POST("/blog", d.ContentHandler.CreatePost)
			admin.GET("/blog", d.ContentHandler.ListPosts)
			admin.PATCH("/blog/:post_id", d.ContentHandler.UpdatePost)
			admin.DELETE("/blog/:post_id", d.ContentHandler.DeletePost)

			admin.POST("/portfolio", d.ContentHandler.CreatePortfolioItem)
			admin.GET("/portfolio", d.ContentHandler.ListPortfolioItems)
			admin.PATCH("/portfolio/:item_id", d.ContentHandler.UpdatePortfolioItem)
			admin.DELETE("/portfolio/:item_id", d.ContentHandler.DeletePortfolioItem)

			admin.POST("/showcase", d.ShowcaseHandler.CreateShowcase)
			admin.POST("/testimonials", d.ShowcaseHandler.CreateTestimonial)

			admin.GET("/contacts", d.ContactHandler.List)
			admin.PATCH("/contacts/:message_id/status", d.ContactHandler.UpdateStatus)
		}
	}
	return r
}
