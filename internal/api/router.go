package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/tgsub_go_server/config"
	"github.com/qs3c/tgsub_go_server/internal/api/handler"
	"github.com/qs3c/tgsub_go_server/internal/api/middleware"
)

type Router struct {
	creatorHandler *handler.CreatorHandler
	planHandler    *handler.PlanHandler
	paymentHandler *handler.PaymentHandler
	cfg            *config.Config
}

func NewRouter(
	creatorHandler *handler.CreatorHandler,
	planHandler *handler.PlanHandler,
	paymentHandler *handler.PaymentHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		creatorHandler: creatorHandler,
		planHandler:    planHandler,
		paymentHandler: paymentHandler,
		cfg:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		// 创作者
		creator := api.Group("/creator")
		{
			creator.POST("/register", r.creatorHandler.Register)
			creator.POST("/:id/plan", r.planHandler.Create)
			creator.GET("/:id/plans", r.planHandler.List)
		}

		// 支付
		payment := api.Group("/payment")
		{
			payment.POST("/create-order", r.paymentHandler.CreateOrder)
			payment.POST("/verify", r.paymentHandler.Verify)
			payment.POST("/webhook", r.paymentHandler.Webhook)
		}
	}

	return engine
}
