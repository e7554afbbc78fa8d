package router

import (
	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/http/handler"
	"tinkerly.io/api/internal/http/handler/webhook"
	"tinkerly.io/api/internal/http/middleware"
	"tinkerly.io/api/internal/service"
)

type RouterConfig struct {
	Auth                middleware.AuthConfig
	StripeWebhookSecret string
	// Database backs the health check; nil reports liveness only.
	Database handler.Pinger
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	HealthRouter(router, handler.NewHealthHandler(cfg.Database))

	requireAuth := middleware.RequireAuth(cfg.Auth)
	projectHandler := handler.NewProjectHandler(services.Projects())

	v1 := router.Group("/api/v1")
	{
		EstimateRouter(v1, handler.NewEstimateHandler(services.Estimation()))

		authed := v1.Group("", requireAuth)
		ProjectRouter(authed, projectHandler)
		CreditRouter(authed, handler.NewCreditHandler(services.Credits()))
	}

	// Older clients post to the unversioned path.
	router.POST("/api/analyze-project", requireAuth, projectHandler.Analyze)

	stripeHandler := webhook.NewStripeWebhookHandler(services.Billing(), cfg.StripeWebhookSecret)
	WebhookRouter(router.Group("/webhooks"), stripeHandler)
}
