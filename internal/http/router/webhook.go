package router

import (
	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/http/handler/webhook"
)

func WebhookRouter(rg *gin.RouterGroup, h *webhook.StripeWebhookHandler) {
	rg.POST("/stripe", h.HandleEvent)
}
