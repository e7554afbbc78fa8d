package router

import (
	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/http/handler"
)

func EstimateRouter(rg *gin.RouterGroup, h *handler.EstimateHandler) {
	rg.POST("/estimate", h.Quick)
}

func CreditRouter(rg *gin.RouterGroup, h *handler.CreditHandler) {
	rg.GET("/credits", h.Balance)
}

func HealthRouter(router *gin.Engine, h *handler.HealthHandler) {
	router.GET("/health", h.Check)
}
