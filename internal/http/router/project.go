package router

import (
	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/http/handler"
)

func ProjectRouter(rg *gin.RouterGroup, h *handler.ProjectHandler) {
	rg.POST("/analyze-project", h.Analyze)
	rg.GET("/projects", h.List)
	rg.GET("/projects/:id", h.Get)
	rg.PATCH("/projects/:id/milestones/:milestone_id", h.UpdateMilestone)
}
