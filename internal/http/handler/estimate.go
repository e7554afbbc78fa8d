package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/http/dto"
	"tinkerly.io/api/internal/service"
)

// EstimateHandler serves the public price calculator. It never calls the LLM and
// never touches credits.
type EstimateHandler struct {
	estimator service.EstimationService
}

func NewEstimateHandler(estimator service.EstimationService) *EstimateHandler {
	return &EstimateHandler{estimator: estimator}
}

func (h *EstimateHandler) Quick(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuickEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid estimate request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.QuickEstimateResponse{
		Analysis: h.estimator.QuickEstimate(req.Descriptor()),
	})
}
