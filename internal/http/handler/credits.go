package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/http/dto"
	"tinkerly.io/api/internal/http/middleware"
	"tinkerly.io/api/internal/service"
)

type CreditHandler struct {
	credits service.CreditService
}

func NewCreditHandler(credits service.CreditService) *CreditHandler {
	return &CreditHandler{credits: credits}
}

func (h *CreditHandler) Balance(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	balance, err := h.credits.Balance(ctx, principal)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load credit balance", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load credits"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditsResponse(balance))
}
