package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/http/dto"
	"tinkerly.io/api/internal/http/middleware"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProjectHandler struct {
	projects service.ProjectService
}

func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.AnalyzeProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid analyze request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.projects.Analyze(ctx, principal, req.ProjectData.Descriptor())
	if err != nil {
		if errors.Is(err, service.ErrInsufficientCredits) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":             "no credits remaining",
				"credits_remaining": 0,
			})
			return
		}
		slog.ErrorContext(ctx, "failed to analyze project", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze project"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyzeProjectResponse(result))
}

func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	limit, err := queryInt32(c, "limit", defaultPageSize)
	if err != nil || limit <= 0 || limit > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}
	offset, err := queryInt32(c, "offset", 0)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
		return
	}

	projects, err := h.projects.List(ctx, principal, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list projects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	resp := dto.ListProjectsResponse{
		Projects: make([]dto.ProjectSummary, 0, len(projects)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, dto.ToProjectSummary(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ProjectID: &projectID})

	project, err := h.projects.Get(ctx, principal, projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get project", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) UpdateMilestone(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	milestoneID, err := strconv.ParseInt(c.Param("milestone_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid milestone id"})
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ProjectID: &projectID})

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid milestone update", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := h.projects.UpdateMilestoneStatus(ctx, principal, projectID, milestoneID, model.MilestoneStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, service.ErrMilestoneNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
		case errors.Is(err, service.ErrUnknownMilestoneStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to update milestone", "error", err, "milestone_id", milestoneID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update milestone"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneResponse(milestone))
}

func queryInt32(c *gin.Context, key string, def int32) (int32, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
