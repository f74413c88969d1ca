package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhvn/taskfocus-api/internal/dto"
	apierrors "github.com/minhvn/taskfocus-api/internal/errors"
	"github.com/minhvn/taskfocus-api/internal/middleware"
	"github.com/minhvn/taskfocus-api/internal/services"
)

// DashboardHandler serves aggregate statistics over the user's tasks.
type DashboardHandler struct {
	statsService *services.StatsService
	aiService    *services.AIService
}

func NewDashboardHandler(statsService *services.StatsService, aiService *services.AIService) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
		aiService:    aiService,
	}
}

// GetStats returns completed-task buckets and status counts for the
// dashboard chart. view=month buckets by calendar month, view=week by
// weekday of the current week.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	view := services.StatsView(c.DefaultQuery("view", string(services.StatsViewMonth)))

	stats, err := h.statsService.GetStats(userID, view)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatsView) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsDTO(stats))
}

// Summarize returns an AI-generated natural-language summary of the
// dashboard statistics.
func (h *DashboardHandler) Summarize(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	view := services.StatsView(c.DefaultQuery("view", string(services.StatsViewMonth)))

	stats, err := h.statsService.GetStats(userID, view)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatsView) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	summary, err := h.aiService.SummarizeStats(c.Request.Context(), stats)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}
