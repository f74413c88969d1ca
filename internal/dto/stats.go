package dto

import (
	"github.com/minhvn/taskfocus-api/internal/models"
	"github.com/minhvn/taskfocus-api/internal/services"
)

// DashboardStatsDTO represents dashboard aggregates in API responses
type DashboardStatsDTO struct {
	View              string           `json:"view"`
	CompletedBuckets  []int64          `json:"completed_buckets"`
	StatusCounts      map[string]int64 `json:"status_counts"`
	TotalTasks        int64            `json:"total_tasks"`
	TotalFocusSeconds int64            `json:"total_focus_seconds"`
}

// ToDashboardStatsDTO converts DashboardStats to its API representation
func ToDashboardStatsDTO(stats *services.DashboardStats) DashboardStatsDTO {
	counts := make(map[string]int64, len(stats.StatusCounts))
	for _, status := range []models.TaskStatus{
		models.TaskStatusExpired,
		models.TaskStatusTodo,
		models.TaskStatusDoing,
		models.TaskStatusDone,
	} {
		counts[string(status)] = stats.StatusCounts[status]
	}

	return DashboardStatsDTO{
		View:              string(stats.View),
		CompletedBuckets:  stats.CompletedBuckets,
		StatusCounts:      counts,
		TotalTasks:        stats.TotalTasks,
		TotalFocusSeconds: stats.TotalFocusSeconds,
	}
}
