package dto

import (
	"time"

	"github.com/minhvn/taskfocus-api/internal/models"
)

// Wire-format status codes, matching the numbering of the original clients.
// The code is derived from the status string at serialization time only; the
// string stays authoritative and the code is never persisted.
var statusCodes = map[models.TaskStatus]int{
	models.TaskStatusExpired: 0,
	models.TaskStatusTodo:    1,
	models.TaskStatusDoing:   2,
	models.TaskStatusDone:    3,
}

// StatusCode returns the numeric wire code for a status.
func StatusCode(status models.TaskStatus) int {
	return statusCodes[status]
}

// FocusSessionDTO represents one recorded focus interval in API responses
type FocusSessionDTO struct {
	OccurredAt      time.Time `json:"occurred_at"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Status           models.TaskStatus   `json:"status"`
	StatusCode       int                 `json:"status_code"`
	Priority         models.TaskPriority `json:"priority"`
	Completed        bool                `json:"completed"`
	DueDate          *time.Time          `json:"due_date"`
	FocusTimeSeconds int64               `json:"focus_time_seconds"`
	OwnerID          uint64              `json:"owner_id"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	FocusSessions    []FocusSessionDTO   `json:"focus_sessions,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToFocusSessionDTO converts a FocusSession model to FocusSessionDTO
func ToFocusSessionDTO(session models.FocusSession) FocusSessionDTO {
	return FocusSessionDTO{
		OccurredAt:      session.OccurredAt,
		DurationSeconds: session.DurationSeconds,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		Status:           task.Status,
		StatusCode:       StatusCode(task.Status),
		Priority:         task.Priority,
		Completed:        task.Completed,
		DueDate:          task.DueDate,
		FocusTimeSeconds: task.FocusTimeSeconds,
		OwnerID:          task.OwnerID,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	// Include sessions if preloaded
	if len(task.FocusSessions) > 0 {
		dto.FocusSessions = make([]FocusSessionDTO, len(task.FocusSessions))
		for i, session := range task.FocusSessions {
			dto.FocusSessions[i] = ToFocusSessionDTO(session)
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
