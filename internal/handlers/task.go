package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhvn/taskfocus-api/internal/constants"
	"github.com/minhvn/taskfocus-api/internal/dto"
	apierrors "github.com/minhvn/taskfocus-api/internal/errors"
	"github.com/minhvn/taskfocus-api/internal/middleware"
	"github.com/minhvn/taskfocus-api/internal/models"
	"github.com/minhvn/taskfocus-api/internal/services"
	"github.com/minhvn/taskfocus-api/internal/utils"
)

type TaskHandler struct {
	taskService  *services.TaskService
	focusService *services.FocusService
}

func NewTaskHandler(taskService *services.TaskService, focusService *services.FocusService) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		focusService: focusService,
	}
}

// contextTask retrieves the task placed in the context by RequireTaskOwner.
func contextTask(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return models.Task{}, false
	}

	return task, true
}

// ListTasks returns the current user's tasks. Statuses are reconciled
// against the current time before being returned.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		OwnerID:       userID,
		DueToday:      c.Query("due_today") == "true",
		SortByDueDate: c.Query("sort") == "due_date",
		Page:          params.Page,
		PageSize:      params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := models.TaskPriority(priorityStr)
		if !priority.Valid() {
			apierrors.BadRequest(c, "Invalid priority filter")
			return
		}
		input.Priority = &priority
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task with its focus session log.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := contextTask(c)
	if !ok {
		return
	}

	// Reload through the service so the status is reconciled and any
	// correction is persisted.
	reconciled, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*reconciled))
}

// CreateTask creates a new task owned by the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		OwnerID:     userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task. Only the provided fields
// change; sending due_date as null clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := contextTask(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if title, ok := rawReq["title"]; ok {
		titleStr, ok := title.(string)
		if !ok {
			apierrors.BadRequest(c, "title must be a string")
			return
		}
		input.Title = &titleStr
	}
	if description, ok := rawReq["description"]; ok {
		descStr, ok := description.(string)
		if !ok {
			apierrors.BadRequest(c, "description must be a string")
			return
		}
		input.Description = &descStr
	}
	if status, ok := rawReq["status"]; ok {
		statusStr, ok := status.(string)
		if !ok {
			apierrors.BadRequest(c, "status must be a string")
			return
		}
		s := models.TaskStatus(statusStr)
		input.Status = &s
	}
	if priority, ok := rawReq["priority"]; ok {
		priorityStr, ok := priority.(string)
		if !ok {
			apierrors.BadRequest(c, "priority must be a string")
			return
		}
		p := models.TaskPriority(priorityStr)
		input.Priority = &p
	}
	if dueDate, ok := rawReq["due_date"]; ok {
		// due_date was provided (might be null)
		if dueDate == nil {
			input.ClearDueDate = true
		} else {
			dueDateStr, ok := dueDate.(string)
			if !ok {
				apierrors.BadRequest(c, "due_date must be RFC3339")
				return
			}
			parsedTime, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "due_date must be RFC3339")
				return
			}
			input.DueDate = &parsedTime
		}
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// CompleteTask marks a task done.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	task, ok := contextTask(c)
	if !ok {
		return
	}

	completed, err := h.taskService.CompleteTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*completed))
}

// ReopenTask reverts a completed task to Todo.
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	task, ok := contextTask(c)
	if !ok {
		return
	}

	reopened, err := h.taskService.ReopenTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*reopened))
}

// DeleteTask deletes a task and its focus sessions.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := contextTask(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// RecordFocusSession records a finished or cancelled timer interval against
// a task. Break intervals are accepted but never billed to the task.
func (h *TaskHandler) RecordFocusSession(c *gin.Context) {
	task, ok := contextTask(c)
	if !ok {
		return
	}

	type RecordSessionRequest struct {
		ElapsedSeconds int64      `json:"elapsed_seconds"`
		OccurredAt     *time.Time `json:"occurred_at"`
		Kind           string     `json:"kind"`
	}

	var req RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.RecordSessionInput{
		TaskID:         task.ID,
		ElapsedSeconds: req.ElapsedSeconds,
		Kind:           services.SessionKind(req.Kind),
	}
	if req.OccurredAt != nil {
		input.OccurredAt = *req.OccurredAt
	}

	updated, err := h.focusService.RecordSession(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrStatusViaUpdate),
		errors.Is(err, services.ErrInvalidSessionKind),
		errors.Is(err, services.ErrNegativeDuration):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotInFocus):
		apierrors.PreconditionFailed(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
