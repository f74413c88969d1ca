package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/minhvn/taskfocus-api/internal/models"
	"github.com/minhvn/taskfocus-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotTaskOwner    = errors.New("only the task owner can perform this action")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrStatusViaUpdate = errors.New("done status can only be set by marking the task complete")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	clock    Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, clock Clock) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	OwnerID       uint64
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	DueToday      bool
	SortByDueDate bool
	Page          int
	PageSize      int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	OwnerID     uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// ListTasks returns the owner's tasks with their statuses reconciled against
// the current time. Corrections are written back; a failed write is logged
// and the corrected view is returned anyway, so staleness never outlives one
// read cycle.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		OwnerID:       input.OwnerID,
		Status:        input.Status,
		Priority:      input.Priority,
		SortByDueDate: input.SortByDueDate,
		Page:          input.Page,
		PageSize:      input.PageSize,
	}

	now := s.clock.Now()
	if input.DueToday {
		startOfDay := StartOfDay(now)
		endOfDay := startOfDay.Add(24 * time.Hour)
		filter.DueDateFrom = &startOfDay
		filter.DueDateTo = &endOfDay
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	for i := range tasks {
		s.reconcileAndPersist(&tasks[i], now)
	}

	return tasks, total, nil
}

// GetTask returns a task with its session log, reconciled against the
// current time.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "FocusSessions")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	s.reconcileAndPersist(task, s.clock.Now())

	return task, nil
}

// CreateTask creates a new task with validation
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Completed:   input.Status == models.TaskStatusDone,
		DueDate:     input.DueDate,
		OwnerID:     input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask updates an existing task. Explicit status moves are limited to
// the board transitions (Todo and Doing); Done is reached only through
// CompleteTask. A due date change is reconciled immediately, so editing an
// expired task's date to today or later revives it to Todo in the response.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TaskStatusTodo, models.TaskStatusDoing:
			task.Status = *input.Status
		case models.TaskStatusDone, models.TaskStatusExpired:
			return nil, ErrStatusViaUpdate
		default:
			return nil, ErrInvalidStatus
		}
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	Reconcile(task, s.clock.Now())

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "FocusSessions")
}

// CompleteTask marks a task done. Completion is explicit and takes
// precedence over expiry from then on.
func (s *TaskService) CompleteTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = models.TaskStatusDone
	task.Completed = true

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// ReopenTask reverts a completed task to Todo. Expiry applies again on the
// next read.
func (s *TaskService) ReopenTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = models.TaskStatusTodo
	task.Completed = false
	Reconcile(task, s.clock.Now())

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to reopen task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task if the actor owns it
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != actorID {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// reconcileAndPersist derives the task's current status and writes the
// correction back when it differs from the stored one. A failed write is not
// fatal to the read: the corrected view is still returned and the correction
// will be retried on the next read.
func (s *TaskService) reconcileAndPersist(task *models.Task, now time.Time) {
	if !Reconcile(task, now) {
		return
	}

	if err := s.taskRepo.UpdateDerivedState(task); err != nil {
		log.Printf("failed to persist status correction for task %d: %v", task.ID, err)
	}
}
