package repository

import (
	"time"

	"github.com/minhvn/taskfocus-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListAllByOwner retrieves every task owned by a user, without pagination
	ListAllByOwner(ownerID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateDerivedState persists only the status and completed fields of a task
	UpdateDerivedState(task *models.Task) error

	// Delete soft deletes a task and its focus sessions
	Delete(id uint64) error

	// AppendFocusSession appends a session and recomputes the task's focus
	// total from the full session log within a single transaction. On success
	// the task's FocusTimeSeconds reflects the recomputed total.
	AppendFocusSession(task *models.Task, session *models.FocusSession) error

	// ListFocusSessions returns all sessions for a task, oldest first
	ListFocusSessions(taskID uint64) ([]models.FocusSession, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerID       uint64
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	DueDateFrom   *time.Time
	DueDateTo     *time.Time
	SortByDueDate bool
	Page          int
	PageSize      int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
