package repository

import (
	"github.com/minhvn/taskfocus-api/internal/database"
	"github.com/minhvn/taskfocus-api/internal/models"
	"github.com/minhvn/taskfocus-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.owner_id = ?", filter.OwnerID)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortByDueDate {
		listQuery = listQuery.Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC")
	} else {
		listQuery = listQuery.Order("tasks.created_at DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListAllByOwner retrieves every task owned by a user, without pagination
func (r *GormTaskRepository) ListAllByOwner(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("owner_id = ?", ownerID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateDerivedState persists only the status and completed fields of a task.
// Used by read-path reconciliation so other fields are never overwritten.
func (r *GormTaskRepository) UpdateDerivedState(task *models.Task) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":    task.Status,
			"completed": task.Completed,
		}).Error
}

// Delete soft deletes a task and its focus sessions
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.FocusSession{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AppendFocusSession appends a session and recomputes the focus total from the
// full session log in one transaction. Either both writes land or neither does.
func (r *GormTaskRepository) AppendFocusSession(task *models.Task, session *models.FocusSession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		session.TaskID = task.ID
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.FocusSession{}).
			Where("task_id = ?", task.ID).
			Select("COALESCE(SUM(duration_seconds), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("focus_time_seconds", total).Error; err != nil {
			return err
		}

		task.FocusTimeSeconds = total
		return nil
	})
}

// ListFocusSessions returns all sessions for a task, oldest first
func (r *GormTaskRepository) ListFocusSessions(taskID uint64) ([]models.FocusSession, error) {
	var sessions []models.FocusSession
	if err := r.db.Where("task_id = ?", taskID).
		Order("occurred_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
