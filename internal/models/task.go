package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusExpired TaskStatus = "Expired"
	TaskStatusTodo    TaskStatus = "Todo"
	TaskStatusDoing   TaskStatus = "Doing"
	TaskStatusDone    TaskStatus = "Done"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusExpired, TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Todo';index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Completed   bool         `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time   `gorm:"index" json:"due_date"`
	// FocusTimeSeconds always equals the sum of DurationSeconds over
	// FocusSessions. It is recomputed from the session log on every append,
	// never incremented in place.
	FocusTimeSeconds int64          `gorm:"not null;default:0" json:"focus_time_seconds"`
	OwnerID          uint64         `gorm:"not null;index" json:"owner_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner         User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	FocusSessions []FocusSession `gorm:"foreignKey:TaskID" json:"focus_sessions,omitempty"`
}
