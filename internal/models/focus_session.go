package models

import "time"

// FocusSession is one recorded focus interval against a task. Sessions are
// append-only; break intervals are never persisted.
type FocusSession struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	TaskID          uint64    `gorm:"not null;index" json:"task_id"`
	OccurredAt      time.Time `gorm:"not null" json:"occurred_at"`
	DurationSeconds int64     `gorm:"not null" json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
