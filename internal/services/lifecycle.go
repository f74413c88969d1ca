package services

import (
	"time"

	"github.com/minhvn/taskfocus-api/internal/models"
)

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DeriveStatus computes the status that should currently apply to a task.
// It is pure: no side effects, no clock access, and calling it repeatedly
// with the same inputs yields the same result.
//
// Rules, in order of precedence:
//   - A completed task is Done, regardless of due date. Completion beats expiry.
//   - A task whose due date falls before the start of today is Expired,
//     whether it was Todo or Doing.
//   - An Expired task whose due date has been moved to today or later goes
//     back to Todo. Doing progress is not restored across an expiry cycle.
//   - Otherwise the stored status stands.
//
// A task without a due date never expires.
func DeriveStatus(task *models.Task, now time.Time) models.TaskStatus {
	if task.Completed || task.Status == models.TaskStatusDone {
		return models.TaskStatusDone
	}

	if task.DueDate != nil && task.DueDate.Before(StartOfDay(now)) {
		return models.TaskStatusExpired
	}

	if task.Status == models.TaskStatusExpired {
		return models.TaskStatusTodo
	}

	if !task.Status.Valid() || task.Status == "" {
		return models.TaskStatusTodo
	}

	return task.Status
}

// Reconcile applies DeriveStatus to the task in memory and repairs the
// completed flag so that completed implies Done after every read. Returns
// true when either field changed and needs persisting.
func Reconcile(task *models.Task, now time.Time) bool {
	derived := DeriveStatus(task, now)

	changed := false
	if task.Status != derived {
		task.Status = derived
		changed = true
	}
	if derived == models.TaskStatusDone && !task.Completed {
		task.Completed = true
		changed = true
	}

	return changed
}
