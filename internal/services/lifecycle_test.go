package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/minhvn/taskfocus-api/internal/models"
)

// Fixed reference time: 2025-06-15 10:00 UTC.
var lifecycleNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	yesterday := lifecycleNow.AddDate(0, 0, -1)
	tomorrow := lifecycleNow.AddDate(0, 0, 1)
	todayMidnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task models.Task
		want models.TaskStatus
	}{
		{
			name: "overdue todo expires",
			task: models.Task{Status: models.TaskStatusTodo, DueDate: timePtr(yesterday)},
			want: models.TaskStatusExpired,
		},
		{
			name: "overdue doing expires",
			task: models.Task{Status: models.TaskStatusDoing, DueDate: timePtr(yesterday)},
			want: models.TaskStatusExpired,
		},
		{
			name: "completed task stays done despite overdue date",
			task: models.Task{Status: models.TaskStatusDone, Completed: true, DueDate: timePtr(yesterday)},
			want: models.TaskStatusDone,
		},
		{
			name: "completed flag set but status stale forces done",
			task: models.Task{Status: models.TaskStatusDoing, Completed: true, DueDate: timePtr(yesterday)},
			want: models.TaskStatusDone,
		},
		{
			name: "expired revives to todo when due date moved to tomorrow",
			task: models.Task{Status: models.TaskStatusExpired, DueDate: timePtr(tomorrow)},
			want: models.TaskStatusTodo,
		},
		{
			name: "expired revives to todo when due date is today",
			task: models.Task{Status: models.TaskStatusExpired, DueDate: timePtr(todayMidnight)},
			want: models.TaskStatusTodo,
		},
		{
			name: "due today is not expired",
			task: models.Task{Status: models.TaskStatusTodo, DueDate: timePtr(todayMidnight)},
			want: models.TaskStatusTodo,
		},
		{
			name: "doing with future due date stands",
			task: models.Task{Status: models.TaskStatusDoing, DueDate: timePtr(tomorrow)},
			want: models.TaskStatusDoing,
		},
		{
			name: "task without due date never expires",
			task: models.Task{Status: models.TaskStatusTodo},
			want: models.TaskStatusTodo,
		},
		{
			name: "expired task without due date revives to todo",
			task: models.Task{Status: models.TaskStatusExpired},
			want: models.TaskStatusTodo,
		},
		{
			name: "empty status defaults to todo",
			task: models.Task{},
			want: models.TaskStatusTodo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(&tt.task, lifecycleNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatus_Idempotent(t *testing.T) {
	yesterday := lifecycleNow.AddDate(0, 0, -1)
	task := models.Task{
		Status:           models.TaskStatusDoing,
		DueDate:          timePtr(yesterday),
		FocusTimeSeconds: 600,
		FocusSessions: []models.FocusSession{
			{OccurredAt: yesterday, DurationSeconds: 600},
		},
	}

	first := DeriveStatus(&task, lifecycleNow)
	second := DeriveStatus(&task, lifecycleNow)

	assert.Equal(t, first, second)

	// Derivation must not touch the task itself
	assert.Equal(t, models.TaskStatusDoing, task.Status)
	assert.Equal(t, int64(600), task.FocusTimeSeconds)
	assert.Len(t, task.FocusSessions, 1)
}

func TestReconcile(t *testing.T) {
	yesterday := lifecycleNow.AddDate(0, 0, -1)
	tomorrow := lifecycleNow.AddDate(0, 0, 1)

	t.Run("expires overdue task", func(t *testing.T) {
		task := models.Task{Status: models.TaskStatusTodo, DueDate: timePtr(yesterday)}
		changed := Reconcile(&task, lifecycleNow)
		assert.True(t, changed)
		assert.Equal(t, models.TaskStatusExpired, task.Status)
		assert.False(t, task.Completed)
	})

	t.Run("no change reports false", func(t *testing.T) {
		task := models.Task{Status: models.TaskStatusDoing, DueDate: timePtr(tomorrow)}
		changed := Reconcile(&task, lifecycleNow)
		assert.False(t, changed)

		// A second call is also a no-op
		assert.False(t, Reconcile(&task, lifecycleNow))
	})

	t.Run("repairs completed flag when status stale", func(t *testing.T) {
		task := models.Task{Status: models.TaskStatusDoing, Completed: true}
		changed := Reconcile(&task, lifecycleNow)
		assert.True(t, changed)
		assert.Equal(t, models.TaskStatusDone, task.Status)
		assert.True(t, task.Completed)
	})
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(lifecycleNow)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
}
