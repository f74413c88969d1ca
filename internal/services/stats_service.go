package services

import (
	"errors"
	"fmt"

	"github.com/minhvn/taskfocus-api/internal/models"
	"github.com/minhvn/taskfocus-api/internal/repository"
)

var ErrInvalidStatsView = errors.New("view must be month or week")

// StatsView selects the dashboard aggregation window.
type StatsView string

const (
	StatsViewMonth StatsView = "month"
	StatsViewWeek  StatsView = "week"
)

// DashboardStats aggregates the owner's tasks for the dashboard chart.
// CompletedBuckets holds completed-task counts per calendar month (12
// entries, January first) or per weekday of the current week (7 entries,
// Sunday first), depending on View.
type DashboardStats struct {
	View              StatsView
	CompletedBuckets  []int64
	StatusCounts      map[models.TaskStatus]int64
	TotalTasks        int64
	TotalFocusSeconds int64
}

// StatsService computes dashboard aggregates over a user's tasks.
type StatsService struct {
	taskRepo repository.TaskRepository
	clock    Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(taskRepo repository.TaskRepository, clock Clock) *StatsService {
	return &StatsService{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// GetStats aggregates the owner's tasks. Statuses are derived against the
// current time so the counts match what a listing would show, but nothing is
// persisted here; the read paths own that.
func (s *StatsService) GetStats(ownerID uint64, view StatsView) (*DashboardStats, error) {
	if view != StatsViewMonth && view != StatsViewWeek {
		return nil, ErrInvalidStatsView
	}

	tasks, err := s.taskRepo.ListAllByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	now := s.clock.Now()
	startOfWeek := StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))

	buckets := make([]int64, 12)
	if view == StatsViewWeek {
		buckets = make([]int64, 7)
	}

	stats := &DashboardStats{
		View:             view,
		CompletedBuckets: buckets,
		StatusCounts:     make(map[models.TaskStatus]int64),
		TotalTasks:       int64(len(tasks)),
	}

	for i := range tasks {
		task := &tasks[i]
		status := DeriveStatus(task, now)
		stats.StatusCounts[status]++
		stats.TotalFocusSeconds += task.FocusTimeSeconds

		if !task.Completed || task.DueDate == nil {
			continue
		}

		due := *task.DueDate
		switch view {
		case StatsViewMonth:
			buckets[int(due.Month())-1]++
		case StatsViewWeek:
			if !due.Before(startOfWeek) && !due.After(now) {
				buckets[int(due.Weekday())]++
			}
		}
	}

	return stats, nil
}
