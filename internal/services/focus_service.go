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
	ErrTaskNotInFocus     = errors.New("focus sessions can only be recorded against a task that is Doing")
	ErrInvalidSessionKind = errors.New("session kind must be focus or break")
	ErrNegativeDuration   = errors.New("session duration cannot be negative")
)

// SessionKind distinguishes billable focus intervals from rest periods. The
// timer runs both, but only focus time is recorded against the task.
type SessionKind string

const (
	SessionKindFocus SessionKind = "focus"
	SessionKindBreak SessionKind = "break"
)

// Valid reports whether k is a known session kind.
func (k SessionKind) Valid() bool {
	return k == SessionKindFocus || k == SessionKindBreak
}

// FocusService records completed or cancelled timer intervals against tasks
// and maintains the cumulative focus total.
type FocusService struct {
	taskRepo repository.TaskRepository
	clock    Clock
}

// NewFocusService creates a new FocusService
func NewFocusService(taskRepo repository.TaskRepository, clock Clock) *FocusService {
	return &FocusService{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// RecordSessionInput describes one finished timer interval. ElapsedSeconds is
// however much time actually accrued, which may be less than the configured
// target when the session was ended early.
type RecordSessionInput struct {
	TaskID         uint64
	ElapsedSeconds int64
	OccurredAt     time.Time
	Kind           SessionKind
}

// RecordSession appends a focus interval to the task's session log and
// recomputes the cumulative total from the log. Break intervals and
// zero-length intervals are accepted but not recorded. The task must
// currently be Doing; the append and the total update are transactional, so
// a failed persist loses nothing silently and is surfaced to the caller.
func (s *FocusService) RecordSession(input RecordSessionInput) (*models.Task, error) {
	if input.Kind == "" {
		input.Kind = SessionKindFocus
	}
	if !input.Kind.Valid() {
		return nil, ErrInvalidSessionKind
	}
	if input.ElapsedSeconds < 0 {
		return nil, ErrNegativeDuration
	}

	task, err := s.taskRepo.FindByID(input.TaskID, "FocusSessions")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// The status the timer saw may have gone stale (e.g. the task expired
	// overnight), so derive before checking the precondition. The correction
	// is written back like on the read paths so the store does not keep a
	// stale Doing after a rejected recording.
	if Reconcile(task, s.clock.Now()) {
		if err := s.taskRepo.UpdateDerivedState(task); err != nil {
			log.Printf("failed to persist status correction for task %d: %v", task.ID, err)
		}
	}

	if task.Status != models.TaskStatusDoing {
		return nil, ErrTaskNotInFocus
	}

	if input.Kind == SessionKindBreak || input.ElapsedSeconds == 0 {
		return task, nil
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.clock.Now()
	}

	session := &models.FocusSession{
		OccurredAt:      occurredAt,
		DurationSeconds: input.ElapsedSeconds,
	}

	if err := s.taskRepo.AppendFocusSession(task, session); err != nil {
		return nil, fmt.Errorf("failed to record focus session: %w", err)
	}

	task.FocusSessions = append(task.FocusSessions, *session)

	return task, nil
}
