package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters allowed in a task title.
const MaxTitleLength = 255

// TaskState is the lifecycle state of a task. It is a closed set; values
// outside the constants below are never persisted.
type TaskState string

// Possible task states
const (
	TaskStatePending    TaskState = "pending"
	TaskStateInProgress TaskState = "in_progress"
	TaskStateDone       TaskState = "done"
)

// TaskStates lists every valid state in display order.
var TaskStates = []TaskState{TaskStatePending, TaskStateInProgress, TaskStateDone}

// Valid reports whether s is one of the enumerated states.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStatePending, TaskStateInProgress, TaskStateDone:
		return true
	default:
		return false
	}
}

// ParseTaskState converts a stored representation into a TaskState.
func ParseTaskState(s string) (TaskState, error) {
	state := TaskState(s)
	if !state.Valid() {
		return "", NewValidationError("state", "must be one of pending, in_progress, done", ErrInvalidTaskState)
	}
	return state, nil
}

// Task is a unit of work tracked by the API.
type Task struct {
	ID          int64
	Title       string
	Description *string
	State       TaskState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskInput carries the caller-controlled fields of a task for create and
// update operations. Zero timestamps mean "now".
type TaskInput struct {
	Title       string
	Description *string
	State       TaskState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the input against the task invariants.
func (in TaskInput) Validate() error {
	if in.Title == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 255 characters", ErrTitleTooLong)
	}
	if !in.State.Valid() {
		return NewValidationError("state", "must be one of pending, in_progress, done", ErrInvalidTaskState)
	}
	return nil
}

// NewTask builds a Task from validated input. Unset timestamps default to now.
// The ID is left zero; the store assigns it.
func NewTask(in TaskInput, now time.Time) (*Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := in.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return &Task{
		Title:       in.Title,
		Description: in.Description,
		State:       in.State,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}, nil
}

// Apply replaces the mutable fields of t with the input. CreatedAt is never
// touched; UpdatedAt takes the caller-supplied value or now.
func (t *Task) Apply(in TaskInput, now time.Time) error {
	if err := in.Validate(); err != nil {
		return err
	}

	t.Title = in.Title
	t.Description = in.Description
	t.State = in.State
	if in.UpdatedAt.IsZero() {
		t.UpdatedAt = now.UTC()
	} else {
		t.UpdatedAt = in.UpdatedAt.UTC()
	}
	return nil
}
