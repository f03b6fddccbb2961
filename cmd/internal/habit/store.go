package habit

import (
	"context"
	"time"
)

// CreateHabitInput describes a new habit for its owner.
type CreateHabitInput struct {
	OwnerID     string
	Title       string
	Description *string
	Now         time.Time
}

// UpdateHabitInput patches a habit. Nil fields are left unchanged.
type UpdateHabitInput struct {
	Title       *string
	Description *string
	Active      *bool
}

// CreateLogInput describes a new log entry for an owned habit.
type CreateLogInput struct {
	OwnerID string
	HabitID string
	LogDate time.Time
	Status  Status
	Note    *string
	Now     time.Time
}

// Store is the habit persistence boundary. Every method takes the resolved
// owner and applies the scoping predicate inside the same statement; there
// is no unscoped access path.
type Store interface {
	CreateHabit(ctx context.Context, in CreateHabitInput) (Habit, error)
	ListHabits(ctx context.Context, ownerID string) ([]Habit, error)
	GetHabit(ctx context.Context, ownerID, habitID string) (Habit, error)
	UpdateHabit(ctx context.Context, ownerID, habitID string, in UpdateHabitInput) (Habit, error)

	// DeleteHabit removes the habit and all of its logs. Logs of other
	// habits are untouched.
	DeleteHabit(ctx context.Context, ownerID, habitID string) error

	// CreateLog inserts a log only if the habit belongs to ownerID;
	// otherwise ErrNotFound.
	CreateLog(ctx context.Context, in CreateLogInput) (Log, error)

	// ListLogs returns every log reachable through the owner's habits,
	// newest log date first.
	ListLogs(ctx context.Context, ownerID string) ([]Log, error)

	// ListHabitLogs returns the logs of one owned habit, newest first.
	ListHabitLogs(ctx context.Context, ownerID, habitID string) ([]Log, error)
}
