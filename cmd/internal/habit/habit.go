package habit

import (
	"strings"
	"time"
)

// Habit is a user-owned tracked habit. OwnerID is set at creation and never
// transferable.
type Habit struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	Active      bool
	CreatedAt   time.Time
}

// Status is the outcome recorded for a habit on a given day.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusMissed  Status = "missed"
)

// ParseStatus validates a status value from the wire.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDone:
		return StatusDone, nil
	case StatusSkipped:
		return StatusSkipped, nil
	case StatusMissed:
		return StatusMissed, nil
	default:
		return "", OpError{Op: "habit.ParseStatus", Kind: ErrInvalidInput, Msg: "status must be done, skipped or missed"}
	}
}

// Log is a single dated entry for a habit. It carries no owner field; its
// owner is always the parent habit's owner, resolved by join.
type Log struct {
	ID        string
	HabitID   string
	LogDate   time.Time // date precision; normalized to midnight UTC
	Status    Status
	Note      *string
	CreatedAt time.Time
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
