package habit

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"habitd/cmd/identity"
)

// MemoryStore is an in-memory Store for dev mode and tests. Ownership is
// enforced exactly like the Postgres store: habits by owner match, logs by
// walking to the parent habit.
type MemoryStore struct {
	mu     sync.RWMutex
	habits map[string]Habit
	logs   map[string]Log
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits: make(map[string]Habit),
		logs:   make(map[string]Log),
	}
}

// CreateHabit inserts a habit owned by in.OwnerID.
func (s *MemoryStore) CreateHabit(ctx context.Context, in CreateHabitInput) (Habit, error) {
	const op = "habit.CreateHabit"

	if err := ctx.Err(); err != nil {
		return Habit{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Habit{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "title is required"}
	}
	if in.OwnerID == "" {
		return Habit{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "owner is required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := identity.NewULID(now)
	if err != nil {
		return Habit{}, err
	}

	h := Habit{
		ID:          id,
		OwnerID:     in.OwnerID,
		Title:       title,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
	}

	s.mu.Lock()
	s.habits[id] = h
	s.mu.Unlock()

	return h, nil
}

// ListHabits returns the owner's habits, newest first.
func (s *MemoryStore) ListHabits(ctx context.Context, ownerID string) ([]Habit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Habit{}
	for _, h := range s.habits {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// GetHabit loads one habit under the ownership predicate.
func (s *MemoryStore) GetHabit(ctx context.Context, ownerID, habitID string) (Habit, error) {
	const op = "habit.GetHabit"

	if err := ctx.Err(); err != nil {
		return Habit{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[habitID]
	if !ok || h.OwnerID != ownerID {
		return Habit{}, OpError{Op: op, Kind: ErrNotFound}
	}
	return h, nil
}

// UpdateHabit patches an owned habit.
func (s *MemoryStore) UpdateHabit(ctx context.Context, ownerID, habitID string, in UpdateHabitInput) (Habit, error) {
	const op = "habit.UpdateHabit"

	if err := ctx.Err(); err != nil {
		return Habit{}, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return Habit{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "title cannot be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[habitID]
	if !ok || h.OwnerID != ownerID {
		return Habit{}, OpError{Op: op, Kind: ErrNotFound}
	}

	if in.Title != nil {
		h.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		h.Description = in.Description
	}
	if in.Active != nil {
		h.Active = *in.Active
	}

	s.habits[habitID] = h
	return h, nil
}

// DeleteHabit removes an owned habit and all of its logs.
func (s *MemoryStore) DeleteHabit(ctx context.Context, ownerID, habitID string) error {
	const op = "habit.DeleteHabit"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[habitID]
	if !ok || h.OwnerID != ownerID {
		return OpError{Op: op, Kind: ErrNotFound}
	}

	for id, l := range s.logs {
		if l.HabitID == habitID {
			delete(s.logs, id)
		}
	}
	delete(s.habits, habitID)
	return nil
}

// CreateLog inserts a log entry if the habit belongs to in.OwnerID.
func (s *MemoryStore) CreateLog(ctx context.Context, in CreateLogInput) (Log, error) {
	const op = "habit.CreateLog"

	if err := ctx.Err(); err != nil {
		return Log{}, err
	}
	if in.HabitID == "" {
		return Log{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "habit_id is required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	logDate := DateOnly(in.LogDate)
	if in.LogDate.IsZero() {
		logDate = DateOnly(now)
	}

	id, err := identity.NewULID(now)
	if err != nil {
		return Log{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[in.HabitID]
	if !ok || h.OwnerID != in.OwnerID {
		return Log{}, OpError{Op: op, Kind: ErrNotFound}
	}

	l := Log{
		ID:        id,
		HabitID:   in.HabitID,
		LogDate:   logDate,
		Status:    in.Status,
		Note:      in.Note,
		CreatedAt: now,
	}
	s.logs[id] = l
	return l, nil
}

// ListLogs returns every log of the owner's habits, newest log date first.
func (s *MemoryStore) ListLogs(ctx context.Context, ownerID string) ([]Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Log{}
	for _, l := range s.logs {
		h, ok := s.habits[l.HabitID]
		if ok && h.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	sortLogs(out)
	return out, nil
}

// ListHabitLogs returns the logs of one owned habit, newest log date first.
func (s *MemoryStore) ListHabitLogs(ctx context.Context, ownerID, habitID string) ([]Log, error) {
	if _, err := s.GetHabit(ctx, ownerID, habitID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Log{}
	for _, l := range s.logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	sortLogs(out)
	return out, nil
}

func sortLogs(logs []Log) {
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].LogDate.Equal(logs[j].LogDate) {
			return logs[i].LogDate.After(logs[j].LogDate)
		}
		return logs[i].ID > logs[j].ID
	})
}
