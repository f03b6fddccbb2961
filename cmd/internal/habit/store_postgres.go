package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitd/cmd/identity"
)

// PostgresStore implements Store over PostgreSQL.
//
// Ownership predicates live inside the SQL itself: habits filter on
// owner_id, logs join through habits. A statement that matches zero rows
// because the resource is missing is indistinguishable from one that
// matches zero rows because it belongs to someone else; both surface as
// ErrNotFound.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore. The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("habit: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// CreateHabit inserts a habit owned by in.OwnerID.
func (s *PostgresStore) CreateHabit(ctx context.Context, in CreateHabitInput) (Habit, error) {
	const op = "habit.CreateHabit"

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

	_, err = s.pool.Exec(ctx, `
		INSERT INTO habits (id, owner_id, title, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
	`, id, in.OwnerID, title, in.Description, now)
	if err != nil {
		return Habit{}, err
	}

	return Habit{
		ID:          id,
		OwnerID:     in.OwnerID,
		Title:       title,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
	}, nil
}

// ListHabits returns the owner's habits, newest first.
func (s *PostgresStore) ListHabits(ctx context.Context, ownerID string) ([]Habit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, title, description, is_active, created_at
		FROM habits
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHabits(rows)
}

// GetHabit loads one habit under the ownership predicate.
func (s *PostgresStore) GetHabit(ctx context.Context, ownerID, habitID string) (Habit, error) {
	const op = "habit.GetHabit"

	var h Habit
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, description, is_active, created_at
		FROM habits
		WHERE id = $1 AND owner_id = $2
	`, habitID, ownerID).Scan(&h.ID, &h.OwnerID, &h.Title, &h.Description, &h.Active, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Habit{}, OpError{Op: op, Kind: ErrNotFound}
	}
	if err != nil {
		return Habit{}, err
	}
	return h, nil
}

// UpdateHabit patches an owned habit. The ownership predicate is part of the
// UPDATE itself; zero affected rows means ErrNotFound.
func (s *PostgresStore) UpdateHabit(ctx context.Context, ownerID, habitID string, in UpdateHabitInput) (Habit, error) {
	const op = "habit.UpdateHabit"

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return Habit{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "title cannot be empty"}
	}

	var h Habit
	err := s.pool.QueryRow(ctx, `
		UPDATE habits
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    is_active   = COALESCE($5, is_active)
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, description, is_active, created_at
	`, habitID, ownerID, in.Title, in.Description, in.Active).
		Scan(&h.ID, &h.OwnerID, &h.Title, &h.Description, &h.Active, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Habit{}, OpError{Op: op, Kind: ErrNotFound}
	}
	if err != nil {
		return Habit{}, err
	}
	return h, nil
}

// DeleteHabit removes an owned habit and cascades to its logs inside one
// transaction.
func (s *PostgresStore) DeleteHabit(ctx context.Context, ownerID, habitID string) error {
	const op = "habit.DeleteHabit"

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Logs first: scoped through the habit, so only logs of an owned habit
	// can ever match.
	if _, err := tx.Exec(ctx, `
		DELETE FROM habit_logs
		WHERE habit_id IN (
			SELECT id FROM habits WHERE id = $1 AND owner_id = $2
		)
	`, habitID, ownerID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM habits
		WHERE id = $1 AND owner_id = $2
	`, habitID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return OpError{Op: op, Kind: ErrNotFound}
	}

	return tx.Commit(ctx)
}

// CreateLog inserts a log entry. The insert selects through the habits table
// under the ownership predicate, so a foreign or missing habit inserts
// nothing and reports ErrNotFound atomically.
func (s *PostgresStore) CreateLog(ctx context.Context, in CreateLogInput) (Log, error) {
	const op = "habit.CreateLog"

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

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO habit_logs (id, habit_id, log_date, status, note, created_at)
		SELECT $1, h.id, $3, $4, $5, $6
		FROM habits h
		WHERE h.id = $2 AND h.owner_id = $7
	`, id, in.HabitID, logDate, string(in.Status), in.Note, now, in.OwnerID)
	if err != nil {
		return Log{}, err
	}
	if tag.RowsAffected() == 0 {
		return Log{}, OpError{Op: op, Kind: ErrNotFound}
	}

	return Log{
		ID:        id,
		HabitID:   in.HabitID,
		LogDate:   logDate,
		Status:    in.Status,
		Note:      in.Note,
		CreatedAt: now,
	}, nil
}

// ListLogs returns every log of the owner's habits, newest log date first.
// Ownership is derived by joining through habits, never from a field on the
// log row.
func (s *PostgresStore) ListLogs(ctx context.Context, ownerID string) ([]Log, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.habit_id, l.log_date, l.status, l.note, l.created_at
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.owner_id = $1
		ORDER BY l.log_date DESC, l.id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

// ListHabitLogs returns the logs of one owned habit, newest log date first.
func (s *PostgresStore) ListHabitLogs(ctx context.Context, ownerID, habitID string) ([]Log, error) {
	// Scope check first so a foreign habit reads as missing rather than
	// as an empty log list.
	if _, err := s.GetHabit(ctx, ownerID, habitID); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.habit_id, l.log_date, l.status, l.note, l.created_at
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.id = $1 AND h.owner_id = $2
		ORDER BY l.log_date DESC, l.id DESC
	`, habitID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

func scanHabits(rows pgx.Rows) ([]Habit, error) {
	out := []Habit{}
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Title, &h.Description, &h.Active, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanLogs(rows pgx.Rows) ([]Log, error) {
	out := []Log{}
	for rows.Next() {
		var l Log
		var status string
		if err := rows.Scan(&l.ID, &l.HabitID, &l.LogDate, &status, &l.Note, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Status = Status(status)
		l.LogDate = DateOnly(l.LogDate)
		out = append(out, l)
	}
	return out, rows.Err()
}
