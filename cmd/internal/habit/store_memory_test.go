package habit

import (
	"context"
	"testing"
	"time"
)

func mustCreateHabit(t *testing.T, st Store, ownerID, title string) Habit {
	t.Helper()
	h, err := st.CreateHabit(context.Background(), CreateHabitInput{
		OwnerID: ownerID,
		Title:   title,
	})
	if err != nil {
		t.Fatalf("CreateHabit(%q): %v", title, err)
	}
	return h
}

func mustCreateLog(t *testing.T, st Store, ownerID, habitID string, date time.Time, status Status) Log {
	t.Helper()
	l, err := st.CreateLog(context.Background(), CreateLogInput{
		OwnerID: ownerID,
		HabitID: habitID,
		LogDate: date,
		Status:  status,
	})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}
	return l
}

func TestMemoryStore_HabitCRUD(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	h := mustCreateHabit(t, st, "owner-a", "Read")
	if h.OwnerID != "owner-a" || !h.Active {
		t.Fatalf("unexpected habit: %+v", h)
	}

	got, err := st.GetHabit(ctx, "owner-a", h.ID)
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got.Title != "Read" {
		t.Fatalf("Title = %q", got.Title)
	}

	newTitle := "Read books"
	inactive := false
	updated, err := st.UpdateHabit(ctx, "owner-a", h.ID, UpdateHabitInput{
		Title:  &newTitle,
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if updated.Title != "Read books" || updated.Active {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Untouched fields survive the patch.
	if updated.OwnerID != "owner-a" || !updated.CreatedAt.Equal(h.CreatedAt) {
		t.Fatalf("patch clobbered fields: %+v", updated)
	}

	list, err := st.ListHabits(ctx, "owner-a")
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(list))
	}
}

func TestMemoryStore_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	habitA := mustCreateHabit(t, st, "owner-a", "Read")
	habitB := mustCreateHabit(t, st, "owner-b", "Run")
	mustCreateLog(t, st, "owner-b", habitB.ID, time.Now(), StatusDone)

	// B cannot see, patch, delete, or log against A's habit; every attempt
	// reads as not found, never as forbidden.
	if _, err := st.GetHabit(ctx, "owner-b", habitA.ID); !IsNotFound(err) {
		t.Fatalf("get: expected not found, got %v", err)
	}
	title := "Hijacked"
	if _, err := st.UpdateHabit(ctx, "owner-b", habitA.ID, UpdateHabitInput{Title: &title}); !IsNotFound(err) {
		t.Fatalf("update: expected not found, got %v", err)
	}
	if err := st.DeleteHabit(ctx, "owner-b", habitA.ID); !IsNotFound(err) {
		t.Fatalf("delete: expected not found, got %v", err)
	}
	if _, err := st.CreateLog(ctx, CreateLogInput{
		OwnerID: "owner-b", HabitID: habitA.ID, Status: StatusDone,
	}); !IsNotFound(err) {
		t.Fatalf("create log: expected not found, got %v", err)
	}
	if _, err := st.ListHabitLogs(ctx, "owner-b", habitA.ID); !IsNotFound(err) {
		t.Fatalf("list logs: expected not found, got %v", err)
	}

	// A's listing never includes B's data and vice versa.
	listA, err := st.ListHabits(ctx, "owner-a")
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(listA) != 1 || listA[0].ID != habitA.ID {
		t.Fatalf("owner-a list leaked: %+v", listA)
	}

	logsA, err := st.ListLogs(ctx, "owner-a")
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logsA) != 0 {
		t.Fatalf("owner-a sees foreign logs: %+v", logsA)
	}
}

func TestMemoryStore_CascadeDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	keep := mustCreateHabit(t, st, "owner-a", "Keep")
	gone := mustCreateHabit(t, st, "owner-a", "Gone")

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mustCreateLog(t, st, "owner-a", keep.ID, day, StatusDone)
	mustCreateLog(t, st, "owner-a", gone.ID, day, StatusDone)
	mustCreateLog(t, st, "owner-a", gone.ID, day.AddDate(0, 0, -1), StatusSkipped)

	if err := st.DeleteHabit(ctx, "owner-a", gone.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	if _, err := st.GetHabit(ctx, "owner-a", gone.ID); !IsNotFound(err) {
		t.Fatalf("expected habit gone, got %v", err)
	}

	logs, err := st.ListLogs(ctx, "owner-a")
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].HabitID != keep.ID {
		t.Fatalf("cascade touched the wrong logs: %+v", logs)
	}
}

func TestMemoryStore_LogsOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	h := mustCreateHabit(t, st, "owner-a", "Read")
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mustCreateLog(t, st, "owner-a", h.ID, base.AddDate(0, 0, -2), StatusDone)
	mustCreateLog(t, st, "owner-a", h.ID, base, StatusDone)
	mustCreateLog(t, st, "owner-a", h.ID, base.AddDate(0, 0, -1), StatusMissed)

	logs, err := st.ListHabitLogs(ctx, "owner-a", h.ID)
	if err != nil {
		t.Fatalf("ListHabitLogs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].LogDate.After(logs[i-1].LogDate) {
			t.Fatalf("logs not newest-first: %v", logs)
		}
	}
}

func TestMemoryStore_LogDateDefaultsToToday(t *testing.T) {
	st := NewMemoryStore()
	h := mustCreateHabit(t, st, "owner-a", "Read")

	l, err := st.CreateLog(context.Background(), CreateLogInput{
		OwnerID: "owner-a",
		HabitID: h.ID,
		Status:  StatusDone,
		Now:     time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !l.LogDate.Equal(want) {
		t.Fatalf("LogDate = %v, want %v", l.LogDate, want)
	}
}

func TestParseStatus(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Status
		ok   bool
	}{
		{"done", StatusDone, true},
		{" Skipped ", StatusSkipped, true},
		{"MISSED", StatusMissed, true},
		{"partial", "", false},
		{"", "", false},
	} {
		got, err := ParseStatus(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseStatus(%q) = %v, %v", tc.in, got, err)
		}
		if !tc.ok && !IsInvalidInput(err) {
			t.Fatalf("ParseStatus(%q): expected invalid input, got %v", tc.in, err)
		}
	}
}
