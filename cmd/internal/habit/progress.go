package habit

import (
	"context"
	"math"
	"time"
)

// Progress summarizes the current month up to today.
type Progress struct {
	CompletedDays   int
	TotalDays       int
	ProgressPercent int
}

// HabitSummary is the per-habit dashboard line: lifetime counts and
// completion rate in percent.
type HabitSummary struct {
	HabitID        string
	Title          string
	Done           int
	Missed         int
	CompletionRate float64
}

// Streak returns the current streak for an owned habit: the number of
// consecutive days ending today with a "done" log. A missing day or today
// without a log ends the streak immediately.
func Streak(ctx context.Context, st Store, ownerID, habitID string, today time.Time) (int, error) {
	logs, err := st.ListHabitLogs(ctx, ownerID, habitID)
	if err != nil {
		return 0, err
	}

	doneDays := make(map[time.Time]bool, len(logs))
	for _, l := range logs {
		if l.Status == StatusDone {
			doneDays[DateOnly(l.LogDate)] = true
		}
	}

	streak := 0
	for d := DateOnly(today); doneDays[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

// MonthlyProgress reports how many days of the current month (up to and
// including today) have at least one "done" log across any of the owner's
// habits, as a count and an integer percentage of days elapsed.
func MonthlyProgress(ctx context.Context, st Store, ownerID string, today time.Time) (Progress, error) {
	logs, err := st.ListLogs(ctx, ownerID)
	if err != nil {
		return Progress{}, err
	}

	day := DateOnly(today)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	days := make(map[time.Time]bool)
	for _, l := range logs {
		d := DateOnly(l.LogDate)
		if l.Status == StatusDone && !d.Before(monthStart) && !d.After(day) {
			days[d] = true
		}
	}

	total := day.Day() // days elapsed this month, inclusive
	p := Progress{
		CompletedDays: len(days),
		TotalDays:     total,
	}
	if total > 0 {
		p.ProgressPercent = len(days) * 100 / total
	}
	return p, nil
}

// Summary builds the per-habit dashboard: lifetime done/missed counts and a
// completion rate of done logs over all logs, rounded to two decimals.
func Summary(ctx context.Context, st Store, ownerID string) ([]HabitSummary, error) {
	habits, err := st.ListHabits(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]HabitSummary, 0, len(habits))
	for _, h := range habits {
		logs, err := st.ListHabitLogs(ctx, ownerID, h.ID)
		if err != nil {
			return nil, err
		}

		sum := HabitSummary{HabitID: h.ID, Title: h.Title}
		for _, l := range logs {
			switch l.Status {
			case StatusDone:
				sum.Done++
			case StatusMissed:
				sum.Missed++
			}
		}
		if len(logs) > 0 {
			sum.CompletionRate = math.Round(float64(sum.Done)/float64(len(logs))*100*100) / 100
		}
		out = append(out, sum)
	}
	return out, nil
}
