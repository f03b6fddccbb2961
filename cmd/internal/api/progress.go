package api

import (
	"net/http"
	"time"

	"habitd/cmd/internal/habit"
)

func (h *Handler) handleStreak(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	streak, err := habit.Streak(r.Context(), h.habits, user.ID, r.PathValue("id"), time.Now().UTC())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, streakResponse{CurrentStreak: streak})
}

func (h *Handler) handleMonthlyProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	p, err := habit.MonthlyProgress(r.Context(), h.habits, user.ID, time.Now().UTC())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{
		CompletedDays:   p.CompletedDays,
		TotalDays:       p.TotalDays,
		ProgressPercent: p.ProgressPercent,
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	summaries, err := habit.Summary(r.Context(), h.habits, user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	out := make([]habitSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, habitSummaryResponse{
			HabitID:        s.HabitID,
			Title:          s.Title,
			Done:           s.Done,
			Missed:         s.Missed,
			CompletionRate: s.CompletionRate,
		})
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		User:    user.DisplayName,
		Summary: out,
	})
}
