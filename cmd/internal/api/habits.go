package api

import (
	"net/http"
	"time"

	"habitd/cmd/internal/habit"
)

func (h *Handler) handleListHabits(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	habits, err := h.habits.ListHabits(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	out := make([]habitResponse, 0, len(habits))
	for _, hb := range habits {
		out = append(out, toHabitResponse(hb))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	created, err := h.habits.CreateHabit(r.Context(), habit.CreateHabitInput{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHabitResponse(created))
}

func (h *Handler) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	hb, err := h.habits.GetHabit(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(hb))
}

func (h *Handler) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	updated, err := h.habits.UpdateHabit(r.Context(), user.ID, r.PathValue("id"), habit.UpdateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(updated))
}

func (h *Handler) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.habits.DeleteHabit(r.Context(), user.ID, r.PathValue("id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
