package api

import (
	"net/http"
	"time"

	"habitd/cmd/internal/habit"
)

func (h *Handler) handleListHabitLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	logs, err := h.habits.ListHabitLogs(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogResponses(logs))
}

func (h *Handler) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req createLogRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	status, err := habit.ParseStatus(req.Status)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	now := time.Now().UTC()
	logDate := now
	if req.LogDate != "" {
		logDate, err = time.ParseInLocation(dateLayout, req.LogDate, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "log_date must be YYYY-MM-DD")
			return
		}
	}

	created, err := h.habits.CreateLog(r.Context(), habit.CreateLogInput{
		OwnerID: user.ID,
		HabitID: r.PathValue("id"),
		LogDate: logDate,
		Status:  status,
		Note:    req.Note,
		Now:     now,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLogResponse(created))
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	logs, err := h.habits.ListLogs(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogResponses(logs))
}
