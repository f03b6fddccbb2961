package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"habitd/cmd/identity"
	"habitd/cmd/internal/auth"
	"habitd/cmd/internal/habit"
)

// Handler wires the HTTP routes to the auth service and habit store.
type Handler struct {
	log    *slog.Logger
	cfg    Config
	auth   *auth.Service
	habits habit.Store
}

// NewHandler constructs the API handler. All dependencies are injected.
func NewHandler(log *slog.Logger, cfg Config, authSvc *auth.Service, habits habit.Store) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, auth: authSvc, habits: habits}
}

// Register wires all routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("GET /me", h.handleMe)

	mux.HandleFunc("GET /habits", h.handleListHabits)
	mux.HandleFunc("POST /habits", h.handleCreateHabit)
	mux.HandleFunc("GET /habits/{id}", h.handleGetHabit)
	mux.HandleFunc("PATCH /habits/{id}", h.handleUpdateHabit)
	mux.HandleFunc("DELETE /habits/{id}", h.handleDeleteHabit)

	mux.HandleFunc("GET /habits/{id}/logs", h.handleListHabitLogs)
	mux.HandleFunc("POST /habits/{id}/logs", h.handleCreateLog)
	mux.HandleFunc("GET /logs", h.handleListLogs)

	mux.HandleFunc("GET /habits/{id}/streak", h.handleStreak)
	mux.HandleFunc("GET /progress/month", h.handleMonthlyProgress)
	mux.HandleFunc("GET /dashboard", h.handleDashboard)

	mux.HandleFunc("GET /quotes", h.handleQuote)
}

// ---- auth endpoints ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	u, err := h.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password, time.Now().UTC())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	authed, err := h.auth.Authenticate(r.Context(), req.Email, req.Password, time.Now().UTC())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     authed.Token,
		TokenType: "bearer",
		ExpiresAt: authed.ExpiresAt,
		User:      toUserResponse(authed.User),
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ---- identity boundary ----

// requireIdentity resolves the bearer token exactly once per request. The
// resolved user is handed down explicitly; nothing downstream re-validates.
func (h *Handler) requireIdentity(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	bearer := bearerToken(r)
	if bearer == "" {
		// A missing or malformed header reads exactly like a bad token.
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return identity.User{}, false
	}

	user, err := h.auth.Resolve(r.Context(), bearer, time.Now().UTC())
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		} else {
			h.log.Error("api.resolve.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		}
		return identity.User{}, false
	}
	return user, true
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ---- error mapping ----

// writeDomainError translates error kinds to fixed statuses. Missing and
// foreign-owned resources share the not_found shape on purpose.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, auth.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "duplicate_email", "email already registered")
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case habit.IsNotFound(err), identity.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	case habit.IsInvalidInput(err), identity.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.Error("api.request.fail", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}
