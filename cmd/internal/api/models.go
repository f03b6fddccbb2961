package api

import (
	"time"

	"habitd/cmd/identity"
	"habitd/cmd/internal/habit"
)

// Log dates travel as date-only strings on the wire.
const dateLayout = "2006-01-02"

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createHabitRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type updateHabitRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type createLogRequest struct {
	LogDate string  `json:"log_date"`
	Status  string  `json:"status"`
	Note    *string `json:"note"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

type habitResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type logResponse struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	LogDate   string    `json:"log_date"`
	Status    string    `json:"status"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type streakResponse struct {
	CurrentStreak int `json:"current_streak"`
}

type progressResponse struct {
	CompletedDays   int `json:"completed_days"`
	TotalDays       int `json:"total_days"`
	ProgressPercent int `json:"progress_percent"`
}

type habitSummaryResponse struct {
	HabitID        string  `json:"habit_id"`
	Title          string  `json:"title"`
	Done           int     `json:"done"`
	Missed         int     `json:"missed"`
	CompletionRate float64 `json:"completion_rate"`
}

type dashboardResponse struct {
	User    string                 `json:"user"`
	Summary []habitSummaryResponse `json:"summary"`
}

type quoteResponse struct {
	Quote string `json:"quote"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toHabitResponse(h habit.Habit) habitResponse {
	return habitResponse{
		ID:          h.ID,
		Title:       h.Title,
		Description: h.Description,
		Active:      h.Active,
		CreatedAt:   h.CreatedAt,
	}
}

func toLogResponse(l habit.Log) logResponse {
	return logResponse{
		ID:        l.ID,
		HabitID:   l.HabitID,
		LogDate:   l.LogDate.Format(dateLayout),
		Status:    string(l.Status),
		Note:      l.Note,
		CreatedAt: l.CreatedAt,
	}
}

func toLogResponses(logs []habit.Log) []logResponse {
	out := make([]logResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogResponse(l))
	}
	return out
}
