package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

// envelope is the uniform response shape of the API: a success flag, a
// human-readable message and an optional payload.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, message string, payload any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Payload: payload})
}

func respondCreated(w http.ResponseWriter, message string, payload any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: message, Payload: payload})
}

func respondFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondError maps domain errors to the messages users actually see. The
// fallback hides internals behind a generic message and logs the cause.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if msg, status, ok := userMessage(err); ok {
		respondFail(w, status, msg)
		return
	}
	s.logger.ErrorContext(r.Context(), "Request failed",
		applog.FieldError, err,
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	respondFail(w, http.StatusInternalServerError, fallback)
}

var userMessages = map[error]struct {
	message string
	status  int
}{
	core.ErrMissingFields:        {"Please fill all required fields", http.StatusBadRequest},
	core.ErrInvalidAmount:        {"Amount must be greater than 0", http.StatusBadRequest},
	core.ErrEmptyDescription:     {"Please fill all required fields", http.StatusBadRequest},
	core.ErrInvalidDate:          {"Invalid date", http.StatusBadRequest},
	core.ErrInvalidCategory:      {"Invalid category", http.StatusBadRequest},
	core.ErrInvalidPaymentMethod: {"Invalid payment method", http.StatusBadRequest},
	core.ErrEmptyPatch:           {"No fields to update", http.StatusBadRequest},

	core.ErrInvalidUsername:    {"Username must be 3-20 characters (letters, numbers, underscore)", http.StatusBadRequest},
	core.ErrInvalidEmail:       {"Please enter a valid email address", http.StatusBadRequest},
	core.ErrPasswordTooShort:   {"Password must be at least 6 characters", http.StatusBadRequest},
	core.ErrPasswordNoLetter:   {"Password must contain at least one letter", http.StatusBadRequest},
	core.ErrPasswordNoDigit:    {"Password must contain at least one number", http.StatusBadRequest},
	core.ErrPasswordMismatch:   {"Passwords do not match", http.StatusBadRequest},
	core.ErrUsernameTaken:      {"Username already taken", http.StatusConflict},
	core.ErrEmailTaken:         {"Email already registered", http.StatusConflict},
	core.ErrInvalidCredentials: {"Invalid username or password", http.StatusUnauthorized},
	core.ErrWrongPassword:      {"Current password is incorrect", http.StatusBadRequest},
	core.ErrNotLoggedIn:        {"Not logged in", http.StatusUnauthorized},

	core.ErrNotFound: {"Not found", http.StatusNotFound},
}

func userMessage(err error) (string, int, bool) {
	for sentinel, m := range userMessages {
		if errors.Is(err, sentinel) {
			return m.message, m.status, true
		}
	}
	return "", 0, false
}
