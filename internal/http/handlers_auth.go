package http

import (
	"fmt"
	"net/http"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		FullName        string `json:"full_name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.auth.Register(r.Context(), services.Registration{
		Username:        body.Username,
		Email:           body.Email,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
		FullName:        body.FullName,
	})
	if err != nil {
		// Registration is the one place missing fields reads differently.
		if err == core.ErrMissingFields {
			respondFail(w, http.StatusBadRequest, "All fields are required")
			return
		}
		s.respondError(w, r, err, "Registration failed. Please try again.")
		return
	}

	respondCreated(w, "Registration successful! Welcome!", toUserJSON(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Username == "" || body.Password == "" {
		respondFail(w, http.StatusBadRequest, "Please enter username and password")
		return
	}

	user, token, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		s.respondError(w, r, err, "Login failed. Please try again.")
		return
	}

	s.setSessionCookie(w, token)
	respondOK(w, fmt.Sprintf("Welcome back, %s!", user.FullName), toUserJSON(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r.Context(), s.sessionToken(r))
	s.clearSessionCookie(w)
	respondOK(w, "Logged out successfully", nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	respondOK(w, "", toUserJSON(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	var body struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.auth.UpdateProfile(r.Context(), user.ID, body.FullName, body.Email)
	if err != nil {
		s.respondError(w, r, err, "Failed to update profile")
		return
	}

	respondOK(w, "Profile updated successfully", toUserJSON(updated))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), user.ID,
		body.CurrentPassword, body.NewPassword, body.ConfirmPassword); err != nil {
		if err == core.ErrPasswordMismatch {
			respondFail(w, http.StatusBadRequest, "New passwords do not match")
			return
		}
		s.respondError(w, r, err, "Failed to change password")
		return
	}

	respondOK(w, "Password changed successfully", nil)
}
