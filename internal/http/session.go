package http

import (
	"context"
	"net/http"
	"time"

	"expensetracker/internal/core"
)

type contextKey string

const (
	userContextKey contextKey = "user"

	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
)

// userFrom retrieves the authenticated user from the request context.
func userFrom(r *http.Request) (core.User, bool) {
	u, ok := r.Context().Value(userContextKey).(core.User)
	return u, ok
}

func (s *Server) sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.auth.SessionDuration().Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireAuth resolves the session and puts the user on the context. Sessions
// past the halfway point of their lifetime are renewed, so active users stay
// logged in while idle sessions expire.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := s.sessionToken(r)
		sess, err := s.auth.Session(r.Context(), token)
		if err != nil {
			s.clearSessionCookie(w)
			respondFail(w, http.StatusUnauthorized, "Not logged in")
			return
		}

		if time.Until(sess.ExpiresAt) < s.auth.SessionDuration()/2 {
			if err := s.auth.Renew(r.Context(), token); err == nil {
				s.setSessionCookie(w, token)
			}
			// A failed renewal just leaves the current expiry in place.
		}

		ctx := context.WithValue(r.Context(), userContextKey, sess.User)
		next(w, r.WithContext(ctx))
	}
}
