package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expensetracker/internal/auth"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// AuthService handles registration, credential checks and session lifecycle.
type AuthService struct {
	storage         *storage.Repository
	sessionDuration time.Duration
}

func NewAuthService(storage *storage.Repository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		storage:         storage,
		sessionDuration: sessionDuration,
	}
}

// SessionDuration returns how long issued sessions live.
func (s *AuthService) SessionDuration() time.Duration {
	return s.sessionDuration
}

// Registration carries the sign-up form fields.
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Register validates a sign-up request and creates the user. Checks run in a
// fixed order and the first failure wins, so callers always see a single
// actionable message.
func (s *AuthService) Register(ctx context.Context, reg Registration) (core.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FullName = strings.TrimSpace(reg.FullName)

	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return core.User{}, core.ErrMissingFields
	}
	if err := auth.ValidateUsername(reg.Username); err != nil {
		return core.User{}, err
	}
	if err := auth.ValidateEmail(reg.Email); err != nil {
		return core.User{}, err
	}
	if err := auth.ValidatePassword(reg.Password); err != nil {
		return core.User{}, err
	}
	if reg.Password != reg.ConfirmPassword {
		return core.User{}, core.ErrPasswordMismatch
	}

	taken, err := s.storage.UsernameExists(ctx, reg.Username)
	if err != nil {
		return core.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return core.User{}, core.ErrUsernameTaken
	}

	taken, err = s.storage.EmailExists(ctx, reg.Email)
	if err != nil {
		return core.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return core.User{}, core.ErrEmailTaken
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, core.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FullName:     reg.FullName,
	})
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks credentials against active users and issues a session token.
// Failures are deliberately indistinct so the caller cannot probe which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, login, password string) (core.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return core.User{}, "", core.ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByLogin(ctx, login)
	if err != nil {
		// Hash anyway so missing and present accounts take comparable time.
		auth.CheckPassword(password, "")
		return core.User{}, "", core.ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return core.User{}, "", core.ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return core.User{}, "", fmt.Errorf("generate session token: %w", err)
	}
	if err := s.storage.CreateSession(ctx, token, user.ID, time.Now().Add(s.sessionDuration)); err != nil {
		return core.User{}, "", fmt.Errorf("create session: %w", err)
	}

	slog.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return user, token, nil
}

// Session resolves a token to its live session, or ErrNotLoggedIn.
func (s *AuthService) Session(ctx context.Context, token string) (storage.Session, error) {
	if token == "" {
		return storage.Session{}, core.ErrNotLoggedIn
	}
	sess, err := s.storage.GetSession(ctx, token)
	if err != nil {
		return storage.Session{}, core.ErrNotLoggedIn
	}
	return sess, nil
}

// Renew extends a session's expiry from now.
func (s *AuthService) Renew(ctx context.Context, token string) error {
	return s.storage.RenewSession(ctx, token, time.Now().Add(s.sessionDuration))
}

// Logout discards the session; unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.storage.DeleteSession(ctx, token); err != nil {
		slog.WarnContext(ctx, "Failed to delete session", "error", err)
	}
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next, confirm string) error {
	if next != confirm {
		return core.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(next); err != nil {
		return err
	}
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(current, user.PasswordHash) {
		return core.ErrWrongPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.storage.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Password changed", "user_id", userID)
	return nil
}

// UpdateProfile changes full name and/or email. An empty field keeps its
// current value.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (core.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)

	if email != "" {
		if err := auth.ValidateEmail(email); err != nil {
			return core.User{}, err
		}
		current, err := s.storage.GetUserByID(ctx, userID)
		if err != nil {
			return core.User{}, err
		}
		if email != current.Email {
			taken, err := s.storage.EmailExists(ctx, email)
			if err != nil {
				return core.User{}, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return core.User{}, core.ErrEmailTaken
			}
		}
	}

	if err := s.storage.UpdateUser(ctx, userID, fullName, email); err != nil {
		return core.User{}, err
	}
	return s.storage.GetUserByID(ctx, userID)
}

// CleanExpiredSessions removes sessions past their expiry.
func (s *AuthService) CleanExpiredSessions(ctx context.Context) error {
	return s.storage.CleanExpiredSessions(ctx)
}
