package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expensetracker/internal/core"
)

// Session pairs an authenticated user with the session's lifetime bounds.
type Session struct {
	User         core.User
	LastActivity time.Time
	ExpiresAt    time.Time
}

// CreateSession stores a new session token for a user.
func (r *Repository) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at, last_activity)
		VALUES (?, ?, ?, ?)`,
		token, userID, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns the unexpired session for a token along with its user.
func (r *Repository) GetSession(ctx context.Context, token string) (Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT u.user_id, u.username, u.email, u.password_hash, u.full_name,
		       u.is_active, u.created_at, s.last_activity, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.user_id
		WHERE s.token = ?`, token)

	var s Session
	err := row.Scan(&s.User.ID, &s.User.Username, &s.User.Email, &s.User.PasswordHash,
		&s.User.FullName, &s.User.IsActive, &s.User.CreatedAt,
		&s.LastActivity, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, core.ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	// Expiry is checked here rather than in SQL so the comparison does not
	// depend on how the driver serializes timestamps.
	if !s.ExpiresAt.After(time.Now()) {
		return Session{}, core.ErrNotFound
	}
	return s, nil
}

// RenewSession pushes a session's expiry forward and records activity.
func (r *Repository) RenewSession(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		time.Now(), expiresAt, token)
	if err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	return nil
}

// DeleteSession removes a session by token.
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanExpiredSessions removes all sessions past their expiry.
func (r *Repository) CleanExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?", time.Now())
	if err != nil {
		return fmt.Errorf("clean expired sessions: %w", err)
	}
	return nil
}
