package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"expensetracker/internal/core"
)

// CreateUser inserts a new user and returns it with the generated id.
func (r *Repository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, full_name)
		VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.FullName)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user last insert id: %w", err)
	}

	return r.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by id.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	return r.getUser(ctx, "user_id = ?", id)
}

// GetUserByLogin retrieves an active user whose username or email matches the
// given login. Both fields are checked so either works at the login form.
func (r *Repository) GetUserByLogin(ctx context.Context, login string) (core.User, error) {
	return r.getUser(ctx, "(username = ? OR email = ?) AND is_active = 1", login, login)
}

func (r *Repository) getUser(ctx context.Context, where string, args ...any) (core.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, username, email, password_hash, full_name, is_active, created_at
		FROM users WHERE `+where, args...)

	var u core.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UsernameExists reports whether a user row already has the username.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", username)
}

// EmailExists reports whether a user row already has the email.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", email)
}

func (r *Repository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return count > 0, nil
}

// UpdateUser applies a partial profile update: empty fields are left as-is.
func (r *Repository) UpdateUser(ctx context.Context, id int64, fullName, email string) error {
	var (
		sets []string
		args []any
	)
	if fullName != "" {
		sets = append(sets, "full_name = ?")
		args = append(args, fullName)
	}
	if email != "" {
		sets = append(sets, "email = ?")
		args = append(args, email)
	}
	if len(sets) == 0 {
		return core.ErrEmptyPatch
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE user_id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
