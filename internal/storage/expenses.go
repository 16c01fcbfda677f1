package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"expensetracker/internal/core"
)

const expenseColumns = `e.expense_id, e.user_id, e.category_id, e.amount_cents,
	e.description, e.expense_date, e.payment_method, e.notes, e.created_at,
	c.category_name, c.icon, c.color`

func scanExpense(row interface{ Scan(...any) error }) (core.Expense, error) {
	var (
		e       core.Expense
		dateStr string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount.Cents,
		&e.Description, &dateStr, &e.PaymentMethod, &e.Notes, &e.CreatedAt,
		&e.CategoryName, &e.CategoryIcon, &e.CategoryColor)
	if err != nil {
		return core.Expense{}, err
	}
	e.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", dateStr, err)
	}
	return e, nil
}

// CreateExpense inserts a new expense and returns it with the generated id.
func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (user_id, category_id, amount_cents, description,
			expense_date, payment_method, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.CategoryID, e.Amount.Cents, e.Description,
		e.Date.String(), string(e.PaymentMethod), e.Notes)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense last insert id: %w", err)
	}

	return r.GetExpense(ctx, id, e.UserID)
}

// GetExpense retrieves a single expense by id, scoped to its owner.
func (r *Repository) GetExpense(ctx context.Context, id, userID int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN categories c ON e.category_id = c.category_id
		WHERE e.expense_id = ? AND e.user_id = ?`,
		id, userID)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListExpenses returns a user's expenses matching the filter, newest first.
func (r *Repository) ListExpenses(ctx context.Context, userID int64, f ExpenseFilter) ([]core.Expense, error) {
	var w whereBuilder
	w.add("e.user_id = ?", userID)
	f.apply(&w, "e")

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN categories c ON e.category_id = c.category_id
		` + w.sql() + `
		ORDER BY e.expense_date DESC, e.created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(f.Limit) + " OFFSET " + strconv.Itoa(f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SearchExpenses finds a user's expenses whose description or notes contain
// the term, case-insensitively, newest first.
func (r *Repository) SearchExpenses(ctx context.Context, userID int64, term string) ([]core.Expense, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN categories c ON e.category_id = c.category_id
		WHERE e.user_id = ?
		  AND (LOWER(e.description) LIKE ? OR LOWER(e.notes) LIKE ?)
		ORDER BY e.expense_date DESC`,
		userID, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense applies a partial update to an expense owned by userID.
// Only the patch's non-nil fields change. Returns core.ErrNotFound when no
// row matches both id and owner.
func (r *Repository) UpdateExpense(ctx context.Context, id, userID int64, p core.ExpensePatch) error {
	var (
		sets []string
		args []any
	)
	if p.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *p.CategoryID)
	}
	if p.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, p.Amount.Cents)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Date != nil {
		sets = append(sets, "expense_date = ?")
		args = append(args, p.Date.String())
	}
	if p.PaymentMethod != nil {
		sets = append(sets, "payment_method = ?")
		args = append(args, string(*p.PaymentMethod))
	}
	if p.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *p.Notes)
	}
	if len(sets) == 0 {
		return core.ErrEmptyPatch
	}

	args = append(args, id, userID)
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET `+strings.Join(sets, ", ")+`
		WHERE expense_id = ? AND user_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense only when both id and owner match.
func (r *Repository) DeleteExpense(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE expense_id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
