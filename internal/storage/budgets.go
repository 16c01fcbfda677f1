package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

// UpsertBudget sets the monthly budget for a (user, category, month) triple.
// The unique constraint on those columns makes the upsert atomic, so two
// concurrent writers cannot create duplicate rows.
func (r *Repository) UpsertBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category_id, amount_cents, month)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, category_id, month)
		DO UPDATE SET amount_cents = excluded.amount_cents`,
		b.UserID, b.CategoryID, b.Amount.Cents, b.Month.MonthStart().String())
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

// CategoryBudget returns the most recent budget set for a (user, category)
// pair. The latest month's row wins; 0 when no budget was ever set.
func (r *Repository) CategoryBudget(ctx context.Context, userID, categoryID int64) (core.Money, error) {
	var amount core.Money
	err := r.db.QueryRowContext(ctx, `
		SELECT amount_cents FROM budgets
		WHERE user_id = ? AND category_id = ?
		ORDER BY month DESC LIMIT 1`,
		userID, categoryID).Scan(&amount.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Money{}, nil
	}
	if err != nil {
		return core.Money{}, fmt.Errorf("category budget: %w", err)
	}
	return amount, nil
}

// BudgetStatuses compares each budgeted category's spend inside [start, end]
// against the budget in force (latest month's row per category).
func (r *Repository) BudgetStatuses(ctx context.Context, userID int64, start, end core.Date) ([]core.BudgetStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.category_id, c.category_name, b.amount_cents,
		       COALESCE((SELECT SUM(e.amount_cents) FROM expenses e
		                 WHERE e.user_id = b.user_id
		                   AND e.category_id = b.category_id
		                   AND e.expense_date >= ? AND e.expense_date <= ?), 0) AS spent
		FROM budgets b
		JOIN categories c ON b.category_id = c.category_id
		WHERE b.user_id = ?
		  AND b.month = (SELECT MAX(b2.month) FROM budgets b2
		                 WHERE b2.user_id = b.user_id AND b2.category_id = b.category_id)
		ORDER BY c.category_name ASC`,
		start.String(), end.String(), userID)
	if err != nil {
		return nil, fmt.Errorf("budget statuses: %w", err)
	}
	defer rows.Close()

	var statuses []core.BudgetStatus
	for rows.Next() {
		var s core.BudgetStatus
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.Budget.Cents, &s.Spent.Cents); err != nil {
			return nil, fmt.Errorf("scan budget status: %w", err)
		}
		if s.Budget.Cents > 0 {
			s.Percent = int((s.Spent.Cents * 100) / s.Budget.Cents)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
