package storage

import (
	"context"
	"fmt"

	"expensetracker/internal/core"
)

// Total sums a user's expenses matching the filter. Returns 0 when no rows match.
func (r *Repository) Total(ctx context.Context, userID int64, f ExpenseFilter) (core.Money, error) {
	var w whereBuilder
	w.add("user_id = ?", userID)
	f.apply(&w, "")

	var total core.Money
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses `+w.sql(), w.args...).Scan(&total.Cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("total expenses: %w", err)
	}
	return total, nil
}

// CategoryTotals aggregates a user's spend per category, ordered by total
// descending. Every category appears, including ones with no matching
// expenses, via the LEFT JOIN.
func (r *Repository) CategoryTotals(ctx context.Context, userID int64, f ExpenseFilter) ([]core.CategoryTotal, error) {
	// Range predicates live in the join condition so unmatched categories
	// survive with zero totals.
	join := "LEFT JOIN expenses e ON c.category_id = e.category_id AND e.user_id = ?"
	args := []any{userID}
	if f.Start != nil {
		join += " AND e.expense_date >= ?"
		args = append(args, f.Start.String())
	}
	if f.End != nil {
		join += " AND e.expense_date <= ?"
		args = append(args, f.End.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.category_id, c.category_name, c.icon, c.color,
		       COALESCE(SUM(e.amount_cents), 0) AS total,
		       COUNT(e.expense_id) AS count
		FROM categories c
		`+join+`
		GROUP BY c.category_id
		ORDER BY total DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Icon, &t.Color,
			&t.Total.Cents, &t.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// MonthlyTotals aggregates a user's spend per calendar month of the given
// year. The result always has exactly 12 entries: months without activity
// are zero-filled here, never left to the query.
func (r *Repository) MonthlyTotals(ctx context.Context, userID int64, year int) ([]core.MonthlyTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT CAST(strftime('%m', expense_date) AS INTEGER) AS month,
		       COALESCE(SUM(amount_cents), 0) AS total,
		       COUNT(*) AS count
		FROM expenses
		WHERE user_id = ? AND CAST(strftime('%Y', expense_date) AS INTEGER) = ?
		GROUP BY month
		ORDER BY month`, userID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	totals := make([]core.MonthlyTotal, 12)
	for i := range totals {
		totals[i].Month = i + 1
	}
	for rows.Next() {
		var t core.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total.Cents, &t.Count); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		if t.Month >= 1 && t.Month <= 12 {
			totals[t.Month-1] = t
		}
	}
	return totals, rows.Err()
}

// DailyTotals aggregates a user's spend per day of the given month. Only days
// with at least one expense appear.
func (r *Repository) DailyTotals(ctx context.Context, userID int64, year, month int) ([]core.DailyTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT CAST(strftime('%d', expense_date) AS INTEGER) AS day,
		       COALESCE(SUM(amount_cents), 0) AS total,
		       COUNT(*) AS count
		FROM expenses
		WHERE user_id = ?
		  AND CAST(strftime('%Y', expense_date) AS INTEGER) = ?
		  AND CAST(strftime('%m', expense_date) AS INTEGER) = ?
		GROUP BY day
		ORDER BY day`, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var totals []core.DailyTotal
	for rows.Next() {
		var t core.DailyTotal
		if err := rows.Scan(&t.Day, &t.Total.Cents, &t.Count); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Stats computes sum, mean, max, min, and count over a user's filtered
// expenses. All fields are zero when no rows match. The average is derived
// from total and count in cents with half-up rounding rather than SQL AVG,
// keeping the arithmetic in fixed point.
func (r *Repository) Stats(ctx context.Context, userID int64, f ExpenseFilter) (core.Stats, error) {
	var w whereBuilder
	w.add("user_id = ?", userID)
	f.apply(&w, "")

	var s core.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0),
		       COALESCE(MAX(amount_cents), 0),
		       COALESCE(MIN(amount_cents), 0),
		       COUNT(*)
		FROM expenses `+w.sql(), w.args...).
		Scan(&s.Total.Cents, &s.Max.Cents, &s.Min.Cents, &s.Count)
	if err != nil {
		return core.Stats{}, fmt.Errorf("expense stats: %w", err)
	}

	s.Average.Cents = core.DivideCents(s.Total.Cents, s.Count)
	return s, nil
}
