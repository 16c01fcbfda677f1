package storage

import (
	"strings"

	"expensetracker/internal/core"
)

// whereBuilder folds an ordered list of predicate+parameter pairs into a
// parameterized WHERE clause. Optional filters are added conditionally; the
// SQL text never embeds a value.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(expr string, args ...any) {
	w.clauses = append(w.clauses, expr)
	w.args = append(w.args, args...)
}

// sql returns the assembled WHERE clause (including the leading "WHERE"),
// or the empty string when no predicates were added.
func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

// ExpenseFilter narrows expense queries. Nil fields are not applied;
// the date range is inclusive on both ends.
type ExpenseFilter struct {
	Start      *core.Date
	End        *core.Date
	CategoryID *int64
	Limit      int
	Offset     int
}

// apply appends the filter's predicates to a builder whose column names are
// prefixed with the given table alias ("" for none).
func (f ExpenseFilter) apply(w *whereBuilder, alias string) {
	if alias != "" {
		alias += "."
	}
	if f.Start != nil {
		w.add(alias+"expense_date >= ?", f.Start.String())
	}
	if f.End != nil {
		w.add(alias+"expense_date <= ?", f.End.String())
	}
	if f.CategoryID != nil {
		w.add(alias+"category_id = ?", *f.CategoryID)
	}
}
