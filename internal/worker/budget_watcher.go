package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// BudgetWatcher consumes expense events and flags categories whose
// month-to-date spend approaches or exceeds their budget.
type BudgetWatcher struct {
	storage     *storage.Repository
	warnPercent int
}

func NewBudgetWatcher(storage *storage.Repository, warnPercent int) *BudgetWatcher {
	if warnPercent <= 0 || warnPercent > 100 {
		warnPercent = 80
	}
	return &BudgetWatcher{
		storage:     storage,
		warnPercent: warnPercent,
	}
}

// HandleExpenseEvent checks the event's category against its budget for the
// month the expense falls in. Delete events are also checked since removing
// an expense can pull a category back under budget.
func (w *BudgetWatcher) HandleExpenseEvent(ctx context.Context, event *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing expense event",
		"kind", event.Kind,
		"expense_id", event.ExpenseID,
		"user_id", event.UserID)

	date, err := core.ParseDate(event.ExpenseDate)
	if err != nil {
		return fmt.Errorf("parse expense date %q: %w", event.ExpenseDate, err)
	}

	budget, err := w.storage.CategoryBudget(ctx, event.UserID, event.CategoryID)
	if err != nil {
		return fmt.Errorf("get category budget: %w", err)
	}
	if budget.Cents == 0 {
		// No budget set for this category, nothing to watch.
		return nil
	}

	start := date.MonthStart()
	end := date.MonthEnd()
	spent, err := w.storage.Total(ctx, event.UserID, storage.ExpenseFilter{
		Start:      &start,
		End:        &end,
		CategoryID: &event.CategoryID,
	})
	if err != nil {
		return fmt.Errorf("get category spend: %w", err)
	}

	percent := int(spent.Cents * 100 / budget.Cents)

	switch {
	case percent > 100:
		slog.ErrorContext(ctx, "Category budget exceeded",
			"user_id", event.UserID,
			"category_id", event.CategoryID,
			"month", start.Format("2006-01"),
			"budget", budget.String(),
			"spent", spent.String(),
			"percent", percent)
	case percent >= w.warnPercent:
		slog.WarnContext(ctx, "Category budget nearly exhausted",
			"user_id", event.UserID,
			"category_id", event.CategoryID,
			"month", start.Format("2006-01"),
			"budget", budget.String(),
			"spent", spent.String(),
			"percent", percent)
	default:
		slog.DebugContext(ctx, "Category within budget",
			"user_id", event.UserID,
			"category_id", event.CategoryID,
			"percent", percent)
	}

	return nil
}
