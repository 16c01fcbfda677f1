package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// EventPublisher publishes expense events to the feed. A nil publisher
// disables the feed without changing any caller-visible behavior.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, event *amqp.ExpenseEvent) error
}

// ExpenseService validates input and orchestrates expense persistence.
type ExpenseService struct {
	storage   *storage.Repository
	publisher EventPublisher
}

func NewExpenseService(storage *storage.Repository, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

// Add validates and creates an expense, returning it with its generated id.
func (s *ExpenseService) Add(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	e.Notes = strings.TrimSpace(e.Notes)
	if e.PaymentMethod == "" {
		e.PaymentMethod = core.Cash
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	// The category must exist; a dangling reference would only surface later
	// in joins.
	if _, err := s.storage.GetCategory(ctx, e.CategoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Expense{}, core.ErrInvalidCategory
		}
		return core.Expense{}, fmt.Errorf("check category: %w", err)
	}

	created, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseCreated,
		created.ID, created.UserID, created.CategoryID, created.Date.String()))

	return created, nil
}

// Update applies a partial update to an expense owned by userID. Fields the
// patch leaves nil keep their prior values.
func (s *ExpenseService) Update(ctx context.Context, id, userID int64, p core.ExpensePatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CategoryID != nil {
		if _, err := s.storage.GetCategory(ctx, *p.CategoryID); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.ErrInvalidCategory
			}
			return fmt.Errorf("check category: %w", err)
		}
	}
	return s.storage.UpdateExpense(ctx, id, userID, p)
}

// Delete removes an expense only when both id and owner match.
func (s *ExpenseService) Delete(ctx context.Context, id, userID int64) error {
	e, err := s.storage.GetExpense(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteExpense(ctx, id, userID); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseDeleted,
		e.ID, e.UserID, e.CategoryID, e.Date.String()))

	return nil
}

// Get retrieves a single expense scoped to its owner.
func (s *ExpenseService) Get(ctx context.Context, id, userID int64) (core.Expense, error) {
	return s.storage.GetExpense(ctx, id, userID)
}

// List returns a user's expenses matching the filter, newest first.
// Persistence failures degrade to an empty list.
func (s *ExpenseService) List(ctx context.Context, userID int64, f storage.ExpenseFilter) []core.Expense {
	expenses, err := s.storage.ListExpenses(ctx, userID, f)
	if err != nil {
		slog.ErrorContext(ctx, "List expenses failed, returning empty result",
			"error", err, "user_id", userID)
		return nil
	}
	return expenses
}

// Recent returns a user's most recent expenses.
func (s *ExpenseService) Recent(ctx context.Context, userID int64, limit int) []core.Expense {
	if limit <= 0 {
		limit = 5
	}
	return s.List(ctx, userID, storage.ExpenseFilter{Limit: limit})
}

// Search finds a user's expenses matching the term in description or notes.
// Persistence failures degrade to an empty list.
func (s *ExpenseService) Search(ctx context.Context, userID int64, term string) []core.Expense {
	expenses, err := s.storage.SearchExpenses(ctx, userID, term)
	if err != nil {
		slog.ErrorContext(ctx, "Search expenses failed, returning empty result",
			"error", err, "user_id", userID)
		return nil
	}
	return expenses
}

// Categories lists all expense categories. Persistence failures degrade to an
// empty list.
func (s *ExpenseService) Categories(ctx context.Context) []core.Category {
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List categories failed, returning empty result", "error", err)
		return nil
	}
	return categories
}

// SetCategoryBudget upserts the budget for a category in the given month.
func (s *ExpenseService) SetCategoryBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, err := s.storage.GetCategory(ctx, b.CategoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.ErrInvalidCategory
		}
		return fmt.Errorf("check category: %w", err)
	}
	return s.storage.UpsertBudget(ctx, b)
}

// CategoryBudget returns the budget in force for a category; 0 when unset or
// on persistence failure.
func (s *ExpenseService) CategoryBudget(ctx context.Context, userID, categoryID int64) core.Money {
	amount, err := s.storage.CategoryBudget(ctx, userID, categoryID)
	if err != nil {
		slog.ErrorContext(ctx, "Category budget read failed, returning zero",
			"error", err, "user_id", userID, "category_id", categoryID)
		return core.Money{}
	}
	return amount
}

func (s *ExpenseService) publish(ctx context.Context, event *amqp.ExpenseEvent) {
	if s.publisher == nil {
		return
	}
	// The event feed is best-effort: the expense is already persisted, so a
	// publish failure must not fail the request.
	if err := s.publisher.PublishExpenseEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"error", err, "kind", event.Kind, "expense_id", event.ExpenseID)
	}
}
