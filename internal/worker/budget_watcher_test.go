package worker

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

type watcherFixture struct {
	repo    *storage.Repository
	watcher *BudgetWatcher
	logs    *bytes.Buffer

	userID int64
	foodID int64
}

func newWatcherFixture(t *testing.T, warnPercent int) *watcherFixture {
	t.Helper()
	repo, err := storage.New(":memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	user, err := repo.CreateUser(ctx, core.User{
		Username: "alice", Email: "alice@example.com",
		PasswordHash: "x", FullName: "Alice Smith",
	})
	require.NoError(t, err)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	var foodID int64
	for _, c := range categories {
		if c.Name == "Food & Dining" {
			foodID = c.ID
		}
	}
	require.NotZero(t, foodID)

	logs := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &watcherFixture{
		repo:    repo,
		watcher: NewBudgetWatcher(repo, warnPercent),
		logs:    logs,
		userID:  user.ID,
		foodID:  foodID,
	}
}

func (f *watcherFixture) setBudget(t *testing.T, cents int64) {
	t.Helper()
	month, _ := core.ParseDate("2026-08-01")
	require.NoError(t, f.repo.UpsertBudget(context.Background(), core.Budget{
		UserID: f.userID, CategoryID: f.foodID,
		Amount: core.Money{Cents: cents}, Month: month,
	}))
}

func (f *watcherFixture) spend(t *testing.T, cents int64, date string) core.Expense {
	t.Helper()
	d, err := core.ParseDate(date)
	require.NoError(t, err)
	e, err := f.repo.CreateExpense(context.Background(), core.Expense{
		UserID: f.userID, CategoryID: f.foodID,
		Amount: core.Money{Cents: cents}, Description: "spend",
		Date: d, PaymentMethod: core.Cash,
	})
	require.NoError(t, err)
	return e
}

func (f *watcherFixture) event(e core.Expense) *amqp.ExpenseEvent {
	return amqp.NewExpenseEvent(amqp.EventExpenseCreated, e.ID, e.UserID, e.CategoryID, e.Date.String())
}

func TestHandleExpenseEventNoBudget(t *testing.T) {
	f := newWatcherFixture(t, 80)
	e := f.spend(t, 5000, "2026-08-10")

	require.NoError(t, f.watcher.HandleExpenseEvent(context.Background(), f.event(e)))
	assert.NotContains(t, f.logs.String(), "budget")
}

func TestHandleExpenseEventWithinBudget(t *testing.T) {
	f := newWatcherFixture(t, 80)
	f.setBudget(t, 10000)
	e := f.spend(t, 3000, "2026-08-10")

	require.NoError(t, f.watcher.HandleExpenseEvent(context.Background(), f.event(e)))
	out := f.logs.String()
	assert.Contains(t, out, "Category within budget")
	assert.NotContains(t, out, "nearly exhausted")
	assert.NotContains(t, out, "exceeded")
}

func TestHandleExpenseEventNearBudget(t *testing.T) {
	f := newWatcherFixture(t, 80)
	f.setBudget(t, 10000)
	e := f.spend(t, 8500, "2026-08-10")

	require.NoError(t, f.watcher.HandleExpenseEvent(context.Background(), f.event(e)))
	out := f.logs.String()
	assert.Contains(t, out, "Category budget nearly exhausted")
	assert.Contains(t, out, "percent=85")
	assert.NotContains(t, out, "exceeded")
}

func TestHandleExpenseEventOverBudget(t *testing.T) {
	f := newWatcherFixture(t, 80)
	f.setBudget(t, 10000)
	f.spend(t, 8000, "2026-08-05")
	e := f.spend(t, 4000, "2026-08-10")

	require.NoError(t, f.watcher.HandleExpenseEvent(context.Background(), f.event(e)))
	out := f.logs.String()
	assert.Contains(t, out, "Category budget exceeded")
	assert.Contains(t, out, "percent=120")
	assert.Contains(t, out, "month=2026-08")
}

func TestHandleExpenseEventOnlyEventMonthCounts(t *testing.T) {
	f := newWatcherFixture(t, 80)
	f.setBudget(t, 10000)
	f.spend(t, 9000, "2026-07-10")
	e := f.spend(t, 3000, "2026-08-10")

	require.NoError(t, f.watcher.HandleExpenseEvent(context.Background(), f.event(e)))
	assert.Contains(t, f.logs.String(), "Category within budget")
}

func TestHandleExpenseEventBadDate(t *testing.T) {
	f := newWatcherFixture(t, 80)
	event := amqp.NewExpenseEvent(amqp.EventExpenseCreated, 1, f.userID, f.foodID, "not-a-date")

	err := f.watcher.HandleExpenseEvent(context.Background(), event)
	assert.Error(t, err)
}

func TestNewBudgetWatcherClampsWarnPercent(t *testing.T) {
	f := newWatcherFixture(t, 0)
	f.setBudget(t, 10000)
	e := f.spend(t, 8000, "2026-08-10")

	require.NoError(t, f.watcher.HandleExpenseEvent(context.Background(), f.event(e)))
	assert.Contains(t, f.logs.String(), "Category budget nearly exhausted",
		"out-of-range warn percent falls back to 80")
}
