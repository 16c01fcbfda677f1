package storage

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/core"
)

func (s *RepositoryTestSuite) TestCreateAndGetExpense() {
	food := s.categoryID("Food & Dining")

	d, err := core.ParseDate("2026-08-15")
	require.NoError(s.T(), err)
	created, err := s.repo.CreateExpense(s.ctx, core.Expense{
		UserID:        s.alice.ID,
		CategoryID:    food,
		Amount:        core.Money{Cents: 1250},
		Description:   "Lunch at the corner cafe",
		Date:          d,
		PaymentMethod: core.CreditCard,
		Notes:         "client meeting",
	})
	require.NoError(s.T(), err)
	assert.NotZero(s.T(), created.ID)

	got, err := s.repo.GetExpense(s.ctx, created.ID, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1250), got.Amount.Cents)
	assert.Equal(s.T(), "Lunch at the corner cafe", got.Description)
	assert.Equal(s.T(), "2026-08-15", got.Date.String())
	assert.Equal(s.T(), core.CreditCard, got.PaymentMethod)
	assert.Equal(s.T(), "client meeting", got.Notes)
	assert.Equal(s.T(), "Food & Dining", got.CategoryName)
	assert.Equal(s.T(), "🍔", got.CategoryIcon)
	assert.Equal(s.T(), "#F56565", got.CategoryColor)
}

func (s *RepositoryTestSuite) TestGetExpenseScopedToOwner() {
	food := s.categoryID("Food & Dining")
	e := s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-08-01")

	_, err := s.repo.GetExpense(s.ctx, e.ID, s.bob.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestListExpensesNewestFirst() {
	food := s.categoryID("Food & Dining")
	travel := s.categoryID("Travel")

	s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-08-01")
	s.addExpense(s.alice.ID, travel, 42000, "Train to Rome", "2026-08-20")
	s.addExpense(s.alice.ID, food, 1500, "Dinner", "2026-08-10")
	s.addExpense(s.bob.ID, food, 900, "Bob's sandwich", "2026-08-05")

	list, err := s.repo.ListExpenses(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)
	assert.Equal(s.T(), "Train to Rome", list[0].Description)
	assert.Equal(s.T(), "Dinner", list[1].Description)
	assert.Equal(s.T(), "Coffee", list[2].Description)
}

func (s *RepositoryTestSuite) TestListExpensesFilters() {
	food := s.categoryID("Food & Dining")
	travel := s.categoryID("Travel")

	s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-07-30")
	s.addExpense(s.alice.ID, food, 1500, "Dinner", "2026-08-10")
	s.addExpense(s.alice.ID, travel, 42000, "Train to Rome", "2026-08-20")

	start, _ := core.ParseDate("2026-08-01")
	end, _ := core.ParseDate("2026-08-31")
	august, err := s.repo.ListExpenses(s.ctx, s.alice.ID, ExpenseFilter{Start: &start, End: &end})
	require.NoError(s.T(), err)
	assert.Len(s.T(), august, 2)

	onlyFood, err := s.repo.ListExpenses(s.ctx, s.alice.ID, ExpenseFilter{CategoryID: &food})
	require.NoError(s.T(), err)
	require.Len(s.T(), onlyFood, 2)
	for _, e := range onlyFood {
		assert.Equal(s.T(), food, e.CategoryID)
	}
}

func (s *RepositoryTestSuite) TestListExpensesLimitOffset() {
	food := s.categoryID("Food & Dining")
	s.addExpense(s.alice.ID, food, 100, "First", "2026-08-01")
	s.addExpense(s.alice.ID, food, 200, "Second", "2026-08-02")
	s.addExpense(s.alice.ID, food, 300, "Third", "2026-08-03")

	page, err := s.repo.ListExpenses(s.ctx, s.alice.ID, ExpenseFilter{Limit: 2, Offset: 1})
	require.NoError(s.T(), err)
	require.Len(s.T(), page, 2)
	assert.Equal(s.T(), "Second", page[0].Description)
	assert.Equal(s.T(), "First", page[1].Description)
}

func (s *RepositoryTestSuite) TestSearchExpenses() {
	food := s.categoryID("Food & Dining")

	d, _ := core.ParseDate("2026-08-01")
	_, err := s.repo.CreateExpense(s.ctx, core.Expense{
		UserID:        s.alice.ID,
		CategoryID:    food,
		Amount:        core.Money{Cents: 700},
		Description:   "Groceries",
		Date:          d,
		PaymentMethod: core.Cash,
		Notes:         "weekly PIZZA run",
	})
	require.NoError(s.T(), err)
	s.addExpense(s.alice.ID, food, 1200, "Pizza night", "2026-08-02")
	s.addExpense(s.alice.ID, food, 400, "Coffee", "2026-08-03")
	s.addExpense(s.bob.ID, food, 1300, "Pizza for Bob", "2026-08-04")

	found, err := s.repo.SearchExpenses(s.ctx, s.alice.ID, "pizza")
	require.NoError(s.T(), err)
	require.Len(s.T(), found, 2, "matches description or notes, case-insensitively")
	assert.Equal(s.T(), "Pizza night", found[0].Description)
	assert.Equal(s.T(), "Groceries", found[1].Description)
}

func (s *RepositoryTestSuite) TestUpdateExpensePartial() {
	food := s.categoryID("Food & Dining")
	travel := s.categoryID("Travel")
	e := s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-08-01")

	amount := core.Money{Cents: 650}
	err := s.repo.UpdateExpense(s.ctx, e.ID, s.alice.ID, core.ExpensePatch{
		Amount:     &amount,
		CategoryID: &travel,
	})
	require.NoError(s.T(), err)

	got, err := s.repo.GetExpense(s.ctx, e.ID, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(650), got.Amount.Cents)
	assert.Equal(s.T(), travel, got.CategoryID)
	assert.Equal(s.T(), "Travel", got.CategoryName)
	assert.Equal(s.T(), "Coffee", got.Description, "untouched field must survive")
	assert.Equal(s.T(), "2026-08-01", got.Date.String(), "untouched field must survive")
}

func (s *RepositoryTestSuite) TestUpdateExpenseErrors() {
	food := s.categoryID("Food & Dining")
	e := s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-08-01")

	assert.ErrorIs(s.T(), s.repo.UpdateExpense(s.ctx, e.ID, s.alice.ID, core.ExpensePatch{}), core.ErrEmptyPatch)

	desc := "Hijacked"
	assert.ErrorIs(s.T(), s.repo.UpdateExpense(s.ctx, e.ID, s.bob.ID, core.ExpensePatch{Description: &desc}), core.ErrNotFound)

	got, err := s.repo.GetExpense(s.ctx, e.ID, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Coffee", got.Description)
}

func (s *RepositoryTestSuite) TestDeleteExpense() {
	food := s.categoryID("Food & Dining")
	e := s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-08-01")

	assert.ErrorIs(s.T(), s.repo.DeleteExpense(s.ctx, e.ID, s.bob.ID), core.ErrNotFound)

	require.NoError(s.T(), s.repo.DeleteExpense(s.ctx, e.ID, s.alice.ID))
	_, err := s.repo.GetExpense(s.ctx, e.ID, s.alice.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)

	assert.ErrorIs(s.T(), s.repo.DeleteExpense(s.ctx, e.ID, s.alice.ID), core.ErrNotFound)
}
