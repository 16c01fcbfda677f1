package storage

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/core"
)

func (s *RepositoryTestSuite) TestTotalEmpty() {
	total, err := s.repo.Total(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), total.Cents)
}

func (s *RepositoryTestSuite) TestTotalWithFilter() {
	food := s.categoryID("Food & Dining")
	travel := s.categoryID("Travel")

	s.addExpense(s.alice.ID, food, 1000, "Lunch", "2026-07-15")
	s.addExpense(s.alice.ID, food, 2000, "Dinner", "2026-08-10")
	s.addExpense(s.alice.ID, travel, 5000, "Taxi", "2026-08-20")
	s.addExpense(s.bob.ID, food, 9999, "Bob's feast", "2026-08-10")

	total, err := s.repo.Total(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(8000), total.Cents)

	start, _ := core.ParseDate("2026-08-01")
	end, _ := core.ParseDate("2026-08-31")
	august, err := s.repo.Total(s.ctx, s.alice.ID, ExpenseFilter{Start: &start, End: &end})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(7000), august.Cents)

	foodOnly, err := s.repo.Total(s.ctx, s.alice.ID, ExpenseFilter{CategoryID: &food})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3000), foodOnly.Cents)
}

func (s *RepositoryTestSuite) TestStats() {
	food := s.categoryID("Food & Dining")
	s.addExpense(s.alice.ID, food, 10000, "Groceries", "2026-08-01")
	s.addExpense(s.alice.ID, food, 25050, "Appliance repair", "2026-08-05")
	s.addExpense(s.alice.ID, food, 4950, "Snacks", "2026-08-09")

	stats, err := s.repo.Stats(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(40000), stats.Total.Cents)
	assert.Equal(s.T(), int64(13333), stats.Average.Cents, "average rounds half up in cents")
	assert.Equal(s.T(), int64(25050), stats.Max.Cents)
	assert.Equal(s.T(), int64(4950), stats.Min.Cents)
	assert.Equal(s.T(), int64(3), stats.Count)
}

func (s *RepositoryTestSuite) TestStatsEmpty() {
	stats, err := s.repo.Stats(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	assert.Zero(s.T(), stats.Total.Cents)
	assert.Zero(s.T(), stats.Average.Cents)
	assert.Zero(s.T(), stats.Max.Cents)
	assert.Zero(s.T(), stats.Min.Cents)
	assert.Zero(s.T(), stats.Count)
}

func (s *RepositoryTestSuite) TestCategoryTotalsCoverAllCategories() {
	food := s.categoryID("Food & Dining")
	travel := s.categoryID("Travel")

	s.addExpense(s.alice.ID, food, 3000, "Dinner", "2026-08-10")
	s.addExpense(s.alice.ID, food, 1000, "Lunch", "2026-08-11")
	s.addExpense(s.alice.ID, travel, 7000, "Train", "2026-08-12")

	totals, err := s.repo.CategoryTotals(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	require.Len(s.T(), totals, 12, "every category appears, spent or not")

	assert.Equal(s.T(), "Travel", totals[0].CategoryName)
	assert.Equal(s.T(), int64(7000), totals[0].Total.Cents)
	assert.Equal(s.T(), "Food & Dining", totals[1].CategoryName)
	assert.Equal(s.T(), int64(4000), totals[1].Total.Cents)
	assert.Equal(s.T(), int64(2), totals[1].Count)

	var sum int64
	for _, t := range totals {
		sum += t.Total.Cents
	}
	total, err := s.repo.Total(s.ctx, s.alice.ID, ExpenseFilter{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), total.Cents, sum, "category totals reconcile with the grand total")
}

func (s *RepositoryTestSuite) TestCategoryTotalsDateRange() {
	food := s.categoryID("Food & Dining")
	s.addExpense(s.alice.ID, food, 1000, "July lunch", "2026-07-15")
	s.addExpense(s.alice.ID, food, 2000, "August lunch", "2026-08-15")

	start, _ := core.ParseDate("2026-08-01")
	end, _ := core.ParseDate("2026-08-31")
	totals, err := s.repo.CategoryTotals(s.ctx, s.alice.ID, ExpenseFilter{Start: &start, End: &end})
	require.NoError(s.T(), err)
	require.Len(s.T(), totals, 12)
	assert.Equal(s.T(), "Food & Dining", totals[0].CategoryName)
	assert.Equal(s.T(), int64(2000), totals[0].Total.Cents)
}

func (s *RepositoryTestSuite) TestMonthlyTotalsZeroFilled() {
	food := s.categoryID("Food & Dining")
	s.addExpense(s.alice.ID, food, 1500, "March dinner", "2026-03-10")
	s.addExpense(s.alice.ID, food, 2500, "March show", "2026-03-20")
	s.addExpense(s.alice.ID, food, 1000, "August lunch", "2026-08-05")
	s.addExpense(s.alice.ID, food, 9000, "Last year", "2025-03-10")

	totals, err := s.repo.MonthlyTotals(s.ctx, s.alice.ID, 2026)
	require.NoError(s.T(), err)
	require.Len(s.T(), totals, 12)

	for i, t := range totals {
		assert.Equal(s.T(), i+1, t.Month)
	}
	assert.Equal(s.T(), int64(4000), totals[2].Total.Cents)
	assert.Equal(s.T(), int64(2), totals[2].Count)
	assert.Equal(s.T(), int64(1000), totals[7].Total.Cents)
	assert.Zero(s.T(), totals[0].Total.Cents, "inactive months zero-filled")
	assert.Zero(s.T(), totals[11].Total.Cents)
}

func (s *RepositoryTestSuite) TestDailyTotalsActiveDaysOnly() {
	food := s.categoryID("Food & Dining")
	s.addExpense(s.alice.ID, food, 500, "Coffee", "2026-08-03")
	s.addExpense(s.alice.ID, food, 700, "More coffee", "2026-08-03")
	s.addExpense(s.alice.ID, food, 2000, "Dinner", "2026-08-21")
	s.addExpense(s.alice.ID, food, 9000, "July", "2026-07-21")

	totals, err := s.repo.DailyTotals(s.ctx, s.alice.ID, 2026, 8)
	require.NoError(s.T(), err)
	require.Len(s.T(), totals, 2)
	assert.Equal(s.T(), 3, totals[0].Day)
	assert.Equal(s.T(), int64(1200), totals[0].Total.Cents)
	assert.Equal(s.T(), int64(2), totals[0].Count)
	assert.Equal(s.T(), 21, totals[1].Day)
	assert.Equal(s.T(), int64(2000), totals[1].Total.Cents)
}

func (s *RepositoryTestSuite) TestBudgetUpsert() {
	food := s.categoryID("Food & Dining")
	month, _ := core.ParseDate("2026-08-01")

	require.NoError(s.T(), s.repo.UpsertBudget(s.ctx, core.Budget{
		UserID: s.alice.ID, CategoryID: food,
		Amount: core.Money{Cents: 50000}, Month: month,
	}))
	require.NoError(s.T(), s.repo.UpsertBudget(s.ctx, core.Budget{
		UserID: s.alice.ID, CategoryID: food,
		Amount: core.Money{Cents: 30000}, Month: month,
	}))

	amount, err := s.repo.CategoryBudget(s.ctx, s.alice.ID, food)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(30000), amount.Cents, "second write wins")
}

func (s *RepositoryTestSuite) TestCategoryBudgetLatestMonthWins() {
	food := s.categoryID("Food & Dining")
	july, _ := core.ParseDate("2026-07-01")
	august, _ := core.ParseDate("2026-08-01")

	require.NoError(s.T(), s.repo.UpsertBudget(s.ctx, core.Budget{
		UserID: s.alice.ID, CategoryID: food,
		Amount: core.Money{Cents: 40000}, Month: july,
	}))
	require.NoError(s.T(), s.repo.UpsertBudget(s.ctx, core.Budget{
		UserID: s.alice.ID, CategoryID: food,
		Amount: core.Money{Cents: 60000}, Month: august,
	}))

	amount, err := s.repo.CategoryBudget(s.ctx, s.alice.ID, food)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(60000), amount.Cents)
}

func (s *RepositoryTestSuite) TestCategoryBudgetUnset() {
	food := s.categoryID("Food & Dining")
	amount, err := s.repo.CategoryBudget(s.ctx, s.alice.ID, food)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), amount.Cents)
}

func (s *RepositoryTestSuite) TestBudgetStatuses() {
	food := s.categoryID("Food & Dining")
	travel := s.categoryID("Travel")
	month, _ := core.ParseDate("2026-08-01")

	require.NoError(s.T(), s.repo.UpsertBudget(s.ctx, core.Budget{
		UserID: s.alice.ID, CategoryID: food,
		Amount: core.Money{Cents: 40000}, Month: month,
	}))
	require.NoError(s.T(), s.repo.UpsertBudget(s.ctx, core.Budget{
		UserID: s.alice.ID, CategoryID: travel,
		Amount: core.Money{Cents: 10000}, Month: month,
	}))

	s.addExpense(s.alice.ID, food, 10000, "Groceries", "2026-08-04")
	s.addExpense(s.alice.ID, food, 20000, "Restaurant week", "2026-08-18")
	s.addExpense(s.alice.ID, food, 5000, "July spend", "2026-07-10")
	s.addExpense(s.bob.ID, food, 99999, "Bob's groceries", "2026-08-04")

	start, _ := core.ParseDate("2026-08-01")
	end, _ := core.ParseDate("2026-08-31")
	statuses, err := s.repo.BudgetStatuses(s.ctx, s.alice.ID, start, end)
	require.NoError(s.T(), err)
	require.Len(s.T(), statuses, 2)

	assert.Equal(s.T(), "Food & Dining", statuses[0].CategoryName)
	assert.Equal(s.T(), int64(40000), statuses[0].Budget.Cents)
	assert.Equal(s.T(), int64(30000), statuses[0].Spent.Cents, "only the requested range counts")
	assert.Equal(s.T(), 75, statuses[0].Percent)

	assert.Equal(s.T(), "Travel", statuses[1].CategoryName)
	assert.Zero(s.T(), statuses[1].Spent.Cents)
	assert.Zero(s.T(), statuses[1].Percent)
}
