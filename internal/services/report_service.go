package services

import (
	"context"
	"log/slog"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// ReportService computes aggregates for the dashboard and reports screens.
// Read failures degrade to zero values so a broken aggregate never takes the
// whole screen down, but every degradation is logged.
type ReportService struct {
	storage *storage.Repository
	now     func() time.Time
}

func NewReportService(storage *storage.Repository) *ReportService {
	return &ReportService{
		storage: storage,
		now:     time.Now,
	}
}

// Total returns the summed spend for the filter; 0 on read failure.
func (s *ReportService) Total(ctx context.Context, userID int64, f storage.ExpenseFilter) core.Money {
	total, err := s.storage.Total(ctx, userID, f)
	if err != nil {
		slog.ErrorContext(ctx, "Total aggregate failed, returning zero",
			"error", err, "user_id", userID)
		return core.Money{}
	}
	return total
}

// CategoryTotals returns the per-category breakdown for the filter, every
// category included, highest spend first. Empty on read failure.
func (s *ReportService) CategoryTotals(ctx context.Context, userID int64, f storage.ExpenseFilter) []core.CategoryTotal {
	totals, err := s.storage.CategoryTotals(ctx, userID, f)
	if err != nil {
		slog.ErrorContext(ctx, "Category totals failed, returning empty result",
			"error", err, "user_id", userID)
		return nil
	}
	return totals
}

// MonthlyTotals returns twelve entries for the year, zero-filled for months
// with no spend. Empty on read failure.
func (s *ReportService) MonthlyTotals(ctx context.Context, userID int64, year int) []core.MonthlyTotal {
	totals, err := s.storage.MonthlyTotals(ctx, userID, year)
	if err != nil {
		slog.ErrorContext(ctx, "Monthly totals failed, returning empty result",
			"error", err, "user_id", userID, "year", year)
		return nil
	}
	return totals
}

// DailyTotals returns per-day aggregates for a month, active days only.
// Empty on read failure.
func (s *ReportService) DailyTotals(ctx context.Context, userID int64, year, month int) []core.DailyTotal {
	totals, err := s.storage.DailyTotals(ctx, userID, year, month)
	if err != nil {
		slog.ErrorContext(ctx, "Daily totals failed, returning empty result",
			"error", err, "user_id", userID, "year", year, "month", month)
		return nil
	}
	return totals
}

// Stats returns total, average, max, min and count over the filtered set.
// All zeros on read failure.
func (s *ReportService) Stats(ctx context.Context, userID int64, f storage.ExpenseFilter) core.Stats {
	stats, err := s.storage.Stats(ctx, userID, f)
	if err != nil {
		slog.ErrorContext(ctx, "Stats aggregate failed, returning zeros",
			"error", err, "user_id", userID)
		return core.Stats{}
	}
	return stats
}

// BudgetStatuses compares current-month spend against each budgeted category.
// Empty on read failure.
func (s *ReportService) BudgetStatuses(ctx context.Context, userID int64) []core.BudgetStatus {
	today := core.DateOf(s.now())
	statuses, err := s.storage.BudgetStatuses(ctx, userID, today.MonthStart(), today.MonthEnd())
	if err != nil {
		slog.ErrorContext(ctx, "Budget statuses failed, returning empty result",
			"error", err, "user_id", userID)
		return nil
	}
	return statuses
}

// Dashboard assembles the month-to-date summary screen.
func (s *ReportService) Dashboard(ctx context.Context, userID int64) core.Dashboard {
	now := s.now()
	today := core.DateOf(now)
	monthStart := today.MonthStart()
	monthEnd := today.MonthEnd()
	yearStart := core.NewDate(today.Year(), 1, 1)
	yearEnd := core.NewDate(today.Year(), 12, 31)

	monthFilter := storage.ExpenseFilter{Start: &monthStart, End: &monthEnd}
	monthStats := s.Stats(ctx, userID, monthFilter)

	recent, err := s.storage.ListExpenses(ctx, userID, storage.ExpenseFilter{Limit: 5})
	if err != nil {
		slog.ErrorContext(ctx, "Recent expenses failed, returning empty result",
			"error", err, "user_id", userID)
		recent = nil
	}

	return core.Dashboard{
		MonthlyTotal:   monthStats.Total,
		MonthlyAverage: monthStats.Average,
		MonthlyCount:   monthStats.Count,
		TodayTotal:     s.Total(ctx, userID, storage.ExpenseFilter{Start: &today, End: &today}),
		YearlyTotal:    s.Total(ctx, userID, storage.ExpenseFilter{Start: &yearStart, End: &yearEnd}),
		CategoryTotals: s.CategoryTotals(ctx, userID, monthFilter),
		RecentExpenses: recent,
		MonthlyTrend:   s.MonthlyTotals(ctx, userID, today.Year()),
		CurrentMonth:   now.Format("January 2006"),
	}
}

// Report assembles the breakdown for an arbitrary date range. A zero start
// defaults to the first of the current month, a zero end to today.
func (s *ReportService) Report(ctx context.Context, userID int64, start, end core.Date) core.Report {
	today := core.DateOf(s.now())
	if start.IsZero() {
		start = today.MonthStart()
	}
	if end.IsZero() {
		end = today
	}

	f := storage.ExpenseFilter{Start: &start, End: &end}
	expenses, err := s.storage.ListExpenses(ctx, userID, f)
	if err != nil {
		slog.ErrorContext(ctx, "Report expenses failed, returning empty result",
			"error", err, "user_id", userID)
		expenses = nil
	}

	return core.Report{
		CategoryTotals: s.CategoryTotals(ctx, userID, f),
		Expenses:       expenses,
		DailyTrend:     s.DailyTotals(ctx, userID, start.Year(), start.Month()),
		MonthlyTrend:   s.MonthlyTotals(ctx, userID, start.Year()),
		StartDate:      start,
		EndDate:        end,
	}
}
