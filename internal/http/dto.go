package http

import (
	"expensetracker/internal/core"
)

// Wire representations. Amounts travel as decimal strings ("133.33") so
// clients never touch the cents fixed-point directly.

type userJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func toUserJSON(u core.User) userJSON {
	return userJSON{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

type categoryJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

func toCategoryJSON(c core.Category) categoryJSON {
	return categoryJSON{
		ID:          c.ID,
		Name:        c.Name,
		Icon:        c.Icon,
		Color:       c.Color,
		Description: c.Description,
	}
}

type expenseJSON struct {
	ID            int64  `json:"id"`
	CategoryID    int64  `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CategoryIcon  string `json:"category_icon"`
	CategoryColor string `json:"category_color"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes,omitempty"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:            e.ID,
		CategoryID:    e.CategoryID,
		CategoryName:  e.CategoryName,
		CategoryIcon:  e.CategoryIcon,
		CategoryColor: e.CategoryColor,
		Amount:        e.Amount.String(),
		Description:   e.Description,
		Date:          e.Date.String(),
		PaymentMethod: string(e.PaymentMethod),
		Notes:         e.Notes,
	}
}

func toExpenseListJSON(expenses []core.Expense) []expenseJSON {
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e))
	}
	return out
}

type categoryTotalJSON struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	Total        string `json:"total"`
	Count        int64  `json:"count"`
}

func toCategoryTotalsJSON(totals []core.CategoryTotal) []categoryTotalJSON {
	out := make([]categoryTotalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryTotalJSON{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Icon:         t.Icon,
			Color:        t.Color,
			Total:        t.Total.String(),
			Count:        t.Count,
		})
	}
	return out
}

type monthlyTotalJSON struct {
	Month int    `json:"month"`
	Total string `json:"total"`
	Count int64  `json:"count"`
}

func toMonthlyTotalsJSON(totals []core.MonthlyTotal) []monthlyTotalJSON {
	out := make([]monthlyTotalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, monthlyTotalJSON{Month: t.Month, Total: t.Total.String(), Count: t.Count})
	}
	return out
}

type dailyTotalJSON struct {
	Day   int    `json:"day"`
	Total string `json:"total"`
	Count int64  `json:"count"`
}

func toDailyTotalsJSON(totals []core.DailyTotal) []dailyTotalJSON {
	out := make([]dailyTotalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, dailyTotalJSON{Day: t.Day, Total: t.Total.String(), Count: t.Count})
	}
	return out
}

type budgetStatusJSON struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Budget       string `json:"budget"`
	Spent        string `json:"spent"`
	Percent      int    `json:"percent"`
}

func toBudgetStatusesJSON(statuses []core.BudgetStatus) []budgetStatusJSON {
	out := make([]budgetStatusJSON, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, budgetStatusJSON{
			CategoryID:   s.CategoryID,
			CategoryName: s.CategoryName,
			Budget:       s.Budget.String(),
			Spent:        s.Spent.String(),
			Percent:      s.Percent,
		})
	}
	return out
}

type dashboardJSON struct {
	MonthlyTotal   string              `json:"monthly_total"`
	MonthlyAverage string              `json:"monthly_average"`
	MonthlyCount   int64               `json:"monthly_count"`
	TodayTotal     string              `json:"today_total"`
	YearlyTotal    string              `json:"yearly_total"`
	CategoryTotals []categoryTotalJSON `json:"category_totals"`
	RecentExpenses []expenseJSON       `json:"recent_expenses"`
	MonthlyTrend   []monthlyTotalJSON  `json:"monthly_trend"`
	CurrentMonth   string              `json:"current_month"`
}

func toDashboardJSON(d core.Dashboard) dashboardJSON {
	return dashboardJSON{
		MonthlyTotal:   d.MonthlyTotal.String(),
		MonthlyAverage: d.MonthlyAverage.String(),
		MonthlyCount:   d.MonthlyCount,
		TodayTotal:     d.TodayTotal.String(),
		YearlyTotal:    d.YearlyTotal.String(),
		CategoryTotals: toCategoryTotalsJSON(d.CategoryTotals),
		RecentExpenses: toExpenseListJSON(d.RecentExpenses),
		MonthlyTrend:   toMonthlyTotalsJSON(d.MonthlyTrend),
		CurrentMonth:   d.CurrentMonth,
	}
}

type reportJSON struct {
	CategoryTotals []categoryTotalJSON `json:"category_totals"`
	Expenses       []expenseJSON       `json:"expenses"`
	DailyTrend     []dailyTotalJSON    `json:"daily_trend"`
	MonthlyTrend   []monthlyTotalJSON  `json:"monthly_trend"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
}

func toReportJSON(rep core.Report) reportJSON {
	return reportJSON{
		CategoryTotals: toCategoryTotalsJSON(rep.CategoryTotals),
		Expenses:       toExpenseListJSON(rep.Expenses),
		DailyTrend:     toDailyTotalsJSON(rep.DailyTrend),
		MonthlyTrend:   toMonthlyTotalsJSON(rep.MonthlyTrend),
		StartDate:      rep.StartDate.String(),
		EndDate:        rep.EndDate.String(),
	}
}
