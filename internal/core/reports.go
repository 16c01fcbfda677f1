package core

// CategoryTotal is one row of a per-category breakdown. Categories with no
// matching expenses are still present with a zero total.
type CategoryTotal struct {
	CategoryID   int64
	CategoryName string
	Icon         string
	Color        string
	Total        Money
	Count        int64
}

// MonthlyTotal is the aggregate for one calendar month (1..12).
type MonthlyTotal struct {
	Month int
	Total Money
	Count int64
}

// DailyTotal is the aggregate for one day of a month.
type DailyTotal struct {
	Day   int
	Total Money
	Count int64
}

// Stats is a single aggregate row over a filtered expense set.
// All fields are zero when no rows match.
type Stats struct {
	Total   Money
	Average Money
	Max     Money
	Min     Money
	Count   int64
}

// BudgetStatus compares a category's current-month spend against its budget.
type BudgetStatus struct {
	CategoryID   int64
	CategoryName string
	Budget       Money
	Spent        Money
	Percent      int
}

// Dashboard is the summary the dashboard screen renders.
type Dashboard struct {
	MonthlyTotal   Money
	MonthlyAverage Money
	MonthlyCount   int64
	TodayTotal     Money
	YearlyTotal    Money
	CategoryTotals []CategoryTotal
	RecentExpenses []Expense
	MonthlyTrend   []MonthlyTotal
	CurrentMonth   string // e.g. "March 2026"
}

// Report bundles the data behind the reports screen for a date range.
type Report struct {
	CategoryTotals []CategoryTotal
	Expenses       []Expense
	DailyTrend     []DailyTotal
	MonthlyTrend   []MonthlyTotal
	StartDate      Date
	EndDate        Date
}
