package http

import (
	"net/http"
	"strings"
	"time"

	"expensetracker/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	respondOK(w, "", toDashboardJSON(s.reports.Dashboard(r.Context(), user.ID)))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	var start, end core.Date
	if v := strings.TrimSpace(r.URL.Query().Get("start_date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			s.respondError(w, r, err, "Invalid date")
			return
		}
		start = d
	}
	if v := strings.TrimSpace(r.URL.Query().Get("end_date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			s.respondError(w, r, err, "Invalid date")
			return
		}
		end = d
	}

	respondOK(w, "", toReportJSON(s.reports.Report(r.Context(), user.ID, start, end)))
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	respondOK(w, "", toBudgetStatusesJSON(s.reports.BudgetStatuses(r.Context(), user.ID)))
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	var body struct {
		CategoryID int64  `json:"category_id"`
		Amount     string `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(body.Amount)
	if err != nil {
		respondFail(w, http.StatusBadRequest, "Amount must be greater than 0")
		return
	}

	month := core.DateOf(time.Now()).MonthStart()
	budget := core.Budget{
		UserID:     user.ID,
		CategoryID: body.CategoryID,
		Amount:     core.Money{Cents: cents},
		Month:      month,
	}
	if err := s.expenses.SetCategoryBudget(r.Context(), budget); err != nil {
		s.respondError(w, r, err, "Failed to save budget")
		return
	}

	respondOK(w, "Budget saved successfully", nil)
}
