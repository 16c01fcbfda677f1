package http

import (
	"errors"
	"net/http"
	"strings"

	"expensetracker/internal/core"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	var body expenseBody
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.CategoryID == 0 || strings.TrimSpace(body.Amount) == "" ||
		strings.TrimSpace(body.Description) == "" || strings.TrimSpace(body.Date) == "" {
		respondFail(w, http.StatusBadRequest, "Please fill all required fields")
		return
	}

	expense, err := body.toExpense(user.ID)
	if err != nil {
		s.respondError(w, r, err, "Failed to add expense")
		return
	}

	created, err := s.expenses.Add(r.Context(), expense)
	if err != nil {
		s.respondError(w, r, err, "Failed to add expense")
		return
	}

	respondCreated(w, "Expense added successfully!", toExpenseJSON(created))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	id, err := pathID(r)
	if err != nil {
		respondFail(w, http.StatusNotFound, "Expense not found")
		return
	}

	expense, err := s.expenses.Get(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondFail(w, http.StatusNotFound, "Expense not found")
			return
		}
		s.respondError(w, r, err, "Failed to load expense")
		return
	}

	respondOK(w, "", toExpenseJSON(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	filter, err := parseExpenseFilter(r)
	if err != nil {
		s.respondError(w, r, err, "Invalid filter")
		return
	}

	expenses := s.expenses.List(r.Context(), user.ID, filter)
	respondOK(w, "", toExpenseListJSON(expenses))
}

func (s *Server) handleSearchExpenses(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		respondOK(w, "", []expenseJSON{})
		return
	}

	expenses := s.expenses.Search(r.Context(), user.ID, term)
	respondOK(w, "", toExpenseListJSON(expenses))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	id, err := pathID(r)
	if err != nil {
		respondFail(w, http.StatusNotFound, "Expense not found")
		return
	}

	var body expensePatchBody
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch, err := body.toPatch()
	if err != nil {
		s.respondError(w, r, err, "Failed to update expense")
		return
	}

	if err := s.expenses.Update(r.Context(), id, user.ID, patch); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondFail(w, http.StatusNotFound, "Expense not found")
			return
		}
		s.respondError(w, r, err, "Failed to update expense")
		return
	}

	respondOK(w, "Expense updated successfully!", nil)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	id, err := pathID(r)
	if err != nil {
		respondFail(w, http.StatusNotFound, "Expense not found")
		return
	}

	if err := s.expenses.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondFail(w, http.StatusNotFound, "Expense not found")
			return
		}
		s.respondError(w, r, err, "Failed to delete expense")
		return
	}

	respondOK(w, "Expense deleted successfully!", nil)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.expenses.Categories(r.Context())
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryJSON(c))
	}
	respondOK(w, "", out)
}
