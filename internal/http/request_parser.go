package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var errBadBody = errors.New("malformed request body")

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

type expenseBody struct {
	CategoryID    int64  `json:"category_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

func (b expenseBody) toExpense(userID int64) (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(b.Amount)
	if err != nil {
		return core.Expense{}, core.ErrInvalidAmount
	}
	date, err := core.ParseDate(b.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		UserID:        userID,
		CategoryID:    b.CategoryID,
		Amount:        core.Money{Cents: cents},
		Description:   sanitizeInput(b.Description),
		Date:          date,
		PaymentMethod: core.PaymentMethod(strings.TrimSpace(b.PaymentMethod)),
		Notes:         sanitizeInput(b.Notes),
	}, nil
}

// expensePatchBody distinguishes absent fields from present ones, so a
// partial update only touches what the client sent.
type expensePatchBody struct {
	CategoryID    *int64  `json:"category_id"`
	Amount        *string `json:"amount"`
	Description   *string `json:"description"`
	Date          *string `json:"date"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

func (b expensePatchBody) toPatch() (core.ExpensePatch, error) {
	var p core.ExpensePatch
	p.CategoryID = b.CategoryID
	if b.Amount != nil {
		cents, err := core.ParseDecimalToCents(*b.Amount)
		if err != nil {
			return core.ExpensePatch{}, core.ErrInvalidAmount
		}
		p.Amount = &core.Money{Cents: cents}
	}
	if b.Description != nil {
		desc := sanitizeInput(*b.Description)
		p.Description = &desc
	}
	if b.Date != nil {
		date, err := core.ParseDate(*b.Date)
		if err != nil {
			return core.ExpensePatch{}, err
		}
		p.Date = &date
	}
	if b.PaymentMethod != nil {
		pm := core.PaymentMethod(strings.TrimSpace(*b.PaymentMethod))
		p.PaymentMethod = &pm
	}
	if b.Notes != nil {
		notes := sanitizeInput(*b.Notes)
		p.Notes = &notes
	}
	return p, nil
}

// parseExpenseFilter reads optional start_date, end_date, category_id, limit
// and offset query parameters.
func parseExpenseFilter(r *http.Request) (storage.ExpenseFilter, error) {
	var f storage.ExpenseFilter
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("start_date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.Start = &d
	}
	if v := strings.TrimSpace(q.Get("end_date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.End = &d
	}
	if v := strings.TrimSpace(q.Get("category_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, core.ErrInvalidCategory
		}
		f.CategoryID = &id
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := strings.TrimSpace(q.Get("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Offset = n
		}
	}
	return f, nil
}

// pathID parses the {id} path segment of a route.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.ErrNotFound
	}
	return id, nil
}
