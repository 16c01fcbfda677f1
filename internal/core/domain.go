package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Cash       PaymentMethod = "Cash"
	CreditCard PaymentMethod = "Credit Card"
	DebitCard  PaymentMethod = "Debit Card"
	UPI        PaymentMethod = "UPI"
	NetBanking PaymentMethod = "Net Banking"
	Other      PaymentMethod = "Other"
)

type (
	PaymentMethod string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Username     string
		Email        string
		PasswordHash string
		FullName     string
		IsActive     bool
		CreatedAt    time.Time
	}

	Category struct {
		ID          int64
		Name        string
		Icon        string
		Color       string
		Description string
		IsDefault   bool
	}

	Expense struct {
		ID            int64
		UserID        int64
		CategoryID    int64
		Amount        Money
		Description   string
		Date          Date
		PaymentMethod PaymentMethod
		Notes         string
		CreatedAt     time.Time

		// Denormalized category fields, populated on reads that join categories.
		CategoryName  string
		CategoryIcon  string
		CategoryColor string
	}

	Budget struct {
		ID         int64
		UserID     int64
		CategoryID int64
		Amount     Money
		Month      Date // first of month
	}

	// ExpensePatch carries a partial update: nil fields are left untouched.
	ExpensePatch struct {
		CategoryID    *int64
		Amount        *Money
		Description   *string
		Date          *Date
		PaymentMethod *PaymentMethod
		Notes         *string
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyDescription     = errors.New("empty description")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingFields        = errors.New("missing required fields")
	ErrEmptyPatch           = errors.New("no fields to update")

	ErrNotFound = errors.New("not found")

	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordNoLetter   = errors.New("password needs a letter")
	ErrPasswordNoDigit    = errors.New("password needs a digit")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username taken")
	ErrEmailTaken         = errors.New("email registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password incorrect")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// PaymentMethods lists the accepted payment methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, CreditCard, DebitCard, UPI, NetBanking, Other}
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case Cash, CreditCard, DebitCard, UPI, NetBanking, Other:
		return true
	}
	return false
}

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1..12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthStart returns the first day of the date's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// MonthEnd returns the last day of the date's month.
func (d Date) MonthEnd() Date {
	first := NewDate(d.Year(), d.Month(), 1)
	return Date{Time: first.AddDate(0, 1, -1)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if e.UserID == 0 {
		return ErrMissingFields
	}
	if e.CategoryID == 0 {
		return ErrInvalidCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if !e.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// Empty reports whether the patch carries no fields at all.
func (p ExpensePatch) Empty() bool {
	return p.CategoryID == nil && p.Amount == nil && p.Description == nil &&
		p.Date == nil && p.PaymentMethod == nil && p.Notes == nil
}

func (p ExpensePatch) Validate() error {
	if p.Empty() {
		return ErrEmptyPatch
	}
	if p.Amount != nil {
		if err := p.Amount.Validate(); err != nil {
			return err
		}
	}
	if p.Description != nil && len(strings.TrimSpace(*p.Description)) == 0 {
		return ErrEmptyDescription
	}
	if p.Date != nil {
		if err := p.Date.Validate(); err != nil {
			return err
		}
	}
	if p.PaymentMethod != nil && !p.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

func (b Budget) Validate() error {
	if b.UserID == 0 || b.CategoryID == 0 {
		return ErrMissingFields
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if err := b.Month.Validate(); err != nil {
		return err
	}
	return nil
}
