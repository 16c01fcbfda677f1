package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the expense event feed.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is a lightweight notification that a user's spending changed.
// Consumers re-read whatever they need from the database; the event only
// carries enough to know which (user, category, month) to look at.
type ExpenseEvent struct {
	Kind        string    `json:"kind"`
	ExpenseID   int64     `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	CategoryID  int64     `json:"category_id"`
	ExpenseDate string    `json:"expense_date"` // YYYY-MM-DD
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseEvent creates an event for the given kind and expense coordinates.
func NewExpenseEvent(kind string, expenseID, userID, categoryID int64, expenseDate string) *ExpenseEvent {
	return &ExpenseEvent{
		Kind:        kind,
		ExpenseID:   expenseID,
		UserID:      userID,
		CategoryID:  categoryID,
		ExpenseDate: expenseDate,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON creates an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
