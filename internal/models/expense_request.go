package models

import (
	"fmt"
	"time"
)

// MinAmount is the smallest accepted expense amount.
const MinAmount = 0.01

// ExpenseRequest represents the request body for creating or updating an expense.
// Updates are a full field replacement, so the same shape serves both.
type ExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	ExpenseDate string  `json:"expenseDate" binding:"required"` // YYYY-MM-DD
}

// Validate checks the business rules the binding tags cannot express and
// returns field-level error messages. An empty map means the request is valid.
func (r *ExpenseRequest) Validate(now time.Time) map[string]string {
	fields := make(map[string]string)

	if r.Amount < MinAmount {
		fields["amount"] = fmt.Sprintf("amount must be at least %.2f", MinAmount)
	}

	if !ExpenseCategory(r.Category).Valid() {
		fields["category"] = "category must be one of: " + CategoryNames()
	}

	date, err := time.Parse(time.DateOnly, r.ExpenseDate)
	if err != nil {
		fields["expenseDate"] = "expenseDate must be a valid date in YYYY-MM-DD format"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.After(today) {
			fields["expenseDate"] = "expenseDate cannot be in the future"
		}
	}

	return fields
}

// Date returns the parsed expense date. It assumes Validate has already
// accepted the request; an unparseable date yields the zero time.
func (r *ExpenseRequest) Date() time.Time {
	date, _ := time.Parse(time.DateOnly, r.ExpenseDate)
	return date
}
