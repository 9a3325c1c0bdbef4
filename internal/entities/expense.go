package entities

import "time"

// Expense represents an expense entity in the database
type Expense struct {
	ID          string    `json:"id"` // UUID
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	ExpenseDate time.Time `json:"expense_date"` // Date only, stored as DATE
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryTotal is an aggregate row for the per-category spending summary
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
