package models

// ExpenseResponse represents a single expense in API responses.
// Fields are a direct projection of the expense entity.
type ExpenseResponse struct {
	ID          string  `json:"id"` // UUID
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	ExpenseDate string  `json:"expenseDate"` // YYYY-MM-DD
}

// CategorySummaryItem is one category's share of the spending summary.
type CategorySummaryItem struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// SummaryResponse represents the per-category spending summary for a user.
type SummaryResponse struct {
	Total      float64               `json:"total"`
	Categories []CategorySummaryItem `json:"categories"`
}
