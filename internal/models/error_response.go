package models

import "time"

// ErrorResponse is the structured error body returned on every error path.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"` // HTTP status text
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
