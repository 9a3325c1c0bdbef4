package models

// AuthResponse represents the response after successful registration or login
type AuthResponse struct {
	Token     string `json:"token"` // JWT bearer token
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
