package service

import "errors"

var (
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotExpenseOwner is returned when an expense exists but belongs to
	// a different user.
	ErrNotExpenseOwner = errors.New("not authorized to access this expense")

	// ErrInvalidDateRange is returned when only one of startDate/endDate is
	// supplied, or startDate is after endDate.
	ErrInvalidDateRange = errors.New("start date and end date are required together and start date must not be after end date")
)
