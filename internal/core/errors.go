package core

import "errors"

var (
	// ErrNotFound covers both a missing record and one owned by another user.
	ErrNotFound = errors.New("not found")

	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
)
