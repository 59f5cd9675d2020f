package repositories

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCardholderNotFound = errors.New("cardholder not found")
	ErrCardNotFound       = errors.New("card not found")
	ErrPointsNotFound     = errors.New("user points not found")
	ErrDuplicateRecord    = errors.New("record already exists")
	ErrInvalidTransition  = errors.New("invalid card status transition")
	ErrDatabaseOperation  = errors.New("database operation failed")
)
