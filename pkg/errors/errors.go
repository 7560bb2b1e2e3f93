package campus_errors

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrStorage       = errors.New("storage failure")
)

// Poll and reaction errors
var (
	ErrNotAPoll      = errors.New("message is not a poll")
	ErrAlreadyVoted  = errors.New("user has already voted")
	ErrInvalidOption = errors.New("invalid poll option")
)

// NowPtr returns a pointer to current time
func NowPtr() *time.Time {
	now := time.Now()
	return &now
}
