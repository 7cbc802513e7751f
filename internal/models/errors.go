package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicateUsername  = errors.New("models: duplicate username")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrTripNotFound       = errors.New("trip not found")
	ErrStoryNotFound      = errors.New("story not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotOwner           = errors.New("not the owner of this record")
	ErrEmptyComment       = errors.New("comment text is empty")
	ErrInvalidDuration    = errors.New("duration must be between 1 and 30 days")
	ErrInvalidBudgetType  = errors.New("unknown budget type")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidStartDate   = errors.New("start date must be in YYYY-MM-DD format")
)

// ErrMissingSearchFields is the fail-fast validation error for flight search:
// it must be returned before any call to the external service is made.
var ErrMissingSearchFields = errors.New("please fill all required fields")
