package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrMissionNotFound = errors.New("mission not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
)

var (
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrDuplicateBooking = errors.New("flight already booked by this user")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrAlreadyExists    = errors.New("record with this unique value already exists")
)

var (
	ErrInvalidCredentials = errors.New("login failed")
	ErrUnauthenticated    = errors.New("authentication credentials were not provided or are invalid")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

var ErrValidation = errors.New("validation error")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrFlightNotFound) ||
		errors.Is(err, ErrMissionNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrNoSeatsAvailable) ||
		errors.Is(err, ErrDuplicateBooking) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAlreadyExists)
}

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Validation(field, message string) error {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}
