package domain

import "time"

// User is identified by email for login purposes.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	BirthDate    *time.Time
	LastLogin    *time.Time
	CreatedAt    time.Time
}
