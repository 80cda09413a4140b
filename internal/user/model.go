package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrEmailRequired    = errors.New("email is required")
)

// User represents a registered user who can own items and book other users' items.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
