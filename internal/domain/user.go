package domain

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is a login outcome, not a transport failure.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword is a login outcome, not a transport failure.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// User represents a stored credential row. PasswordHash holds a bcrypt
// digest; plaintext never reaches the repository.
type User struct {
	Username     string
	PasswordHash string
}

// UserRepository defines data access for credentials. FindByUsername returns
// every matching row: uniqueness is a storage-side concern, and login takes
// the first match.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) ([]*User, error)
}
