package repository

import (
	"context" // Context for cancellation propagation
	"errors"  // Sentinel errors

	"amine_web/internal/domain" // Domain models
)

// Storage errors callers can test with errors.Is
var (
	// ErrNotFound means the requested record does not exist; absence is not a fault
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEmail means an insert violated the unique email index
	ErrDuplicateEmail = errors.New("repository: email already registered")
	// ErrDuplicateUsername means an insert violated the unique username index
	ErrDuplicateUsername = errors.New("repository: username already taken")
)

// UserRepository defines storage and retrieval operations for users
type UserRepository interface {
	// FindByEmail looks up a user by email; ErrNotFound when absent
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsername looks up a user by username; ErrNotFound when absent
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID looks up a user by primary key; ErrNotFound when absent
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	// Create inserts a new user; duplicate-key violations are translated
	// into ErrDuplicateEmail or ErrDuplicateUsername
	Create(ctx context.Context, user *domain.User) error
	// Delete removes a user and all their posts and interactions in one transaction
	Delete(ctx context.Context, id uint) error
	// List returns all users
	List(ctx context.Context) ([]domain.User, error)
}
