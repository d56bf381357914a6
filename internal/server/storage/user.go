package storage

import (
	"context"
	"time"

	"github.com/iudanet/vidtube/internal/models"
)

// UserStorage defines interface for user data persistence.
// Username and email are expected to be already case-folded by the caller.
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username or email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByLogin retrieves user by username or email (either may be empty, not both)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByLogin(ctx context.Context, username, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile updates full name and email
	// Returns ErrUserNotFound if user doesn't exist, ErrUserAlreadyExists if email is taken
	UpdateProfile(ctx context.Context, userID, fullName, email string, updatedAt time.Time) error

	// UpdatePasswordHash replaces the stored password hash
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error
}
