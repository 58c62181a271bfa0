package interfaces

import (
	"context"

	"shop-server/internal/models"
)

// UserRepository defines persistence operations for user credentials.
type UserRepository interface {
	// GetByUsername returns the user, or models.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Create inserts a new user. Returns models.ErrUserAlreadyExists when the
	// username is taken; the persistent backend enforces this atomically.
	Create(ctx context.Context, user *models.User) error
	// ListSummaries returns username/name pairs. Password hashes never leave
	// the repository through this method.
	ListSummaries(ctx context.Context) ([]models.UserSummary, error)
}
