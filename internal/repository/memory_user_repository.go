package repository

import (
	"context"
	"fmt"
	"sync"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure memoryUserRepository implements UserRepository
var _ interfaces.UserRepository = (*memoryUserRepository)(nil)

// memoryUserRepository is the in-process credential fallback used when no
// users table is configured.
type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]models.User // keyed by username
	logger *zap.Logger
}

// NewMemoryUserRepository creates the in-memory fallback seeded with a
// bootstrap administrator account (admin/admin). The hash is computed once
// here rather than baked in, so the bcrypt cost stays current.
func NewMemoryUserRepository(logger *zap.Logger) (interfaces.UserRepository, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}
	r := &memoryUserRepository{
		users:  make(map[string]models.User),
		logger: logger.Named("MemoryUserRepo"),
	}
	r.users["admin"] = models.User{
		ID:           models.UserKey("admin"),
		Username:     "admin",
		PasswordHash: string(hash),
		Name:         "Administrator",
	}
	r.logger.Info("In-memory user store initialized with bootstrap admin account")
	return r, nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		r.logger.Warn("Attempted to create duplicate user", zap.String("username", user.Username))
		return models.ErrUserAlreadyExists
	}
	user.ID = models.UserKey(user.Username)
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]models.UserSummary, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, models.UserSummary{Username: u.Username, Name: u.Name})
	}
	return list, nil
}
