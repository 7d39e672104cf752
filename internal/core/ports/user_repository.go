package ports

import (
	"context"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations return copies; callers never alias stored state.
type UserRepository interface {
	// Create assigns the next user id and stores the user. Returns
	// domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies mutate to the current stored user and persists the
	// result atomically. If mutate returns an error nothing is written.
	Update(ctx context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
