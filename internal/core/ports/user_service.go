package ports

import (
	"context"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
// An empty Role defaults to domain.RoleUser.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// UpdateUserInput lists the user fields a PATCH may change. Password is the
// new plaintext; the service hashes it.
type UpdateUserInput struct {
	Username domain.Optional[string]
	Password domain.Optional[string]
	Role     domain.Optional[string]
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

// UserService defines use-case operations for accounts.
type UserService interface {
	// Register creates an account. caller is nil for anonymous requests.
	Register(ctx context.Context, caller *domain.Principal, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, caller domain.Principal) ([]*domain.User, error)
	Update(ctx context.Context, caller domain.Principal, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Principal, id int64) error
}
