package ports

import (
	"context"
	"time"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// PasswordHasher stores and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(userID int64, role domain.Role, now time.Time) (string, error)
}

// SessionResolver turns an Authorization header into a principal.
type SessionResolver interface {
	Resolve(ctx context.Context, authorizationHeader string) (domain.Principal, error)
}
