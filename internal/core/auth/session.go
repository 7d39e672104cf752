package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// TokenValidator decodes session tokens.
type TokenValidator interface {
	Validate(raw string, now time.Time) (SessionClaims, error)
}

// SessionResolver authenticates the Authorization header of a request.
type SessionResolver struct {
	tokens TokenValidator
	users  ports.UserRepository
	now    func() time.Time
}

// NewSessionResolver wires a resolver. A nil now uses time.Now.
func NewSessionResolver(tokens TokenValidator, users ports.UserRepository, now func() time.Time) *SessionResolver {
	if now == nil {
		now = time.Now
	}
	return &SessionResolver{tokens: tokens, users: users, now: now}
}

// Resolve validates the bearer token in header and loads its subject. The
// returned principal carries the role currently stored for the user, so a
// demotion takes effect on the next request even for outstanding tokens.
func (r *SessionResolver) Resolve(ctx context.Context, header string) (domain.Principal, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return domain.Principal{}, domain.ErrMissingCredentials
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" {
		return domain.Principal{}, domain.ErrMissingCredentials
	}

	claims, err := r.tokens.Validate(raw, r.now())
	if err != nil {
		return domain.Principal{}, err
	}

	user, err := r.users.FindByID(ctx, claims.SubjectUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, domain.ErrUnknownSubject
		}
		return domain.Principal{}, fmt.Errorf("resolve session: %w", err)
	}

	return domain.Principal{ID: user.ID, Role: user.Role}, nil
}
