package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 6

	tokenTypeBearer = "bearer"
)

// UserServiceOptions tunes registration policy.
type UserServiceOptions struct {
	// RestrictAdminSignup limits registering admin accounts to admin
	// callers. When false anyone may pick role=admin.
	RestrictAdminSignup bool
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

// UserService implements registration, login and account management.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	opts   UserServiceOptions
	logger zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	opts UserServiceOptions,
	logger zerolog.Logger,
) *UserService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &UserService{repo: repo, hasher: hasher, tokens: tokens, opts: opts, logger: logger}
}

func (s *UserService) now() time.Time {
	return s.opts.Now().UTC()
}

// Register creates an account with the requested role. With
// RestrictAdminSignup set, only an admin caller may register an admin.
func (s *UserService) Register(ctx context.Context, caller *domain.Principal, in ports.RegisterInput) (*domain.User, error) {
	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.InvalidInputf("role must be one of: user, admin")
	}
	if role == domain.RoleAdmin && s.opts.RestrictAdminSignup && (caller == nil || !domain.CanChangeRole(*caller)) {
		return nil, fmt.Errorf("register admin: %w", domain.ErrForbidden)
	}
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug().Str("username", username).Msg("login for unknown user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug().Int64("user_id", user.ID).Msg("login with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role, s.now())
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{AccessToken: token, TokenType: tokenTypeBearer, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns every account. Admin only.
func (s *UserService) List(ctx context.Context, caller domain.Principal) ([]*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("list users: %w", domain.ErrForbidden)
	}
	return s.repo.List(ctx)
}

// Update applies a partial update. Checks run in order: target exists,
// caller may act on it, role change allowed, role valid, remaining fields
// valid. Nothing is written unless all of them pass.
func (s *UserService) Update(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnResource(caller, target.ID) {
		return nil, fmt.Errorf("update user %d: %w", id, domain.ErrForbidden)
	}

	role, roleSet := in.Role.Get()
	if roleSet {
		if !domain.CanChangeRole(caller) {
			return nil, fmt.Errorf("change role: %w", domain.ErrForbidden)
		}
		if !domain.IsValidRole(role) {
			return nil, domain.InvalidInputf("role must be one of: user, admin")
		}
	}

	username, usernameSet := in.Username.Get()
	if usernameSet {
		if err := validateUsername(username); err != nil {
			return nil, err
		}
	}

	var hash string
	if password, ok := in.Password.Get(); ok {
		if err := validatePassword(password); err != nil {
			return nil, err
		}
		if hash, err = s.hasher.Hash(password); err != nil {
			return nil, err
		}
	}

	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(u *domain.User) error {
		if usernameSet {
			u.Username = username
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if roleSet {
			u.Role = domain.Role(role)
		}
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", caller.ID).Msg("user updated")
	return updated, nil
}

// Delete removes an account. Allowed for the account itself and admins.
func (s *UserService) Delete(ctx context.Context, caller domain.Principal, id int64) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanActOnResource(caller, target.ID) {
		return fmt.Errorf("delete user %d: %w", id, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", caller.ID).Msg("user deleted")
	return nil
}

// EnsureAdmin creates an admin account named username unless one with that
// name already exists. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	admin := domain.Principal{Role: domain.RoleAdmin}
	_, err := s.Register(ctx, &admin, ports.RegisterInput{Username: username, Password: password, Role: string(domain.RoleAdmin)})
	if errors.Is(err, domain.ErrUserExists) {
		return false, nil
	}
	return err == nil, err
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if strings.TrimSpace(username) != username || n < minUsernameLen || n > maxUsernameLen {
		return domain.InvalidInputf("username must be %d to %d characters without surrounding spaces", minUsernameLen, maxUsernameLen)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return domain.InvalidInputf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}
