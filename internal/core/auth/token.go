package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

const (
	// TokenTTL is the fixed lifetime of a session token.
	TokenTTL = 48 * time.Hour

	// TimeResolution is the precision of the iat and exp claims.
	TimeResolution = time.Microsecond
)

func init() {
	// NumericDate is decoded through float64, which is off by a few hundred
	// nanoseconds at current epochs. Decoding at full precision lets
	// claimTime round back to the encoded microsecond.
	jwt.TimePrecision = time.Nanosecond
}

// SessionClaims is the decoded payload of a session token.
type SessionClaims struct {
	SubjectUserID int64
	Role          domain.Role
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager issues and validates HMAC-signed JWT session tokens. The
// secret and algorithm are fixed for the lifetime of the process.
type TokenManager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	logger zerolog.Logger
}

// NewTokenManager builds a TokenManager for one of HS256, HS384 or HS512.
func NewTokenManager(secret, algorithm string, logger zerolog.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token manager: empty signing secret")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("token manager: unsupported signing algorithm %q", algorithm)
	}
	return &TokenManager{secret: []byte(secret), method: method, logger: logger}, nil
}

// Issue mints a token for userID valid from now until now+TokenTTL. now is
// truncated to TimeResolution.
func (m *TokenManager) Issue(userID int64, role domain.Role, now time.Time) (string, error) {
	iat := now.UTC().Truncate(TimeResolution)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(TokenTTL)),
		},
		Role: string(role),
	}

	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature and expiry of raw as of now. A token is
// expired once now reaches its exp claim. Every other failure is reported
// as domain.ErrMalformedToken; the cause is only logged.
func (m *TokenManager) Validate(raw string, now time.Time) (SessionClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return SessionClaims{}, m.reject(err)
	}

	if claims.ExpiresAt == nil {
		return SessionClaims{}, m.reject(errors.New("exp claim is required"))
	}
	expiresAt := claimTime(claims.ExpiresAt)
	if !now.Before(expiresAt) {
		return SessionClaims{}, domain.ErrExpiredToken
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claimTime(claims.IssuedAt)
		if now.Before(issuedAt) {
			return SessionClaims{}, m.reject(fmt.Errorf("issued in the future at %s", issuedAt))
		}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return SessionClaims{}, m.reject(fmt.Errorf("subject %q is not a user id", claims.Subject))
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return SessionClaims{}, m.reject(fmt.Errorf("unknown role %q", claims.Role))
	}

	return SessionClaims{
		SubjectUserID: userID,
		Role:          role,
		IssuedAt:      issuedAt,
		ExpiresAt:     expiresAt,
	}, nil
}

func (m *TokenManager) reject(cause error) error {
	m.logger.Debug().Err(cause).Msg("session token rejected")
	return domain.ErrMalformedToken
}

func claimTime(d *jwt.NumericDate) time.Time {
	return d.Time.Round(TimeResolution).UTC()
}
