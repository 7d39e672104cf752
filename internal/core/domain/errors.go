package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrMalformedToken     = errors.New("malformed token")
	ErrExpiredToken       = errors.New("token expired")
	ErrUnknownSubject     = errors.New("unknown subject")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
)

var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrAdvertisementNotFound = fmt.Errorf("advertisement %w", ErrNotFound)
	ErrUserExists            = fmt.Errorf("%w: username already taken", ErrInvalidInput)
)

// ErrorKind is the stable, machine-readable classification of an error.
type ErrorKind string

const (
	KindMissingCredentials ErrorKind = "missing_credentials"
	KindMalformedToken     ErrorKind = "malformed_token"
	KindExpiredToken       ErrorKind = "expired_token"
	KindUnknownSubject     ErrorKind = "unknown_subject"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindInternal           ErrorKind = "internal"
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrMissingCredentials, KindMissingCredentials},
	{ErrMalformedToken, KindMalformedToken},
	{ErrExpiredToken, KindExpiredToken},
	{ErrUnknownSubject, KindUnknownSubject},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrForbidden, KindForbidden},
	{ErrNotFound, KindNotFound},
	{ErrInvalidInput, KindInvalidInput},
}

// KindOf classifies err. Errors outside the domain set are KindInternal.
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// InvalidInputf builds an ErrInvalidInput carrying a human-readable detail.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
