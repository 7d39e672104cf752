package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{ErrMissingCredentials, KindMissingCredentials},
		{fmt.Errorf("validate: %w", ErrMalformedToken), KindMalformedToken},
		{ErrExpiredToken, KindExpiredToken},
		{ErrUnknownSubject, KindUnknownSubject},
		{ErrInvalidCredentials, KindInvalidCredentials},
		{ErrForbidden, KindForbidden},
		{ErrUserNotFound, KindNotFound},
		{ErrAdvertisementNotFound, KindNotFound},
		{ErrUserExists, KindInvalidInput},
		{InvalidInputf("price must be >= 0"), KindInvalidInput},
		{errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestInvalidInputf_Message(t *testing.T) {
	err := InvalidInputf("role %q is not allowed", "root")
	if err.Error() != `invalid input: role "root" is not allowed` {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
