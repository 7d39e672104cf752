package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

func TestBcryptHasher_SaltedAndVerifiable(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct digests for the same password")
	}
	if first == "hunter22" || second == "hunter22" {
		t.Fatalf("digest must not be the plaintext")
	}
	for _, digest := range []string{first, second} {
		if !h.Verify("hunter22", digest) {
			t.Fatalf("expected password to verify against %s", digest)
		}
		if h.Verify("hunter23", digest) {
			t.Fatalf("wrong password verified against %s", digest)
		}
		if h.Verify("", digest) {
			t.Fatalf("empty password verified against %s", digest)
		}
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if h.Verify("pass", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must never verify")
	}
	if h.Verify("pass", "") {
		t.Fatalf("empty hash must never verify")
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
	if h := NewBcryptHasher(bcrypt.MaxCost + 1); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
	if h := NewBcryptHasher(12); h.cost != 12 {
		t.Fatalf("expected cost 12, got %d", h.cost)
	}
}
