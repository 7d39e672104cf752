package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestSequence_Key(t *testing.T) {
	s := NewSequence(nil, "advertisements")
	if got := s.key(); got != "marketplace:seq:advertisements" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestSequence_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSequence(client, "users").Next(ctx); err == nil {
		t.Fatalf("expected error from unreachable server")
	}
}
