package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "marketplace:seq:"

// Sequence allocates ids with INCR, which Redis executes atomically.
// Key format: marketplace:seq:<name>
type Sequence struct {
	client *redis.Client
	name   string
}

// NewSequence creates a Sequence named name wrapping the given Redis client.
func NewSequence(client *redis.Client, name string) *Sequence {
	return &Sequence{client: client, name: name}
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	id, err := s.client.Incr(ctx, s.key()).Result()
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", s.name, err)
	}
	return id, nil
}

func (s *Sequence) key() string {
	return keyPrefix + s.name
}
