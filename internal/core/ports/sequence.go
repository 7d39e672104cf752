package ports

import "context"

// Sequence hands out monotonically increasing identifiers. Concurrent calls
// never return the same value.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}
