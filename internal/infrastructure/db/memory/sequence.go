// Package memory provides process-local repositories. Each store is guarded
// by a single RWMutex and works on copies, so callers never observe partial
// state.
package memory

import (
	"context"
	"sync/atomic"
)

// Sequence is an in-process id allocator.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next id, starting at 1.
func (s *Sequence) Next(context.Context) (int64, error) {
	return s.last.Add(1), nil
}
