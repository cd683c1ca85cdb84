// Package layers provides the per-layer locks that serialize rotations of the
// same physical layer.
package layers

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Set holds one exclusive lock per (axis, physical layer).
type Set struct {
	locks [][]*semaphore.Weighted
}

// New creates a lock set covering physical layers 0..size-1 of each axis.
func New(axes, size int) *Set {
	s := &Set{locks: make([][]*semaphore.Weighted, axes)}
	for a := range s.locks {
		s.locks[a] = make([]*semaphore.Weighted, size)
		for l := range s.locks[a] {
			s.locks[a][l] = semaphore.NewWeighted(1)
		}
	}
	return s
}

// Lock acquires the lock of one physical layer, blocking until it is free or
// ctx is done. On error the lock is not held.
func (s *Set) Lock(ctx context.Context, axis, layer int) error {
	return s.locks[axis][layer].Acquire(ctx, 1)
}

// TryLock acquires the lock without blocking and reports success.
func (s *Set) TryLock(axis, layer int) bool {
	return s.locks[axis][layer].TryAcquire(1)
}

// Unlock releases a lock taken with Lock or TryLock.
func (s *Set) Unlock(axis, layer int) {
	s.locks[axis][layer].Release(1)
}
