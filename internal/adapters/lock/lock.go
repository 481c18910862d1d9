// Package lock serializes concurrent bootstrap runs on the same project root.
package lock

import (
	"context"
	"sync"
	"time"
)

// pollInterval is how often a blocked Lock retries while waiting for ctx.
const pollInterval = 50 * time.Millisecond

// Locker implements ports.Locker with an advisory file lock.
type Locker struct {
	poll time.Duration
}

// NewLocker creates a new Locker.
func NewLocker() *Locker {
	return &Locker{poll: pollInterval}
}

// Lock blocks until the lock at path is held or ctx is done.
func (l *Locker) Lock(ctx context.Context, path string) (func() error, error) {
	return acquire(ctx, path, l.poll)
}

// onceRelease makes a release function idempotent.
func onceRelease(release func() error) func() error {
	var once sync.Once
	var err error
	return func() error {
		once.Do(func() { err = release() })
		return err
	}
}
