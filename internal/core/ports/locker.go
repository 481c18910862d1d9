package ports

import "context"

// Locker provides mutual exclusion between concurrent bootstrap invocations.
//
//go:generate mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// Lock blocks until the lock at path is held or ctx is done.
	// The returned release function is safe to call more than once.
	Lock(ctx context.Context, path string) (release func() error, err error)
}
