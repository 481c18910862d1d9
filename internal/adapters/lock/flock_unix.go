//go:build unix

package lock

import (
	"context"
	"errors"
	"os"
	"time"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

func acquire(ctx context.Context, path string, poll time.Duration) (func() error, error) {
	//nolint:gosec // path is derived from the resolved project root
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, domain.PrivateFilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB) //nolint:gosec // file descriptors fit in int
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			_ = f.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrLockFailed.Error()), "path", path)
		case <-ticker.C:
		}
	}

	return onceRelease(func() error {
		unlockErr := unix.Flock(int(f.Fd()), unix.LOCK_UN) //nolint:gosec // file descriptors fit in int
		closeErr := f.Close()
		if err := errors.Join(unlockErr, closeErr); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to release bootstrap lock"), "path", path)
		}
		return nil
	}), nil
}
