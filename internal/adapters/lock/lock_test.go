//go:build unix

package lock_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/muleboot/internal/adapters/lock"
	"go.trai.ch/muleboot/internal/core/domain"
)

func TestLocker_Exclusive(t *testing.T) {
	path := domain.LockPath(t.TempDir())
	locker := lock.NewLocker()

	release, err := locker.Lock(context.Background(), path)
	require.NoError(t, err)

	var acquired atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		second, err := locker.Lock(context.Background(), path)
		if !assert.NoError(t, err) {
			return
		}
		acquired.Store(true)
		assert.NoError(t, second())
	}()

	time.Sleep(200 * time.Millisecond)
	assert.False(t, acquired.Load(), "second lock must wait for the first release")

	require.NoError(t, release())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second lock was never acquired")
	}
	assert.True(t, acquired.Load())
}

func TestLocker_ContextCanceled(t *testing.T) {
	path := domain.LockPath(t.TempDir())
	locker := lock.NewLocker()

	release, err := locker.Lock(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = release() }()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), domain.ErrLockFailed.Error())
}

func TestLocker_ReleaseIsIdempotent(t *testing.T) {
	release, err := lock.NewLocker().Lock(context.Background(), domain.LockPath(t.TempDir()))
	require.NoError(t, err)

	require.NoError(t, release())
	require.NoError(t, release())
}

func TestLocker_MissingDirectory(t *testing.T) {
	_, err := lock.NewLocker().Lock(context.Background(), filepath.Join(t.TempDir(), "missing", domain.LockFileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrLockFailed.Error())
}
