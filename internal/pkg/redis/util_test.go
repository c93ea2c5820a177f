package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l := NewLocker(rdb)
	l.retryDelay = 5 * time.Millisecond
	return l, mr
}

func TestLocker_TryLockAndUnLock(t *testing.T) {
	l, mr := newTestLocker(t)
	ctx := context.Background()

	ok, err := l.TryLock(ctx, "seed:lock", "owner-a", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.TryLock(ctx, "seed:lock", "owner-b", time.Minute, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.UnLock(ctx, "seed:lock", "owner-b"))
	v, err := mr.Get("seed:lock")
	require.NoError(t, err)
	assert.Equal(t, "owner-a", v)

	require.NoError(t, l.UnLock(ctx, "seed:lock", "owner-a"))
	assert.False(t, mr.Exists("seed:lock"))
}

func TestLocker_LockExpires(t *testing.T) {
	l, mr := newTestLocker(t)
	ctx := context.Background()

	ok, err := l.TryLock(ctx, "seed:lock", "owner-a", time.Second, 1)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = l.TryLock(ctx, "seed:lock", "owner-b", time.Second, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocker_InfiniteRetryHonorsContext(t *testing.T) {
	l, _ := newTestLocker(t)
	_, err := l.TryLock(context.Background(), "seed:lock", "owner-a", time.Minute, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	ok, err := l.TryLock(ctx, "seed:lock", "owner-b", time.Minute, -1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
