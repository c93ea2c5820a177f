package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Locker 基于 SET NX 的分布式锁
type Locker struct {
	rdb        *redis.Client
	retryDelay time.Duration
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb, retryDelay: 200 * time.Millisecond}
}

// TryLock 尝试加锁，retryTimes 为 -1 时一直重试直到 ctx 结束
func (s *Locker) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := s.rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	return false, nil
}

// UnLock 释放锁，只删除自己持有的锁
func (s *Locker) UnLock(ctx context.Context, key string, value interface{}) error {
	return s.rdb.Eval(ctx, unlockScript, []string{key}, value).Err()
}
