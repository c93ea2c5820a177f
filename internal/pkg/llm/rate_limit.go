package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Pacer 在每次调用文本生成服务之前阻塞，保证调用间隔
type Pacer interface {
	Wait(ctx context.Context) error
}

type NoopPacer struct{}

func (NoopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

// IntervalPacer 进程内的最小调用间隔
type IntervalPacer struct {
	limiter *rate.Limiter
}

func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return NoopPacer{}
	}
	return &IntervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (s *IntervalPacer) Wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

// RedisPacer 多个造数进程共享同一个 API Key 时，借助 SET NX PX 共享调用间隔
type RedisPacer struct {
	rdb      *redis.Client
	key      string
	interval time.Duration
	token    string
}

func NewRedisPacer(rdb *redis.Client, key string, interval time.Duration) *RedisPacer {
	return &RedisPacer{
		rdb:      rdb,
		key:      key,
		interval: interval,
		token:    uuid.NewString(),
	}
}

func (s *RedisPacer) Wait(ctx context.Context) error {
	if s.interval <= 0 {
		return ctx.Err()
	}
	for {
		ok, err := s.rdb.SetNX(ctx, s.key, s.token, s.interval).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		ttl, err := s.rdb.PTTL(ctx, s.key).Result()
		if err != nil {
			return err
		}
		if ttl <= 0 {
			ttl = 10 * time.Millisecond
		}

		timer := time.NewTimer(ttl)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
