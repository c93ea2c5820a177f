package redis

import (
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const slowCommandThreshold = 100 * time.Millisecond

// InitRedis 初始化 Redis 客户端连接
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger(slowCommandThreshold))

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis initialized successfully", "addr", cfg.Addr)
	return rdb, nil
}
