package main

import (
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/pkg/llm"
	"FeedSeeder/internal/pkg/logger"
	"FeedSeeder/internal/pkg/mongo"
	"FeedSeeder/internal/pkg/redis"
	"FeedSeeder/internal/wire"
	"context"
	log "log/slog"

	"github.com/pkg/errors"
	redisv9 "github.com/redis/go-redis/v9"
)

// bootstrap 加载配置并连接外部依赖，返回的 cleanup 负责断开连接
func bootstrap(ctx context.Context, withLLM bool) (*wire.ApplicationContainer, func(), error) {
	if err := config.LoadConfig(); err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	cfg := config.Cfg

	if err := logger.InitLogger(cfg.Logger); err != nil {
		return nil, nil, errors.Wrap(err, "init logger")
	}

	client, db, err := mongo.InitMongo(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect mongo")
	}
	cleanups := []func(){func() { _ = client.Disconnect(context.Background()) }}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		if rdb, err = redis.InitRedis(ctx, cfg.Redis); err != nil {
			cleanup()
			return nil, nil, errors.Wrap(err, "connect redis")
		}
		cleanups = append(cleanups, func() { _ = rdb.Close() })
	}

	var gen llm.TextGenerator
	if withLLM {
		if gen, err = llm.InitLLM(ctx, cfg.LLM); err != nil {
			cleanup()
			return nil, nil, errors.Wrap(err, "init llm")
		}
	}

	log.Debug("seeder bootstrapped", "redis", cfg.Redis.Enabled, "llm", withLLM)
	return wire.BuildApplication(db, rdb, gen, cfg), cleanup, nil
}
