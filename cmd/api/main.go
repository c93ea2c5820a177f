package main

import (
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/pkg/cron"
	"FeedSeeder/internal/pkg/llm"
	"FeedSeeder/internal/pkg/logger"
	"FeedSeeder/internal/pkg/mongo"
	"FeedSeeder/internal/pkg/redis"
	"FeedSeeder/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	if err := logger.InitLogger(cfg.Logger); err != nil {
		log.Error("Fatal error: failed to init logger", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mongo 连接
	mongoClient, db, err := mongo.InitMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Error("Fatal error: failed to create mongo connection", "err", err)
		panic(err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	// Redis 连接，可选
	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.InitRedis(ctx, cfg.Redis)
		if err != nil {
			log.Error("Fatal error: failed to create redis connection", "err", err)
			panic(err)
		}
		defer func() {
			_ = rdb.Close()
		}()
	}

	// llm 模型初始化，只有配置了定时生成时才需要
	var gen llm.TextGenerator
	if cfg.Seed.Schedule != "" {
		gen, err = llm.InitLLM(ctx, cfg.LLM)
		if err != nil {
			log.Error("Fatal error: failed to initialize llm models", "err", err)
			panic(err)
		}
	}

	// 依赖注入
	app := wire.BuildApplication(db, rdb, gen, cfg)

	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = cron.InitCron(app.CronMgr); err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: app.Router,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}
