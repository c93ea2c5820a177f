package wire

import (
	"FeedSeeder/internal/api"
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/api/handler"
	"FeedSeeder/internal/job"
	"FeedSeeder/internal/pkg/consts"
	"FeedSeeder/internal/pkg/cron"
	"FeedSeeder/internal/pkg/llm"
	"FeedSeeder/internal/pkg/mongo"
	"FeedSeeder/internal/pkg/redis"
	"FeedSeeder/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	SeedService service.SeedService
	FeedService service.FeedService
	SeedJob     *job.SeedJob
	CronMgr     *cron.Manager
}

// BuildApplication rdb 为 nil 时使用进程内节流且任务不加锁
func BuildApplication(db *mongodrv.Database, rdb *redisv9.Client, gen llm.TextGenerator, cfg *config.Config) *ApplicationContainer {
	userRepo := mongo.NewUserRepo(db)
	postRepo := mongo.NewPostRepo(db)
	commentRepo := mongo.NewCommentRepo(db)
	friendshipRepo := mongo.NewFriendshipRepo(db)
	seedStore := mongo.NewSeedStore(db)

	interval := time.Duration(cfg.LLM.CallDelayMs) * time.Millisecond
	var (
		pacer  llm.Pacer
		locker job.Locker
	)
	if rdb != nil {
		pacer = llm.NewRedisPacer(rdb, consts.LLMPaceKey, interval)
		locker = redis.NewLocker(rdb)
	} else {
		pacer = llm.NewIntervalPacer(interval)
	}
	llmClient := llm.NewClient(gen, pacer)

	seedService := service.NewSeedService(seedStore, llmClient)
	feedService := service.NewFeedService(userRepo, postRepo, commentRepo, friendshipRepo)

	seedJob := job.NewSeedJob(seedService, locker, service.SeedOptionsFromConfig(cfg.Seed, cfg.LLM))
	cronMgr := cron.NewCronManager(cfg.Seed.Schedule, seedJob)

	handlers := &api.HandlersGroup{
		FeedHandler: handler.NewFeedHandler(feedService),
	}
	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:      router,
		SeedService: seedService,
		FeedService: feedService,
		SeedJob:     seedJob,
		CronMgr:     cronMgr,
	}
}
