package job

import (
	"FeedSeeder/internal/pkg/consts"
	"FeedSeeder/internal/pkg/logger"
	"FeedSeeder/internal/service"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const seedLockTTL = 6 * time.Hour

// Locker 任务互斥锁
type Locker interface {
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{}) error
}

type seedRunner interface {
	Run(ctx context.Context, opts service.SeedOptions) (*service.SeedReport, error)
}

// SeedJob 定时生成一批数据；locker 为 nil 时不加锁
type SeedJob struct {
	seedSvc seedRunner
	locker  Locker
	opts    service.SeedOptions

	// 定时触发的运行都派生自 ctx，Stop 取消后正在等待节流或调用模型的运行立即返回
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
}

func NewSeedJob(seedSvc seedRunner, locker Locker, opts service.SeedOptions) *SeedJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &SeedJob{
		seedSvc: seedSvc,
		locker:  locker,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *SeedJob) Run() {
	ctx := logger.WithTraceID(s.ctx, "job-seed")
	if _, err := s.RunOnce(ctx); err != nil {
		log.ErrorContext(ctx, "SeedJob failed", "err", err)
	}
}

// Stop 取消正在进行以及之后触发的定时运行
func (s *SeedJob) Stop() {
	s.cancel()
}

// RunOnce 按配置参数执行一次生成
func (s *SeedJob) RunOnce(ctx context.Context) (*service.SeedReport, error) {
	return s.RunWith(ctx, s.opts)
}

// RunWith 执行一次生成，同一进程内或持有锁的其他进程正在运行时返回 ErrSeedLocked
func (s *SeedJob) RunWith(ctx context.Context, opts service.SeedOptions) (*service.SeedReport, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, service.ErrSeedLocked
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if s.locker != nil {
		owner := uuid.NewString()
		ok, err := s.locker.TryLock(ctx, consts.SeedLockKey, owner, seedLockTTL, 1)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.InfoContext(ctx, "SeedJob skipped, lock held elsewhere")
			return nil, service.ErrSeedLocked
		}
		defer func() {
			if err = s.locker.UnLock(context.WithoutCancel(ctx), consts.SeedLockKey, owner); err != nil {
				log.WarnContext(ctx, "SeedJob unlock failed", "err", err)
			}
		}()
	}

	start := time.Now()
	log.InfoContext(ctx, "SeedJob started")
	report, err := s.seedSvc.Run(ctx, opts)
	if err != nil {
		return report, err
	}
	log.InfoContext(ctx, "SeedJob finished", "cost", time.Since(start).String(), "posts", report.Posts)
	return report, nil
}
