package cron

import (
	"FeedSeeder/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine   *cron.Cron
	schedule string
	seedJob  *job.SeedJob
}

// NewCronManager schedule 为空时不注册任何任务
func NewCronManager(schedule string, seedJob *job.SeedJob) *Manager {
	return &Manager{
		engine: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		schedule: schedule,
		seedJob:  seedJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.schedule == "" || s.seedJob == nil {
		log.Info("Cron 未配置生成任务")
		return nil
	}
	if _, err := s.engine.AddJob(s.schedule, s.seedJob); err != nil {
		return err
	}
	log.Info("Cron 注册生成任务", "schedule", s.schedule)
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 先取消运行中的任务再等待其退出
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	if s.seedJob != nil {
		s.seedJob.Stop()
	}
	<-s.engine.Stop().Done()
}
