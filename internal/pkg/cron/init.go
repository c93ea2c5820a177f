package cron

import log "log/slog"

// InitCron 注册并启动定时任务
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("Cron Jobs started", "entries", mgr.Entries())
	return nil
}
