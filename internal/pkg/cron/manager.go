package cron

import (
	"Meridian/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// 孤儿资产清理的执行计划
const assetCleanupSchedule = "@daily"

type Manager struct {
	engine          *cron.Cron
	assetCleanupJob *job.AssetCleanupJob
}

func NewCronManager(assetCleanupJob *job.AssetCleanupJob) *Manager {
	return &Manager{
		engine:          cron.New(),
		assetCleanupJob: assetCleanupJob,
	}
}

// Start 注册全部定时任务并启动引擎
func (s *Manager) Start() error {
	if _, err := s.engine.AddJob(assetCleanupSchedule, s.assetCleanupJob); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
	return nil
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
