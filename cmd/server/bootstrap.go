package main

import (
	"github.com/campuslink/backend/internal/config"
	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/internal/utils"
	"github.com/campuslink/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg       *config.Config
	scheduler *services.MaintenanceScheduler
	taskQueue services.TaskQueue
	worker    *services.Worker
	sseHub    *services.SSEHub
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}
	if err := models.SeedSampleProjects(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed sample projects")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start maintenance scheduler (log cleanup, refresh token purge)
	scheduler := services.NewMaintenanceScheduler(models.GetDB())
	if err := scheduler.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start maintenance scheduler")
	}

	// Notification pipeline: task queue feeding the mail sender
	emailService := services.NewEmailService(services.NewSystemConfigService(models.GetDB()))
	processor := services.NotificationProcessor(emailService)

	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processor)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(processor)
			worker.Start()
		}
	}

	return &appServices{
		cfg:       cfg,
		scheduler: scheduler,
		taskQueue: taskQueue,
		worker:    worker,
		sseHub:    services.GetSSEHub(),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.scheduler.Stop()
	logger.Info().Msg("Maintenance scheduler stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
