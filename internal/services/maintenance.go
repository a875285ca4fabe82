package services

import (
	"time"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MaintenanceScheduler runs nightly housekeeping jobs: system log
// retention cleanup and expired refresh token purge.
type MaintenanceScheduler struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewMaintenanceScheduler(db *gorm.DB) *MaintenanceScheduler {
	return &MaintenanceScheduler{db: db}
}

// Start registers the jobs and launches the scheduler. Jobs also run
// once immediately so a long-stopped instance catches up on startup.
func (m *MaintenanceScheduler) Start() error {
	m.cron = cron.New()

	if _, err := m.cron.AddFunc("30 3 * * *", m.runAll); err != nil {
		return err
	}

	go m.runAll()
	m.cron.Start()
	return nil
}

func (m *MaintenanceScheduler) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

func (m *MaintenanceScheduler) runAll() {
	m.cleanupSystemLogs()
	m.purgeRefreshTokens()
}

func (m *MaintenanceScheduler) cleanupSystemLogs() {
	svc := NewSystemLogService(m.db)
	retentionDays := svc.GetRetentionDays()
	if retentionDays <= 0 {
		logger.Info().Msg("system log cleanup disabled (retention <= 0)")
		return
	}

	deleted, err := svc.CleanupOldLogs(retentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("system log cleanup failed")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Int("retention_days", retentionDays).Msg("system logs cleaned up")
	}
}

// purgeRefreshTokens removes tokens that expired or were revoked more
// than 30 days ago. Recently revoked tokens are kept for audit.
func (m *MaintenanceScheduler) purgeRefreshTokens() {
	cutoff := time.Now().AddDate(0, 0, -30)
	result := m.db.
		Where("expires_at < ?", time.Now()).
		Or("revoked_at IS NOT NULL AND revoked_at < ?", cutoff).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("refresh token purge failed")
		return
	}
	if result.RowsAffected > 0 {
		logger.Info().Int64("deleted", result.RowsAffected).Msg("stale refresh tokens purged")
	}
}
