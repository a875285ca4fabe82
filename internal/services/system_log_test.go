package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/models"
)

func seedLog(t *testing.T, db *gorm.DB, level, module, message string, age time.Duration) {
	t.Helper()
	entry := models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    "test",
		Message:   message,
		CreatedAt: time.Now().Add(-age),
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}
}

func TestSystemLogList_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	seedLog(t, db, "info", "auth", "user logged in", 0)
	seedLog(t, db, "error", "auth", "login failed for user", time.Hour)
	seedLog(t, db, "info", "collaboration", "request accepted", 2*time.Hour)

	all, err := svc.List(&SystemLogListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if all.Total != 3 {
		t.Errorf("Total = %d, expected 3", all.Total)
	}
	if all.Page != 1 || all.PageSize != 20 {
		t.Errorf("defaults = page %d size %d, expected 1/20", all.Page, all.PageSize)
	}

	byLevel, _ := svc.List(&SystemLogListRequest{Level: "error"})
	if byLevel.Total != 1 {
		t.Errorf("Level filter Total = %d, expected 1", byLevel.Total)
	}

	byModule, _ := svc.List(&SystemLogListRequest{Module: "auth"})
	if byModule.Total != 2 {
		t.Errorf("Module filter Total = %d, expected 2", byModule.Total)
	}

	bySearch, _ := svc.List(&SystemLogListRequest{Search: "accepted"})
	if bySearch.Total != 1 {
		t.Errorf("Search filter Total = %d, expected 1", bySearch.Total)
	}
}

func TestSystemLogList_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	seedLog(t, db, "info", "auth", "older", time.Hour)
	seedLog(t, db, "info", "auth", "newest", 0)

	result, err := svc.List(&SystemLogListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Items) != 2 || result.Items[0].Message != "newest" {
		t.Errorf("expected newest entry first, got %+v", result.Items)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	seedLog(t, db, "info", "auth", "ancient", 40*24*time.Hour)
	seedLog(t, db, "info", "auth", "recent", time.Hour)

	deleted, err := svc.CleanupOldLogs(30)
	if err != nil {
		t.Fatalf("CleanupOldLogs() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, expected 1", deleted)
	}

	var remaining int64
	db.Model(&models.SystemLog{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("remaining = %d, expected 1", remaining)
	}

	// Non-positive retention is a no-op, never a full wipe.
	deleted, err = svc.CleanupOldLogs(0)
	if err != nil || deleted != 0 {
		t.Errorf("CleanupOldLogs(0) = %d, %v, expected 0, nil", deleted, err)
	}
}

func TestRetentionDays(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	if days := svc.GetRetentionDays(); days != 30 {
		t.Errorf("GetRetentionDays() default = %d, expected 30", days)
	}

	if err := svc.SetRetentionDays(90); err != nil {
		t.Fatalf("SetRetentionDays() error = %v", err)
	}
	if days := svc.GetRetentionDays(); days != 90 {
		t.Errorf("GetRetentionDays() = %d, expected 90", days)
	}
}

func TestGetModules(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	seedLog(t, db, "info", "auth", "a", 0)
	seedLog(t, db, "info", "auth", "b", 0)
	seedLog(t, db, "info", "chat", "c", 0)

	modules, err := svc.GetModules()
	if err != nil {
		t.Fatalf("GetModules() error = %v", err)
	}
	if len(modules) != 2 {
		t.Errorf("modules = %v, expected 2 distinct", modules)
	}
}
