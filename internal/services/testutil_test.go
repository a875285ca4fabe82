package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campuslink/backend/internal/models"
)

var testDBCounter int

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.DeveloperProfile{},
		&models.Project{},
		&models.ProjectAuthor{},
		&models.Collaboration{},
		&models.Conversation{},
		&models.Message{},
		&models.RefreshToken{},
		&models.SystemLog{},
		&models.SystemConfig{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, userType string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "hashed",
		FullName: "Test User",
		UserType: userType,
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, ownerID uint, name, category string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:         name,
		Description:  "A test project",
		Category:     category,
		ContactEmail: "owner@test.local",
		Status:       models.ProjectActive,
		CreatedBy:    ownerID,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func acceptedCollaboration(t *testing.T, db *gorm.DB, queue TaskQueue, project *models.Project, ownerID, collaboratorID uint) *models.Collaboration {
	t.Helper()

	svc := NewCollaborationService(db, queue)
	collab, err := svc.Request(collaboratorID, &RequestCollaborationInput{
		ProjectID: project.ID,
		Message:   "I would like to help",
	})
	if err != nil {
		t.Fatalf("failed to request collaboration: %v", err)
	}
	collab, err = svc.Respond(collab.ID, ownerID, true)
	if err != nil {
		t.Fatalf("failed to accept collaboration: %v", err)
	}
	return collab
}
