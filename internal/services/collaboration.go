package services

import (
	"errors"
	"strings"
	"time"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/pkg/logger"
	"github.com/campuslink/backend/pkg/response"
	"gorm.io/gorm"
)

type CollaborationService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewCollaborationService(db *gorm.DB, queue TaskQueue) *CollaborationService {
	return &CollaborationService{db: db, queue: queue}
}

type RequestCollaborationInput struct {
	ProjectID uint   `json:"project_id" binding:"required"`
	Message   string `json:"message" binding:"max=2000"`
}

// Request files a pending collaboration request against an active
// project. Owners cannot request their own project, and the unique
// index on (project_id, collaborator_id) rejects duplicates even under
// concurrent submissions.
func (s *CollaborationService) Request(userID uint, input *RequestCollaborationInput) (*models.Collaboration, error) {
	var project models.Project
	if err := s.db.Where("status = ?", models.ProjectActive).First(&project, input.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.CreatedBy == userID {
		return nil, response.NewBadRequest("cannot request collaboration on your own project")
	}

	var count int64
	if err := s.db.Model(&models.Collaboration{}).
		Where("project_id = ? AND collaborator_id = ?", input.ProjectID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("collaboration request already exists for this project")
	}

	collab := models.Collaboration{
		ProjectID:      input.ProjectID,
		CollaboratorID: userID,
		Status:         models.CollaborationPending,
		Message:        strings.TrimSpace(input.Message),
	}
	if err := s.db.Create(&collab).Error; err != nil {
		// The unique index catches the race the count check missed
		if isDuplicateKeyError(err) {
			return nil, response.NewConflict("collaboration request already exists for this project")
		}
		return nil, err
	}

	logger.Info().
		Uint("collaboration_id", collab.ID).
		Uint("project_id", input.ProjectID).
		Uint("collaborator_id", userID).
		Msg("collaboration requested")

	return &collab, nil
}

// Respond lets the project owner accept or reject a pending request.
// Accepting stamps started_at and creates the conversation in the same
// transaction, then queues a notification mail to the requester.
func (s *CollaborationService) Respond(collaborationID, ownerID uint, accept bool) (*models.Collaboration, error) {
	collab, err := s.ownedCollaboration(collaborationID, ownerID)
	if err != nil {
		return nil, err
	}

	if collab.Status != models.CollaborationPending {
		return nil, response.NewBadRequest("collaboration request has already been resolved")
	}

	now := time.Now()
	updates := map[string]interface{}{"status": models.CollaborationRejected}
	if accept {
		updates = map[string]interface{}{
			"status":     models.CollaborationAccepted,
			"started_at": now,
		}
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		applied, err := transitionFrom(tx, collab, models.CollaborationPending, updates)
		if err != nil {
			return err
		}
		if !applied {
			// A concurrent decision won; do not overwrite it.
			return response.NewBadRequest("collaboration request has already been resolved")
		}
		if accept {
			if _, err := ensureConversationTx(tx, collab, ownerID); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if accept {
		collab.Status = models.CollaborationAccepted
		collab.StartedAt = &now
	} else {
		collab.Status = models.CollaborationRejected
	}

	s.notifyDecision(collab)

	return collab, nil
}

// Complete marks an accepted collaboration as finished. Owner only.
func (s *CollaborationService) Complete(collaborationID, ownerID uint) (*models.Collaboration, error) {
	collab, err := s.ownedCollaboration(collaborationID, ownerID)
	if err != nil {
		return nil, err
	}

	if collab.Status != models.CollaborationAccepted {
		return nil, response.NewBadRequest("only accepted collaborations can be completed")
	}

	now := time.Now()
	applied, err := transitionFrom(s.db, collab, models.CollaborationAccepted, map[string]interface{}{
		"status":       models.CollaborationCompleted,
		"completed_at": now,
		"progress":     100,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, response.NewBadRequest("only accepted collaborations can be completed")
	}
	collab.Status = models.CollaborationCompleted
	collab.CompletedAt = &now
	collab.Progress = 100
	return collab, nil
}

// UpdateProgress sets the progress percentage of an active
// collaboration. Either participant may update it.
func (s *CollaborationService) UpdateProgress(collaborationID, userID uint, progress int) (*models.Collaboration, error) {
	if progress < 0 || progress > 100 {
		return nil, response.NewBadRequest("progress must be between 0 and 100")
	}

	var collab models.Collaboration
	if err := s.db.Preload("Project").First(&collab, collaborationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("collaboration not found")
		}
		return nil, err
	}

	if userID != collab.CollaboratorID && userID != collab.Project.CreatedBy {
		return nil, response.NewForbidden("not a participant of this collaboration")
	}
	if collab.Status != models.CollaborationAccepted {
		return nil, response.NewBadRequest("progress can only be updated on accepted collaborations")
	}

	result := s.db.Model(&collab).
		Where("status = ?", models.CollaborationAccepted).
		Update("progress", progress)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, response.NewBadRequest("progress can only be updated on accepted collaborations")
	}
	collab.Progress = progress
	return &collab, nil
}

// Remove withdraws the caller's own pending request. The row is
// deleted outright so a later request for the same project is possible.
func (s *CollaborationService) Remove(collaborationID, userID uint) error {
	var collab models.Collaboration
	if err := s.db.First(&collab, collaborationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("collaboration not found")
		}
		return err
	}

	if collab.CollaboratorID != userID {
		return response.NewForbidden("only the requester can withdraw a request")
	}
	if collab.Status != models.CollaborationPending {
		return response.NewBadRequest("only pending requests can be withdrawn")
	}

	return s.db.Unscoped().Delete(&collab).Error
}

// ListOutgoing returns the requests the user has filed, newest first.
func (s *CollaborationService) ListOutgoing(userID uint, status string) ([]models.Collaboration, error) {
	query := s.db.
		Preload("Project").
		Preload("Project.Owner").
		Where("collaborator_id = ?", userID)
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var collabs []models.Collaboration
	if err := query.Order("created_at DESC").Find(&collabs).Error; err != nil {
		return nil, err
	}
	return collabs, nil
}

// ListIncoming returns the requests filed against the user's projects,
// newest first.
func (s *CollaborationService) ListIncoming(ownerID uint, status string) ([]models.Collaboration, error) {
	query := s.db.
		Preload("Project").
		Preload("Collaborator").
		Preload("Collaborator.DeveloperProfile").
		Joins("JOIN projects ON projects.id = collaborations.project_id").
		Where("projects.created_by = ?", ownerID)
	if status != "" && status != "all" {
		query = query.Where("collaborations.status = ?", status)
	}

	var collabs []models.Collaboration
	if err := query.Order("collaborations.created_at DESC").Find(&collabs).Error; err != nil {
		return nil, err
	}
	return collabs, nil
}

func (s *CollaborationService) ownedCollaboration(collaborationID, ownerID uint) (*models.Collaboration, error) {
	var collab models.Collaboration
	if err := s.db.Preload("Project").Preload("Collaborator").First(&collab, collaborationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("collaboration not found")
		}
		return nil, err
	}
	if collab.Project == nil || collab.Project.CreatedBy != ownerID {
		return nil, response.NewForbidden("only the project owner can manage this request")
	}
	return &collab, nil
}

func (s *CollaborationService) notifyDecision(collab *models.Collaboration) {
	if s.queue == nil || collab.Collaborator == nil || collab.Project == nil {
		return
	}
	task := &NotificationTask{
		Kind:        NotificationCollaborationDecided,
		Recipient:   collab.Collaborator.Email,
		FullName:    collab.Collaborator.FullName,
		ProjectName: collab.Project.Name,
		Status:      collab.Status,
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Errorf("failed to enqueue decision notification: %v", err)
	}
}

// transitionFrom applies the status transition only while the row is
// still in fromStatus. A caller holding a stale read loses here
// instead of overwriting a decision that already landed.
func transitionFrom(tx *gorm.DB, collab *models.Collaboration, fromStatus string, updates map[string]interface{}) (bool, error) {
	result := tx.Model(collab).Where("status = ?", fromStatus).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// isDuplicateKeyError detects unique constraint violations across the
// supported drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "unique failed")
}
