package services

import (
	"github.com/campuslink/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates the counters the frontend dashboards
// render. Everything is computed on demand; the tables are small enough
// that caching would be premature.
type DashboardService struct {
	db   *gorm.DB
	chat *ChatService
}

func NewDashboardService(db *gorm.DB, chat *ChatService) *DashboardService {
	return &DashboardService{db: db, chat: chat}
}

// StudentStats summarizes a project owner's side of the platform.
type StudentStats struct {
	ProjectCount         int64 `json:"project_count"`
	PendingRequestCount  int64 `json:"pending_request_count"`
	ActiveCollaborations int64 `json:"active_collaborations"`
	UnreadMessages       int64 `json:"unread_messages"`
}

// CollaboratorStats summarizes a requester's side of the platform.
type CollaboratorStats struct {
	PendingRequests         int64 `json:"pending_requests"`
	AcceptedRequests        int64 `json:"accepted_requests"`
	RejectedRequests        int64 `json:"rejected_requests"`
	CompletedCollaborations int64 `json:"completed_collaborations"`
	UnreadMessages          int64 `json:"unread_messages"`
}

// StudentStats returns the owner-side dashboard counters.
func (s *DashboardService) StudentStats(userID uint) (*StudentStats, error) {
	stats := &StudentStats{}

	if err := s.db.Model(&models.Project{}).
		Where("created_by = ? AND status = ?", userID, models.ProjectActive).
		Count(&stats.ProjectCount).Error; err != nil {
		return nil, err
	}

	ownedRequests := s.db.Model(&models.Collaboration{}).
		Joins("JOIN projects ON projects.id = collaborations.project_id").
		Where("projects.created_by = ?", userID)

	if err := ownedRequests.Session(&gorm.Session{}).
		Where("collaborations.status = ?", models.CollaborationPending).
		Count(&stats.PendingRequestCount).Error; err != nil {
		return nil, err
	}
	if err := ownedRequests.Session(&gorm.Session{}).
		Where("collaborations.status = ?", models.CollaborationAccepted).
		Count(&stats.ActiveCollaborations).Error; err != nil {
		return nil, err
	}

	unread, err := s.chat.UnreadTotal(userID)
	if err != nil {
		return nil, err
	}
	stats.UnreadMessages = unread

	return stats, nil
}

// CollaboratorStats returns the requester-side dashboard counters.
func (s *DashboardService) CollaboratorStats(userID uint) (*CollaboratorStats, error) {
	stats := &CollaboratorStats{}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := s.db.Model(&models.Collaboration{}).
		Select("status, COUNT(*) as count").
		Where("collaborator_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		switch row.Status {
		case models.CollaborationPending:
			stats.PendingRequests = row.Count
		case models.CollaborationAccepted:
			stats.AcceptedRequests = row.Count
		case models.CollaborationRejected:
			stats.RejectedRequests = row.Count
		case models.CollaborationCompleted:
			stats.CompletedCollaborations = row.Count
		}
	}

	unread, err := s.chat.UnreadTotal(userID)
	if err != nil {
		return nil, err
	}
	stats.UnreadMessages = unread

	return stats, nil
}
