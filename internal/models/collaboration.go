package models

import (
	"time"

	"gorm.io/gorm"
)

// Collaboration statuses. pending → accepted|rejected; accepted →
// completed. rejected and completed are terminal.
const (
	CollaborationPending   = "pending"
	CollaborationAccepted  = "accepted"
	CollaborationRejected  = "rejected"
	CollaborationCompleted = "completed"
)

// Collaboration is a request by a user to join a project, tracked
// through a fixed lifecycle. The composite unique index makes duplicate
// requests for the same (project, requester) pair impossible at the
// database level.
type Collaboration struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ProjectID      uint           `gorm:"uniqueIndex:idx_project_collaborator;not null" json:"project_id"`
	Project        *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CollaboratorID uint           `gorm:"uniqueIndex:idx_project_collaborator;not null" json:"collaborator_id"`
	Collaborator   *User          `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
	Status         string         `gorm:"size:20;index;default:pending" json:"status"`
	Message        string         `gorm:"type:text" json:"message"`
	Progress       int            `gorm:"default:0" json:"progress"` // 0-100
	StartedAt      *time.Time     `json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Collaboration) TableName() string { return "collaborations" }

// IsTerminal reports whether the collaboration admits no further
// status transitions.
func (c *Collaboration) IsTerminal() bool {
	return c.Status == CollaborationRejected || c.Status == CollaborationCompleted
}
