package models

import "time"

// Conversation is a 1:1 message thread between a project owner and an
// accepted collaborator. At most one exists per collaboration, created
// lazily when the request is accepted.
type Conversation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CollaborationID uint       `gorm:"uniqueIndex;not null" json:"collaboration_id"`
	ProjectID       uint       `gorm:"index;not null" json:"project_id"`
	Project         *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	OwnerID         uint       `gorm:"index;not null" json:"owner_id"`
	Owner           *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CollaboratorID  uint       `gorm:"index;not null" json:"collaborator_id"`
	Collaborator    *User      `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
	IsOpen          bool       `gorm:"default:true" json:"is_open"`
	LastMessageAt   *time.Time `gorm:"index" json:"last_message_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

// HasParticipant reports whether the given user is one of the two
// parties of the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.OwnerID == userID || c.CollaboratorID == userID
}
