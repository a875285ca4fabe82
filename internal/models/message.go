package models

import "time"

// Message is an append-only chat message. ReadAt stays null until the
// counterparty opens the conversation.
type Message struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID uint       `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint       `gorm:"index;not null" json:"sender_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	ReadAt         *time.Time `json:"read_at"`
}

func (Message) TableName() string { return "messages" }
