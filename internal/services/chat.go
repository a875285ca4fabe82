package services

import (
	"errors"
	"strings"
	"time"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/pkg/response"
	"gorm.io/gorm"
)

type ChatService struct {
	db  *gorm.DB
	hub *SSEHub
}

func NewChatService(db *gorm.DB, hub *SSEHub) *ChatService {
	return &ChatService{db: db, hub: hub}
}

// ensureConversationTx is the shared get-or-create for the single
// conversation of a collaboration. Safe to call repeatedly and from
// concurrent requests: the unique index on collaboration_id turns the
// losing insert into a re-fetch.
func ensureConversationTx(tx *gorm.DB, collab *models.Collaboration, ownerID uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := tx.Where("collaboration_id = ?", collab.ID).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{
		CollaborationID: collab.ID,
		ProjectID:       collab.ProjectID,
		OwnerID:         ownerID,
		CollaboratorID:  collab.CollaboratorID,
		IsOpen:          true,
	}
	if err := tx.Create(&conv).Error; err != nil {
		// Lost the race to a concurrent creator; the existing row wins.
		var existing models.Conversation
		if ferr := tx.Where("collaboration_id = ?", collab.ID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &conv, nil
}

// EnsureConversation returns the conversation for an accepted
// collaboration, creating it if absent. Only a participant may call.
func (s *ChatService) EnsureConversation(collaborationID, userID uint) (*models.Conversation, error) {
	var collab models.Collaboration
	if err := s.db.Preload("Project").First(&collab, collaborationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("collaboration not found")
		}
		return nil, err
	}

	if collab.Status != models.CollaborationAccepted && collab.Status != models.CollaborationCompleted {
		return nil, response.NewBadRequest("collaboration is not accepted")
	}

	ownerID := collab.Project.CreatedBy
	if userID != ownerID && userID != collab.CollaboratorID {
		return nil, response.NewForbidden("not a participant of this collaboration")
	}

	return ensureConversationTx(s.db, &collab, ownerID)
}

// ConversationItem is a conversation plus the caller's unread count.
type ConversationItem struct {
	models.Conversation
	UnreadCount int64 `json:"unread_count"`
}

// ListConversations returns every conversation the user participates
// in, most recently active first, each with its unread count.
func (s *ChatService) ListConversations(userID uint) ([]ConversationItem, error) {
	var conversations []models.Conversation
	if err := s.db.
		Preload("Project").
		Preload("Owner").
		Preload("Collaborator").
		Where("owner_id = ? OR collaborator_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}

	items := make([]ConversationItem, 0, len(conversations))
	for _, conv := range conversations {
		var unread int64
		if err := s.db.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conv.ID, userID).
			Count(&unread).Error; err != nil {
			return nil, err
		}
		items = append(items, ConversationItem{Conversation: conv, UnreadCount: unread})
	}
	return items, nil
}

// ListMessages returns the full message history of a conversation in
// chronological order.
func (s *ChatService) ListMessages(conversationID, userID uint) ([]models.Message, error) {
	if _, err := s.participantConversation(conversationID, userID); err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage appends a message and bumps the conversation's
// last-activity timestamps in one transaction, then publishes the row
// to SSE subscribers. Empty or whitespace-only content is rejected
// without touching the database.
func (s *ChatService) SendMessage(conversationID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.NewBadRequest("message content is empty")
	}

	conv, err := s.participantConversation(conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if !conv.IsOpen {
		return nil, response.NewBadRequest("conversation is closed")
	}

	message := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	now := time.Now()
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(conv).Updates(map[string]interface{}{
			"last_message_at": now,
			"updated_at":      now,
		}).Error
	}); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(MessageEvent{ConversationID: conversationID, Message: message})
	}

	return &message, nil
}

// MarkRead sets read_at on all unread counterparty messages of the
// conversation in a single bulk update. Returns how many were marked.
func (s *ChatService) MarkRead(conversationID, readerID uint) (int64, error) {
	if _, err := s.participantConversation(conversationID, readerID); err != nil {
		return 0, err
	}

	result := s.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UnreadTotal is the single aggregate the notification bell polls:
// unread messages addressed to the user across all their conversations.
func (s *ChatService) UnreadTotal(userID uint) (int64, error) {
	var total int64
	err := s.db.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.owner_id = ? OR conversations.collaborator_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.read_at IS NULL", userID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GetConversation loads a conversation the user participates in.
func (s *ChatService) GetConversation(conversationID, userID uint) (*models.Conversation, error) {
	return s.participantConversation(conversationID, userID)
}

func (s *ChatService) participantConversation(conversationID, userID uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("conversation not found")
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, response.NewForbidden("not a participant of this conversation")
	}
	return &conv, nil
}
