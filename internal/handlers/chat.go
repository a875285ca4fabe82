package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/middleware"
	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/pkg/response"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(db *gorm.DB, hub *services.SSEHub) *ChatHandler {
	return &ChatHandler{
		chatService: services.NewChatService(db, hub),
	}
}

type ensureConversationRequest struct {
	CollaborationID uint `json:"collaboration_id" binding:"required"`
}

// EnsureConversation returns (creating on first call) the conversation
// of an accepted collaboration
// POST /api/conversations
func (h *ChatHandler) EnsureConversation(c *gin.Context) {
	var req ensureConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conv, err := h.chatService.EnsureConversation(req.CollaborationID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conv)
}

// ListConversations returns the current user's conversations with
// unread counts
// GET /api/conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	items, err := h.chatService.ListConversations(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// ListMessages returns the message history of a conversation
// GET /api/conversations/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	messages, err := h.chatService.ListMessages(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage appends a message to a conversation
// POST /api/conversations/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.chatService.SendMessage(uint(id), middleware.GetUserID(c), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// MarkRead marks all counterparty messages in a conversation as read
// PUT /api/conversations/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	count, err := h.chatService.MarkRead(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"marked_read": count})
}

// UnreadTotal returns the user's unread message count across all
// conversations, polled by the notification bell
// GET /api/messages/unread-count
func (h *ChatHandler) UnreadTotal(c *gin.Context) {
	total, err := h.chatService.UnreadTotal(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unread_count": total})
}
