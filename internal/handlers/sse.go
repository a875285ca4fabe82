package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/internal/utils"
	"github.com/campuslink/backend/pkg/logger"
	"github.com/campuslink/backend/pkg/response"
)

// SSEHandler handles Server-Sent Events for real-time chat updates
type SSEHandler struct {
	hub         *services.SSEHub
	chatService *services.ChatService
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(db *gorm.DB, hub *services.SSEHub) *SSEHandler {
	return &SSEHandler{
		hub:         hub,
		chatService: services.NewChatService(db, hub),
	}
}

// StreamMessages streams new messages of one conversation to the
// client. EventSource cannot set headers, so the token may come via
// query parameter as well.
// GET /api/conversations/:id/stream
func (h *SSEHandler) StreamMessages(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if token == "" {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, "Invalid token")
		return
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	if _, err := h.chatService.GetConversation(uint(conversationID), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Access-Control-Allow-Origin", "*")

	clientID := uuid.New().String()

	events := h.hub.Subscribe(clientID, uint(conversationID))
	defer h.hub.Unsubscribe(clientID)

	logger.Info().
		Str("client_id", clientID).
		Uint64("conversation_id", conversationID).
		Int("total", h.hub.ClientCount()).
		Msg("SSE client connected")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error().Err(err).Msg("SSE marshal error")
				return true
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			c.Writer.Flush()
			return true
		case <-c.Request.Context().Done():
			logger.Info().Str("client_id", clientID).Msg("SSE client disconnected")
			return false
		}
	})
}
