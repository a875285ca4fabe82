package services

import (
	"sync"

	"github.com/campuslink/backend/internal/models"
)

// MessageEvent is pushed to chat clients when a message row is
// inserted into their conversation.
type MessageEvent struct {
	ConversationID uint           `json:"conversation_id"`
	Message        models.Message `json:"message"`
}

type sseClient struct {
	conversationID uint
	ch             chan MessageEvent
}

// SSEHub fans message-insert events out to subscribed chat clients.
// Each subscription is scoped to a single conversation; events for
// other conversations are never delivered to it.
type SSEHub struct {
	clients map[string]*sseClient
	mu      sync.RWMutex
}

func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]*sseClient),
	}
}

// Subscribe registers a client for one conversation and returns the
// channel events arrive on.
func (h *SSEHub) Subscribe(clientID string, conversationID uint) <-chan MessageEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered so a slow consumer cannot block the publisher
	ch := make(chan MessageEvent, 100)
	h.clients[clientID] = &sseClient{conversationID: conversationID, ch: ch}
	return ch
}

// Unsubscribe removes a client from the hub.
func (h *SSEHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.ch)
		delete(h.clients, clientID)
	}
}

// Publish delivers an event to every client subscribed to its
// conversation. Slow clients are skipped; they catch up through the
// regular polling re-fetch.
func (h *SSEHub) Publish(event MessageEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.conversationID != event.ConversationID {
			continue
		}
		select {
		case c.ch <- event:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *SSEHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var (
	globalSSEHub *SSEHub
	sseHubOnce   sync.Once
)

// GetSSEHub returns the global SSE hub singleton.
func GetSSEHub() *SSEHub {
	sseHubOnce.Do(func() {
		globalSSEHub = NewSSEHub()
	})
	return globalSSEHub
}
