package services

import (
	"testing"

	"github.com/campuslink/backend/internal/models"
)

func TestSSEHub_NewSSEHub(t *testing.T) {
	hub := NewSSEHub()
	if hub == nil {
		t.Fatal("NewSSEHub should not return nil")
	}
	if hub.clients == nil {
		t.Error("clients map should be initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have 0 clients, got %d", hub.ClientCount())
	}
}

func TestSSEHub_Subscribe(t *testing.T) {
	hub := NewSSEHub()

	ch := hub.Subscribe("client1", 1)
	if ch == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", hub.ClientCount())
	}

	ch2 := hub.Subscribe("client2", 2)
	if ch2 == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", hub.ClientCount())
	}
}

func TestSSEHub_Unsubscribe(t *testing.T) {
	hub := NewSSEHub()

	hub.Subscribe("client1", 1)
	hub.Subscribe("client2", 1)

	if hub.ClientCount() != 2 {
		t.Fatalf("expected 2 clients, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client1")
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("nonexistent")
	if hub.ClientCount() != 1 {
		t.Errorf("unsubscribing nonexistent should not affect count, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client2")
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestSSEHub_PublishFiltersByConversation(t *testing.T) {
	hub := NewSSEHub()

	chA := hub.Subscribe("clientA", 1)
	chB := hub.Subscribe("clientB", 2)

	event := MessageEvent{
		ConversationID: 1,
		Message:        models.Message{ID: 10, ConversationID: 1, SenderID: 5, Content: "hi"},
	}
	hub.Publish(event)

	select {
	case got := <-chA:
		if got.Message.ID != 10 {
			t.Errorf("Message.ID = %d, expected 10", got.Message.ID)
		}
		if got.ConversationID != 1 {
			t.Errorf("ConversationID = %d, expected 1", got.ConversationID)
		}
	default:
		t.Fatal("subscriber of conversation 1 should receive the event")
	}

	select {
	case <-chB:
		t.Fatal("subscriber of conversation 2 should receive nothing")
	default:
	}
}

func TestSSEHub_PublishMultipleSubscribers(t *testing.T) {
	hub := NewSSEHub()

	chA := hub.Subscribe("clientA", 7)
	chB := hub.Subscribe("clientB", 7)

	hub.Publish(MessageEvent{ConversationID: 7, Message: models.Message{ID: 1}})

	for name, ch := range map[string]<-chan MessageEvent{"clientA": chA, "clientB": chB} {
		select {
		case <-ch:
		default:
			t.Errorf("%s should receive the event", name)
		}
	}
}

func TestSSEHub_PublishSkipsFullChannel(t *testing.T) {
	hub := NewSSEHub()

	hub.Subscribe("slow", 3)

	// Overfill the buffer; publish must never block
	for i := 0; i < 150; i++ {
		hub.Publish(MessageEvent{ConversationID: 3, Message: models.Message{ID: uint(i)}})
	}

	if hub.ClientCount() != 1 {
		t.Errorf("client should still be subscribed, count = %d", hub.ClientCount())
	}
}

func TestSSEHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewSSEHub()

	ch := hub.Subscribe("client1", 1)
	hub.Unsubscribe("client1")

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestGetSSEHub_Singleton(t *testing.T) {
	a := GetSSEHub()
	b := GetSSEHub()
	if a != b {
		t.Error("GetSSEHub should return the same instance")
	}
}
