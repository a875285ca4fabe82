package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTaskTypeNotification_Constant(t *testing.T) {
	if TaskTypeNotification != "notification:send" {
		t.Errorf("TaskTypeNotification = %q, expected %q", TaskTypeNotification, "notification:send")
	}
}

func TestNotificationTask_Structure(t *testing.T) {
	task := NotificationTask{
		Kind:        NotificationCollaborationDecided,
		Recipient:   "dev@example.com",
		FullName:    "Dev Person",
		ProjectName: "Campus App",
		Status:      "accepted",
	}

	if task.Kind != "collaboration_decided" {
		t.Errorf("Kind = %q, expected %q", task.Kind, "collaboration_decided")
	}
	if task.Recipient != "dev@example.com" {
		t.Errorf("Recipient = %q, expected %q", task.Recipient, "dev@example.com")
	}
	if task.FullName != "Dev Person" {
		t.Errorf("FullName = %q, expected %q", task.FullName, "Dev Person")
	}
	if task.ProjectName != "Campus App" {
		t.Errorf("ProjectName = %q, expected %q", task.ProjectName, "Campus App")
	}
	if task.Status != "accepted" {
		t.Errorf("Status = %q, expected %q", task.Status, "accepted")
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	err := queue.Close()
	if err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()
	task := &NotificationTask{Kind: NotificationCollaborationDecided}

	err := queue.Enqueue(task)
	if err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_EnqueueRunsProcessor(t *testing.T) {
	queue := NewSyncQueue()

	var mu sync.Mutex
	var got *NotificationTask
	done := make(chan struct{})
	queue.SetProcessor(func(ctx context.Context, task *NotificationTask) error {
		mu.Lock()
		got = task
		mu.Unlock()
		close(done)
		return nil
	})

	if err := queue.Enqueue(&NotificationTask{Recipient: "dev@example.com"}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil || got.Recipient != "dev@example.com" {
		t.Errorf("processor received %+v, expected the enqueued task", got)
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
