package services

import (
	"testing"

	"github.com/campuslink/backend/internal/models"
)

func TestDashboardService_StudentStats(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@test.local", models.UserTypeStudent)
	devA := createTestUser(t, db, "a@test.local", models.UserTypeCollaborator)
	devB := createTestUser(t, db, "b@test.local", models.UserTypeCollaborator)
	projectA := createTestProject(t, db, owner.ID, "Campus App", models.CategoryWeb)
	projectB := createTestProject(t, db, owner.ID, "Sensor Net", models.CategoryIoT)

	collabSvc := NewCollaborationService(db, nil)
	accepted, _ := collabSvc.Request(devA.ID, &RequestCollaborationInput{ProjectID: projectA.ID})
	collabSvc.Respond(accepted.ID, owner.ID, true)
	collabSvc.Request(devB.ID, &RequestCollaborationInput{ProjectID: projectB.ID})

	chat := NewChatService(db, nil)
	conv, _ := chat.EnsureConversation(accepted.ID, devA.ID)
	chat.SendMessage(conv.ID, devA.ID, "when do we start?")

	svc := NewDashboardService(db, chat)
	stats, err := svc.StudentStats(owner.ID)
	if err != nil {
		t.Fatalf("StudentStats() error = %v", err)
	}

	if stats.ProjectCount != 2 {
		t.Errorf("ProjectCount = %d, expected 2", stats.ProjectCount)
	}
	if stats.PendingRequestCount != 1 {
		t.Errorf("PendingRequestCount = %d, expected 1", stats.PendingRequestCount)
	}
	if stats.ActiveCollaborations != 1 {
		t.Errorf("ActiveCollaborations = %d, expected 1", stats.ActiveCollaborations)
	}
	if stats.UnreadMessages != 1 {
		t.Errorf("UnreadMessages = %d, expected 1", stats.UnreadMessages)
	}
}

func TestDashboardService_CollaboratorStats(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@test.local", models.UserTypeStudent)
	dev := createTestUser(t, db, "dev@test.local", models.UserTypeCollaborator)
	projectA := createTestProject(t, db, owner.ID, "Campus App", models.CategoryWeb)
	projectB := createTestProject(t, db, owner.ID, "Sensor Net", models.CategoryIoT)
	projectC := createTestProject(t, db, owner.ID, "Chain Vote", models.CategoryBlockchain)

	collabSvc := NewCollaborationService(db, nil)
	a, _ := collabSvc.Request(dev.ID, &RequestCollaborationInput{ProjectID: projectA.ID})
	b, _ := collabSvc.Request(dev.ID, &RequestCollaborationInput{ProjectID: projectB.ID})
	collabSvc.Request(dev.ID, &RequestCollaborationInput{ProjectID: projectC.ID})
	collabSvc.Respond(a.ID, owner.ID, true)
	collabSvc.Respond(b.ID, owner.ID, false)

	chat := NewChatService(db, nil)
	svc := NewDashboardService(db, chat)

	stats, err := svc.CollaboratorStats(dev.ID)
	if err != nil {
		t.Fatalf("CollaboratorStats() error = %v", err)
	}

	if stats.PendingRequests != 1 {
		t.Errorf("PendingRequests = %d, expected 1", stats.PendingRequests)
	}
	if stats.AcceptedRequests != 1 {
		t.Errorf("AcceptedRequests = %d, expected 1", stats.AcceptedRequests)
	}
	if stats.RejectedRequests != 1 {
		t.Errorf("RejectedRequests = %d, expected 1", stats.RejectedRequests)
	}
	if stats.CompletedCollaborations != 0 {
		t.Errorf("CompletedCollaborations = %d, expected 0", stats.CompletedCollaborations)
	}
	if stats.UnreadMessages != 0 {
		t.Errorf("UnreadMessages = %d, expected 0", stats.UnreadMessages)
	}
}
