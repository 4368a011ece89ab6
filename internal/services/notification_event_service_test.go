package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/EHB-MCT/forum-service/internal/events"
	"github.com/EHB-MCT/forum-service/internal/models"
)

func TestNotificationEventService_PublishEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockPublisher := events.NewMockEventPublisher(logger)
	service := NewNotificationEventService(mockPublisher, logger)

	ctx := context.Background()

	t.Run("UserRegistered", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.PublishUserRegistered(ctx, &models.User{
			UserID:   7,
			Username: "jan",
			Email:    "jan@student.ehb.be",
			Role:     models.RoleStudent,
		})

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		event := published[0]
		if event.Type != events.EventUserRegistered {
			t.Errorf("expected type %q, got %q", events.EventUserRegistered, event.Type)
		}

		data, ok := event.Data.(UserRegisteredEvent)
		if !ok {
			t.Fatalf("unexpected event data type %T", event.Data)
		}
		if data.UserID != 7 || data.Username != "jan" || data.Role != "student" {
			t.Errorf("unexpected event data: %+v", data)
		}
	})

	t.Run("ThreadCreated", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.PublishThreadCreated(ctx, &models.Thread{
			ThreadID:          3,
			UserID:            7,
			Title:             "Question about gorm",
			PostedAnonymously: true,
		})

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		data, ok := published[0].Data.(ThreadCreatedEvent)
		if !ok {
			t.Fatalf("unexpected event data type %T", published[0].Data)
		}
		if data.ThreadID != 3 || data.UserID != 7 || !data.PostedAnonymously {
			t.Errorf("unexpected event data: %+v", data)
		}
	})

	t.Run("ReplyCreated", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.PublishReplyCreated(ctx, &models.Reply{
			ReplyID:  9,
			ThreadID: 3,
			UserID:   7,
			Content:  "try a composite tag",
		})

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventReplyCreated {
			t.Errorf("expected type %q, got %q", events.EventReplyCreated, published[0].Type)
		}
	})

	t.Run("Event_Structure_Validation", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.PublishUserRegistered(ctx, &models.User{UserID: 1, Username: "jan", Role: models.RoleStudent})

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		event := published[0]

		if event.ID == "" {
			t.Error("event ID should not be empty")
		}
		if event.Source != "forum-service" {
			t.Errorf("expected source 'forum-service', got %q", event.Source)
		}
		if event.Version != "1.0" {
			t.Errorf("expected version '1.0', got %q", event.Version)
		}
		if event.Timestamp.IsZero() {
			t.Error("event timestamp should be set")
		}
	})
}
