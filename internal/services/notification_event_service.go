package services

import (
	"context"
	"log/slog"

	"github.com/EHB-MCT/forum-service/internal/events"
	"github.com/EHB-MCT/forum-service/internal/models"
)

// Event payloads. Only stable identifiers and display data go out; password
// hashes and email addresses stay inside the service.
type UserRegisteredEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ThreadCreatedEvent struct {
	ThreadID          uint   `json:"thread_id"`
	UserID            uint   `json:"user_id"`
	Title             string `json:"title"`
	PostedAnonymously bool   `json:"posted_anonymously"`
}

type ReplyCreatedEvent struct {
	ReplyID  uint `json:"reply_id"`
	ThreadID uint `json:"thread_id"`
	UserID   uint `json:"user_id"`
}

type notificationEventService struct {
	eventPublisher events.Publisher
	logger         *slog.Logger
}

// NewNotificationEventService creates the event fan-out used by the other
// services after successful writes.
func NewNotificationEventService(publisher events.Publisher, logger *slog.Logger) NotificationEventService {
	return &notificationEventService{
		eventPublisher: publisher,
		logger:         logger,
	}
}

func (s *notificationEventService) PublishUserRegistered(ctx context.Context, user *models.User) {
	event := events.NewEvent(events.EventUserRegistered, UserRegisteredEvent{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	s.publish(ctx, events.TopicUsers, event)
}

func (s *notificationEventService) PublishThreadCreated(ctx context.Context, thread *models.Thread) {
	event := events.NewEvent(events.EventThreadCreated, ThreadCreatedEvent{
		ThreadID:          thread.ThreadID,
		UserID:            thread.UserID,
		Title:             thread.Title,
		PostedAnonymously: thread.PostedAnonymously,
	})
	s.publish(ctx, events.TopicThreads, event)
}

func (s *notificationEventService) PublishReplyCreated(ctx context.Context, reply *models.Reply) {
	event := events.NewEvent(events.EventReplyCreated, ReplyCreatedEvent{
		ReplyID:  reply.ReplyID,
		ThreadID: reply.ThreadID,
		UserID:   reply.UserID,
	})
	s.publish(ctx, events.TopicReplies, event)
}

// publish logs failures instead of returning them; a broker outage must not
// fail the write that already committed.
func (s *notificationEventService) publish(ctx context.Context, topic string, event *events.Event) {
	if err := s.eventPublisher.Publish(ctx, topic, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"event_type", event.Type,
			"topic", topic)
	}
}
