package services

import (
	"context"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

// UserService handles accounts and credential checks
type UserService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// ThreadService handles discussion threads
type ThreadService interface {
	Create(ctx context.Context, req *validator.ThreadCreateRequest) (*models.Thread, error)
	List(ctx context.Context) ([]*models.Thread, error)
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Thread, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Thread, error)
	Delete(ctx context.Context, id uint) error
}

// ReplyService handles replies within threads
type ReplyService interface {
	Create(ctx context.Context, threadID uint, req *validator.ReplyCreateRequest) (*models.Reply, error)
	List(ctx context.Context) ([]*models.Reply, error)
	GetByID(ctx context.Context, id uint) (*models.Reply, error)
	ListByThread(ctx context.Context, threadID uint) ([]*models.Reply, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Reply, error)
	ListByThreadAndUser(ctx context.Context, threadID, userID uint) ([]*models.Reply, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Reply, error)
	Delete(ctx context.Context, id uint) error
}

// NotificationEventService publishes domain events. Publishing is
// best-effort: failures are logged and never surfaced to the request.
type NotificationEventService interface {
	PublishUserRegistered(ctx context.Context, user *models.User)
	PublishThreadCreated(ctx context.Context, thread *models.Thread)
	PublishReplyCreated(ctx context.Context, reply *models.Reply)
}

// ServiceManager wires the services together and manages their lifecycle
type ServiceManager interface {
	Users() UserService
	Threads() ThreadService
	Replies() ReplyService
	Notifications() NotificationEventService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
