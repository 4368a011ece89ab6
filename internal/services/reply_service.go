package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/repositories"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

type replyService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	notifications NotificationEventService
}

func NewReplyService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, notifications NotificationEventService) ReplyService {
	return &replyService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     validator,
		notifications: notifications,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *replyService) Create(ctx context.Context, threadID uint, req *validator.ReplyCreateRequest) (*models.Reply, error) {
	s.logger.Info("Creating reply", "thread_id", threadID, "user_id", req.UserID)

	// Content is validated before the author presence check; DTO field order
	// guarantees that precedence.
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Thread().ExistsByID(ctx, nil, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to check thread existence: %w", err)
	}
	if !exists {
		return nil, ErrThreadNotFound
	}

	reply := &models.Reply{
		ThreadID: threadID,
		UserID:   req.UserID,
		Content:  req.Content.(string),
	}

	if err := s.repo.Reply().Create(ctx, nil, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	s.logger.Info("Reply created", "reply_id", reply.ReplyID, "thread_id", threadID)
	s.notifications.PublishReplyCreated(ctx, reply)

	return reply, nil
}

func (s *replyService) List(ctx context.Context) ([]*models.Reply, error) {
	replies, err := s.repo.Reply().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return replies, nil
}

func (s *replyService) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	reply, err := s.repo.Reply().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}
	return reply, nil
}

func (s *replyService) ListByThread(ctx context.Context, threadID uint) ([]*models.Reply, error) {
	exists, err := s.repo.Thread().ExistsByID(ctx, nil, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to check thread existence: %w", err)
	}
	if !exists {
		return nil, ErrThreadNotFound
	}

	replies, err := s.repo.Reply().ListByThread(ctx, nil, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies by thread: %w", err)
	}
	return replies, nil
}

func (s *replyService) ListByUser(ctx context.Context, userID uint) ([]*models.Reply, error) {
	exists, err := s.repo.User().ExistsByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	replies, err := s.repo.Reply().ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies by user: %w", err)
	}
	return replies, nil
}

func (s *replyService) ListByThreadAndUser(ctx context.Context, threadID, userID uint) ([]*models.Reply, error) {
	threadExists, err := s.repo.Thread().ExistsByID(ctx, nil, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to check thread existence: %w", err)
	}
	if !threadExists {
		return nil, ErrThreadNotFound
	}

	userExists, err := s.repo.User().ExistsByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	replies, err := s.repo.Reply().ListByThreadAndUser(ctx, nil, threadID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies by thread and user: %w", err)
	}
	return replies, nil
}

var replyUpdateFields = map[string]bool{
	"content": true,
	"correct": true,
}

func (s *replyService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Reply, error) {
	s.logger.Info("Updating reply", "reply_id", id)

	if invalid := invalidKeys(fields, replyUpdateFields); len(invalid) > 0 {
		return nil, &InvalidFieldsError{Fields: invalid}
	}

	if len(fields) == 0 {
		return nil, ErrNoUpdateFields
	}

	if v, ok := fields["content"]; ok && truthy(v) {
		if content, isString := v.(string); !isString || strings.TrimSpace(content) == "" {
			return nil, ErrReplyContentNotString
		}
	}

	if v, ok := fields["correct"]; ok && truthy(v) {
		if _, isBool := v.(bool); !isBool {
			return nil, ErrCorrectNotBool
		}
	}

	reply, err := s.repo.Reply().Update(ctx, nil, id, fields)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to update reply: %w", err)
	}

	return reply, nil
}

func (s *replyService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting reply", "reply_id", id)

	if err := s.repo.Reply().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReplyNotFound
		}
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	s.logger.Info("Reply deleted", "reply_id", id)
	return nil
}
