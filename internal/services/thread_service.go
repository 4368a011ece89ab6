package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/repositories"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

type threadService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	notifications NotificationEventService
}

func NewThreadService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, notifications NotificationEventService) ThreadService {
	return &threadService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     validator,
		notifications: notifications,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *threadService) Create(ctx context.Context, req *validator.ThreadCreateRequest) (*models.Thread, error) {
	s.logger.Info("Creating thread", "user_id", req.UserID)

	// The author check runs before title/content validation; request field
	// order in the DTO guarantees that precedence.
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().ExistsByID(ctx, nil, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// Validation guarantees title and content are strings here.
	thread := &models.Thread{
		UserID:            req.UserID,
		Title:             req.Title.(string),
		Content:           req.Content.(string),
		PostedAnonymously: req.PostedAnonymously,
	}

	if err := s.repo.Thread().Create(ctx, nil, thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	s.logger.Info("Thread created", "thread_id", thread.ThreadID, "user_id", thread.UserID)
	s.notifications.PublishThreadCreated(ctx, thread)

	return thread, nil
}

func (s *threadService) List(ctx context.Context) ([]*models.Thread, error) {
	threads, err := s.repo.Thread().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

func (s *threadService) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	thread, err := s.repo.Thread().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}
	return thread, nil
}

func (s *threadService) ListByUser(ctx context.Context, userID uint) ([]*models.Thread, error) {
	exists, err := s.repo.User().ExistsByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	threads, err := s.repo.Thread().ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads by user: %w", err)
	}
	return threads, nil
}

var threadUpdateFields = map[string]bool{
	"user_id":            true,
	"title":              true,
	"content":            true,
	"posted_anonymously": true,
}

func (s *threadService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Thread, error) {
	s.logger.Info("Updating thread", "thread_id", id)

	if invalid := invalidKeys(fields, threadUpdateFields); len(invalid) > 0 {
		return nil, &InvalidFieldsError{Fields: invalid}
	}

	for _, key := range []string{"title", "content"} {
		if v, ok := fields[key]; ok && truthy(v) {
			if _, isString := v.(string); !isString {
				return nil, ErrTitleContentNotString
			}
		}
	}

	thread, err := s.repo.Thread().Update(ctx, nil, id, fields)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to update thread: %w", err)
	}

	return thread, nil
}

func (s *threadService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting thread", "thread_id", id)

	if err := s.repo.Thread().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrThreadNotFound
		}
		return fmt.Errorf("failed to delete thread: %w", err)
	}

	s.logger.Info("Thread deleted", "thread_id", id)
	return nil
}
