package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/repositories"
)

type replyRepository struct {
	db *gorm.DB
}

func NewReplyPostgreSQL(db *gorm.DB) repositories.ReplyRepository {
	return &replyRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *replyRepository) Create(ctx context.Context, tx *gorm.DB, reply *models.Reply) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(reply).Error; err != nil {
		return r.handleDBError(err, "create reply")
	}
	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reply, error) {
	db := r.getDB(tx)
	var reply models.Reply

	if err := db.WithContext(ctx).First(&reply, id).Error; err != nil {
		return nil, r.handleDBError(err, "get reply by id")
	}

	return &reply, nil
}

func (r *replyRepository) List(ctx context.Context, tx *gorm.DB) ([]*models.Reply, error) {
	db := r.getDB(tx)
	var replies []*models.Reply

	if err := db.WithContext(ctx).Find(&replies).Error; err != nil {
		return nil, r.handleDBError(err, "list replies")
	}

	return replies, nil
}

func (r *replyRepository) ListByThread(ctx context.Context, tx *gorm.DB, threadID uint) ([]*models.Reply, error) {
	db := r.getDB(tx)
	var replies []*models.Reply

	if err := db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Find(&replies).Error; err != nil {
		return nil, r.handleDBError(err, "list replies by thread")
	}

	return replies, nil
}

func (r *replyRepository) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Reply, error) {
	db := r.getDB(tx)
	var replies []*models.Reply

	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&replies).Error; err != nil {
		return nil, r.handleDBError(err, "list replies by user")
	}

	return replies, nil
}

func (r *replyRepository) ListByThreadAndUser(ctx context.Context, tx *gorm.DB, threadID, userID uint) ([]*models.Reply, error) {
	db := r.getDB(tx)
	var replies []*models.Reply

	if err := db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Find(&replies).Error; err != nil {
		return nil, r.handleDBError(err, "list replies by thread and user")
	}

	return replies, nil
}

func (r *replyRepository) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.Reply, error) {
	db := r.getDB(tx)
	var reply models.Reply

	result := db.WithContext(ctx).
		Model(&reply).
		Clauses(clause.Returning{}).
		Where("reply_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, r.handleDBError(result.Error, "update reply")
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update reply: %w", repositories.ErrNotFound)
	}

	return &reply, nil
}

func (r *replyRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).Delete(&models.Reply{}, id)
	if result.Error != nil {
		return r.handleDBError(result.Error, "delete reply")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete reply: %w", repositories.ErrNotFound)
	}

	return nil
}

// ===== HELPER METHODS =====

func (r *replyRepository) getDB(tx *gorm.DB) *gorm.DB {
	return getDB(r.db, tx)
}

func (r *replyRepository) handleDBError(err error, operation string) error {
	return handleDBError(err, operation)
}
