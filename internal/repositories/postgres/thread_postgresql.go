package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EHB-MCT/forum-service/internal/cache"
	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/repositories"
)

type threadRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewThreadPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ThreadRepository {
	return &threadRepository{
		db:    db,
		cache: cacheManager,
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *threadRepository) Create(ctx context.Context, tx *gorm.DB, thread *models.Thread) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(thread).Error; err != nil {
		return r.handleDBError(err, "create thread")
	}

	// Drops the cached listing so the new thread shows up immediately.
	r.cache.InvalidateThread(ctx, thread.ThreadID)
	return nil
}

// GetByID serves single rows through the payload cache. Transactional reads
// bypass it: they must see the transaction's own writes.
func (r *threadRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Thread, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	if tx == nil {
		var cached models.Thread
		if err := r.cache.Thread.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	db := r.getDB(tx)
	var thread models.Thread

	if err := db.WithContext(ctx).First(&thread, id).Error; err != nil {
		return nil, r.handleDBError(err, "get thread by id")
	}

	if tx == nil {
		_ = r.cache.Thread.Set(ctx, cacheKey, &thread, cache.ThreadCacheConfig.TTL)
	}

	return &thread, nil
}

func (r *threadRepository) List(ctx context.Context, tx *gorm.DB) ([]*models.Thread, error) {
	if tx == nil {
		var cached []*models.Thread
		if err := r.cache.Thread.Get(ctx, "list", &cached); err == nil {
			return cached, nil
		}
	}

	db := r.getDB(tx)
	var threads []*models.Thread

	if err := db.WithContext(ctx).Find(&threads).Error; err != nil {
		return nil, r.handleDBError(err, "list threads")
	}

	if tx == nil && len(threads) > 0 {
		_ = r.cache.Thread.Set(ctx, "list", threads, cache.ThreadCacheConfig.TTL)
	}

	return threads, nil
}

func (r *threadRepository) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Thread, error) {
	db := r.getDB(tx)
	var threads []*models.Thread

	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&threads).Error; err != nil {
		return nil, r.handleDBError(err, "list threads by user")
	}

	return threads, nil
}

func (r *threadRepository) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.Thread, error) {
	db := r.getDB(tx)
	var thread models.Thread

	result := db.WithContext(ctx).
		Model(&thread).
		Clauses(clause.Returning{}).
		Where("thread_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, r.handleDBError(result.Error, "update thread")
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update thread: %w", repositories.ErrNotFound)
	}

	r.cache.InvalidateThread(ctx, id)
	return &thread, nil
}

func (r *threadRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).Delete(&models.Thread{}, id)
	if result.Error != nil {
		return r.handleDBError(result.Error, "delete thread")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete thread: %w", repositories.ErrNotFound)
	}

	r.cache.InvalidateThread(ctx, id)
	return nil
}

// ===== VALIDATION =====

// ExistsByID caches positive results only, mirroring the user existence
// check: a cached miss would keep failing reply creation after the thread
// appears.
func (r *threadRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	cacheKey := fmt.Sprintf("thread:%d", id)
	if cached, err := r.cache.Exists.GetString(ctx, cacheKey); err == nil {
		return cached == "1", nil
	}

	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Thread{}).
		Where("thread_id = ?", id).
		Count(&count).Error; err != nil {
		return false, r.handleDBError(err, "check thread exists")
	}

	if count > 0 {
		_ = r.cache.Exists.SetString(ctx, cacheKey, "1", cache.ExistsCacheConfig.TTL)
	}

	return count > 0, nil
}

// ===== HELPER METHODS =====

func (r *threadRepository) getDB(tx *gorm.DB) *gorm.DB {
	return getDB(r.db, tx)
}

func (r *threadRepository) handleDBError(err error, operation string) error {
	return handleDBError(err, operation)
}
