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

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &userRepository{
		db:    db,
		cache: cacheManager,
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return r.handleDBError(err, "create user")
	}

	r.cache.InvalidateUser(ctx, user.UserID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, r.handleDBError(err, "get user by id")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, r.handleDBError(err, "get user by email")
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context, tx *gorm.DB) ([]*models.User, error) {
	db := r.getDB(tx)
	var users []*models.User

	if err := db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, r.handleDBError(err, "list users")
	}

	return users, nil
}

// Update applies the whitelisted fields and returns the updated row in one
// statement. A zero row count means the user vanished between the caller's
// check and this statement, so it maps to ErrNotFound rather than a retry.
func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	result := db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where("user_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, r.handleDBError(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update user: %w", repositories.ErrNotFound)
	}

	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	// The schema cascades the delete to the user's threads (and their
	// replies), so their cache entries must go too or reply creation keeps
	// seeing deleted threads. Collect the thread ids before the row is gone.
	var threadIDs []uint
	if err := db.WithContext(ctx).
		Model(&models.Thread{}).
		Where("user_id = ?", id).
		Pluck("thread_id", &threadIDs).Error; err != nil {
		return r.handleDBError(err, "list threads for user delete")
	}

	result := db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return r.handleDBError(result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete user: %w", repositories.ErrNotFound)
	}

	r.cache.InvalidateUser(ctx, id)
	for _, threadID := range threadIDs {
		r.cache.InvalidateThread(ctx, threadID)
	}
	return nil
}

// ===== VALIDATION =====

// ExistsByID caches positive results only. An absent row is never cached:
// it may be created at any moment and registration has no probe key to
// invalidate, so a cached miss would reject valid requests until expiry.
func (r *userRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	cacheKey := fmt.Sprintf("user:%d", id)
	if cached, err := r.cache.Exists.GetString(ctx, cacheKey); err == nil {
		return cached == "1", nil
	}

	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", id).
		Count(&count).Error; err != nil {
		return false, r.handleDBError(err, "check user exists")
	}

	if count > 0 {
		_ = r.cache.Exists.SetString(ctx, cacheKey, "1", cache.ExistsCacheConfig.TTL)
	}

	return count > 0, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.getDB(tx)
	var count int64

	// Never cached: registration conflicts must see the latest state.
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, r.handleDBError(err, "check email exists")
	}

	return count > 0, nil
}

// ===== HELPER METHODS =====

func (r *userRepository) getDB(tx *gorm.DB) *gorm.DB {
	return getDB(r.db, tx)
}

func (r *userRepository) handleDBError(err error, operation string) error {
	return handleDBError(err, operation)
}
