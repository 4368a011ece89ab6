package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/EHB-MCT/forum-service/internal/models"
)

// UserRepository handles account persistence. The tx parameter lets callers
// run several operations in one transaction; pass nil for the default
// connection.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.User, error)

	// Update applies the whitelisted fields in a single conditional statement
	// and returns the updated row; ErrNotFound when no row matched.
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.User, error)

	// Delete removes the user in a single conditional statement; ErrNotFound
	// when no row matched. Owned threads and replies cascade at the database.
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

// ThreadRepository handles thread persistence.
type ThreadRepository interface {
	Create(ctx context.Context, tx *gorm.DB, thread *models.Thread) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Thread, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.Thread, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Thread, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.Thread, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

// ReplyRepository handles reply persistence.
type ReplyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reply *models.Reply) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reply, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.Reply, error)
	ListByThread(ctx context.Context, tx *gorm.DB, threadID uint) ([]*models.Reply, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Reply, error)
	ListByThreadAndUser(ctx context.Context, tx *gorm.DB, threadID, userID uint) ([]*models.Reply, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.Reply, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}
