package services

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository. It mirrors the
// storage semantics the services rely on: conditional updates that report
// not-found, a unique email constraint, and cascading deletes.
type fakeRepository struct {
	mu sync.Mutex

	users   map[uint]*models.User
	threads map[uint]*models.Thread
	replies map[uint]*models.Reply

	nextUserID   uint
	nextThreadID uint
	nextReplyID  uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:   make(map[uint]*models.User),
		threads: make(map[uint]*models.Thread),
		replies: make(map[uint]*models.Reply),
	}
}

func (r *fakeRepository) User() repositories.UserRepository     { return &fakeUserRepo{r} }
func (r *fakeRepository) Thread() repositories.ThreadRepository { return &fakeThreadRepo{r} }
func (r *fakeRepository) Reply() repositories.ReplyRepository   { return &fakeReplyRepo{r} }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// seedUser inserts a user directly, bypassing the service layer
func (r *fakeRepository) seedUser(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextUserID++
	user.UserID = r.nextUserID
	r.users[user.UserID] = user
	return user
}

// seedThread inserts a thread directly
func (r *fakeRepository) seedThread(thread *models.Thread) *models.Thread {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextThreadID++
	thread.ThreadID = r.nextThreadID
	r.threads[thread.ThreadID] = thread
	return thread
}

// seedReply inserts a reply directly
func (r *fakeRepository) seedReply(reply *models.Reply) *models.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextReplyID++
	reply.ReplyID = r.nextReplyID
	r.replies[reply.ReplyID] = reply
	return reply
}

// ===== USER REPOSITORY =====

type fakeUserRepo struct {
	r *fakeRepository
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	for _, existing := range f.r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}

	f.r.nextUserID++
	user.UserID = f.r.nextUserID
	f.r.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	user, ok := f.r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	for _, user := range f.r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	users := make([]*models.User, 0, len(f.r.users))
	for _, user := range f.r.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	user, ok := f.r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	if v, ok := fields["email"].(string); ok {
		for otherID, other := range f.r.users {
			if otherID != id && other.Email == v {
				return nil, repositories.ErrDuplicateKey
			}
		}
		user.Email = v
	}
	if v, ok := fields["username"].(string); ok {
		user.Username = v
	}
	if v, ok := fields["password"].(string); ok {
		user.Password = v
	}
	if v, ok := fields["role"].(string); ok {
		user.Role = models.UserRole(v)
	}

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	if _, ok := f.r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.r.users, id)

	// Same cascade the schema enforces
	for threadID, thread := range f.r.threads {
		if thread.UserID == id {
			delete(f.r.threads, threadID)
			for replyID, reply := range f.r.replies {
				if reply.ThreadID == threadID {
					delete(f.r.replies, replyID)
				}
			}
		}
	}
	for replyID, reply := range f.r.replies {
		if reply.UserID == id {
			delete(f.r.replies, replyID)
		}
	}
	return nil
}

func (f *fakeUserRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	_, ok := f.r.users[id]
	return ok, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	for _, user := range f.r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ===== THREAD REPOSITORY =====

type fakeThreadRepo struct {
	r *fakeRepository
}

func (f *fakeThreadRepo) Create(ctx context.Context, tx *gorm.DB, thread *models.Thread) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	f.r.nextThreadID++
	thread.ThreadID = f.r.nextThreadID
	f.r.threads[thread.ThreadID] = thread
	return nil
}

func (f *fakeThreadRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Thread, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	thread, ok := f.r.threads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *thread
	return &copied, nil
}

func (f *fakeThreadRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.Thread, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	threads := make([]*models.Thread, 0, len(f.r.threads))
	for _, thread := range f.r.threads {
		copied := *thread
		threads = append(threads, &copied)
	}
	sort.Slice(threads, func(i, j int) bool { return threads[i].ThreadID < threads[j].ThreadID })
	return threads, nil
}

func (f *fakeThreadRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Thread, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	var threads []*models.Thread
	for _, thread := range f.r.threads {
		if thread.UserID == userID {
			copied := *thread
			threads = append(threads, &copied)
		}
	}
	sort.Slice(threads, func(i, j int) bool { return threads[i].ThreadID < threads[j].ThreadID })
	return threads, nil
}

func (f *fakeThreadRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.Thread, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	thread, ok := f.r.threads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	if v, ok := fields["title"].(string); ok {
		thread.Title = v
	}
	if v, ok := fields["content"].(string); ok {
		thread.Content = v
	}
	if v, ok := fields["posted_anonymously"].(bool); ok {
		thread.PostedAnonymously = v
	}

	copied := *thread
	return &copied, nil
}

func (f *fakeThreadRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	if _, ok := f.r.threads[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.r.threads, id)

	for replyID, reply := range f.r.replies {
		if reply.ThreadID == id {
			delete(f.r.replies, replyID)
		}
	}
	return nil
}

func (f *fakeThreadRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	_, ok := f.r.threads[id]
	return ok, nil
}

// ===== REPLY REPOSITORY =====

type fakeReplyRepo struct {
	r *fakeRepository
}

func (f *fakeReplyRepo) Create(ctx context.Context, tx *gorm.DB, reply *models.Reply) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	f.r.nextReplyID++
	reply.ReplyID = f.r.nextReplyID
	f.r.replies[reply.ReplyID] = reply
	return nil
}

func (f *fakeReplyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reply, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	reply, ok := f.r.replies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *reply
	return &copied, nil
}

func (f *fakeReplyRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.Reply, error) {
	return f.filter(func(*models.Reply) bool { return true }), nil
}

func (f *fakeReplyRepo) ListByThread(ctx context.Context, tx *gorm.DB, threadID uint) ([]*models.Reply, error) {
	return f.filter(func(r *models.Reply) bool { return r.ThreadID == threadID }), nil
}

func (f *fakeReplyRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Reply, error) {
	return f.filter(func(r *models.Reply) bool { return r.UserID == userID }), nil
}

func (f *fakeReplyRepo) ListByThreadAndUser(ctx context.Context, tx *gorm.DB, threadID, userID uint) ([]*models.Reply, error) {
	return f.filter(func(r *models.Reply) bool { return r.ThreadID == threadID && r.UserID == userID }), nil
}

func (f *fakeReplyRepo) filter(keep func(*models.Reply) bool) []*models.Reply {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	var replies []*models.Reply
	for _, reply := range f.r.replies {
		if keep(reply) {
			copied := *reply
			replies = append(replies, &copied)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].ReplyID < replies[j].ReplyID })
	return replies
}

func (f *fakeReplyRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) (*models.Reply, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	reply, ok := f.r.replies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	if v, ok := fields["content"].(string); ok {
		reply.Content = v
	}
	if v, ok := fields["correct"].(bool); ok {
		reply.Correct = v
	}

	copied := *reply
	return &copied, nil
}

func (f *fakeReplyRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	if _, ok := f.r.replies[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.r.replies, id)
	return nil
}
