package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/services"
	"github.com/EHB-MCT/forum-service/internal/utils"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

// Stub services with function fields so each test swaps in only the
// behavior it needs.

type stubUserService struct {
	RegisterFn func(ctx context.Context, req *validator.RegisterRequest) (*models.User, error)
	LoginFn    func(ctx context.Context, req *validator.LoginRequest) (*models.User, error)
	ListFn     func(ctx context.Context) ([]*models.User, error)
	GetByIDFn  func(ctx context.Context, id uint) (*models.User, error)
	UpdateFn   func(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error)
	DeleteFn   func(ctx context.Context, id uint) error
}

func (s *stubUserService) Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	return s.RegisterFn(ctx, req)
}
func (s *stubUserService) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error) {
	return s.LoginFn(ctx, req)
}
func (s *stubUserService) List(ctx context.Context) ([]*models.User, error) { return s.ListFn(ctx) }
func (s *stubUserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *stubUserService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	return s.UpdateFn(ctx, id, fields)
}
func (s *stubUserService) Delete(ctx context.Context, id uint) error { return s.DeleteFn(ctx, id) }

type stubThreadService struct {
	CreateFn     func(ctx context.Context, req *validator.ThreadCreateRequest) (*models.Thread, error)
	ListFn       func(ctx context.Context) ([]*models.Thread, error)
	GetByIDFn    func(ctx context.Context, id uint) (*models.Thread, error)
	ListByUserFn func(ctx context.Context, userID uint) ([]*models.Thread, error)
	UpdateFn     func(ctx context.Context, id uint, fields map[string]interface{}) (*models.Thread, error)
	DeleteFn     func(ctx context.Context, id uint) error
}

func (s *stubThreadService) Create(ctx context.Context, req *validator.ThreadCreateRequest) (*models.Thread, error) {
	return s.CreateFn(ctx, req)
}
func (s *stubThreadService) List(ctx context.Context) ([]*models.Thread, error) { return s.ListFn(ctx) }
func (s *stubThreadService) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *stubThreadService) ListByUser(ctx context.Context, userID uint) ([]*models.Thread, error) {
	return s.ListByUserFn(ctx, userID)
}
func (s *stubThreadService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Thread, error) {
	return s.UpdateFn(ctx, id, fields)
}
func (s *stubThreadService) Delete(ctx context.Context, id uint) error { return s.DeleteFn(ctx, id) }

type stubReplyService struct {
	CreateFn              func(ctx context.Context, threadID uint, req *validator.ReplyCreateRequest) (*models.Reply, error)
	ListFn                func(ctx context.Context) ([]*models.Reply, error)
	GetByIDFn             func(ctx context.Context, id uint) (*models.Reply, error)
	ListByThreadFn        func(ctx context.Context, threadID uint) ([]*models.Reply, error)
	ListByUserFn          func(ctx context.Context, userID uint) ([]*models.Reply, error)
	ListByThreadAndUserFn func(ctx context.Context, threadID, userID uint) ([]*models.Reply, error)
	UpdateFn              func(ctx context.Context, id uint, fields map[string]interface{}) (*models.Reply, error)
	DeleteFn              func(ctx context.Context, id uint) error
}

func (s *stubReplyService) Create(ctx context.Context, threadID uint, req *validator.ReplyCreateRequest) (*models.Reply, error) {
	return s.CreateFn(ctx, threadID, req)
}
func (s *stubReplyService) List(ctx context.Context) ([]*models.Reply, error) { return s.ListFn(ctx) }
func (s *stubReplyService) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *stubReplyService) ListByThread(ctx context.Context, threadID uint) ([]*models.Reply, error) {
	return s.ListByThreadFn(ctx, threadID)
}
func (s *stubReplyService) ListByUser(ctx context.Context, userID uint) ([]*models.Reply, error) {
	return s.ListByUserFn(ctx, userID)
}
func (s *stubReplyService) ListByThreadAndUser(ctx context.Context, threadID, userID uint) ([]*models.Reply, error) {
	return s.ListByThreadAndUserFn(ctx, threadID, userID)
}
func (s *stubReplyService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Reply, error) {
	return s.UpdateFn(ctx, id, fields)
}
func (s *stubReplyService) Delete(ctx context.Context, id uint) error { return s.DeleteFn(ctx, id) }

type stubNotificationService struct{}

func (s *stubNotificationService) PublishUserRegistered(context.Context, *models.User)  {}
func (s *stubNotificationService) PublishThreadCreated(context.Context, *models.Thread) {}
func (s *stubNotificationService) PublishReplyCreated(context.Context, *models.Reply)   {}

type stubServiceManager struct {
	users   services.UserService
	threads services.ThreadService
	replies services.ReplyService
}

func (s *stubServiceManager) Users() services.UserService     { return s.users }
func (s *stubServiceManager) Threads() services.ThreadService { return s.threads }
func (s *stubServiceManager) Replies() services.ReplyService  { return s.replies }
func (s *stubServiceManager) Notifications() services.NotificationEventService {
	return &stubNotificationService{}
}
func (s *stubServiceManager) Initialize(ctx context.Context) error  { return nil }
func (s *stubServiceManager) HealthCheck(ctx context.Context) error { return nil }
func (s *stubServiceManager) Shutdown(ctx context.Context) error    { return nil }

func newTestRouter(users services.UserService, threads services.ThreadService, replies services.ReplyService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	manager := &stubServiceManager{users: users, threads: threads, replies: replies}

	router := gin.New()
	NewHandlerManager(manager, logger).SetupRoutes(router)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
