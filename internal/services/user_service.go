package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/repositories"
	"github.com/EHB-MCT/forum-service/internal/utils"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

type userService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	notifications NotificationEventService
	bcryptCost    int
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, notifications NotificationEventService, bcryptCost int) UserService {
	return &userService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     validator,
		notifications: notifications,
		bcryptCost:    bcryptCost,
	}
}

// ===== REGISTRATION AND LOGIN =====

// Register creates an account. The role comes from the email domain, never
// from the client. Registration deliberately checks presence and domain only;
// the stricter format predicates are a published contract for clients.
func (s *userService) Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	s.logger.Info("Registering user", "email", req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	role, ok := models.RoleForEmail(req.Email)
	if !ok {
		return nil, ErrInvalidEmailDomain
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index turns both into the same conflict.
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.UserID, "role", user.Role)
	s.notifications.PublishUserRegistered(ctx, user)

	return user, nil
}

// Login checks credentials. Unknown email and wrong password produce the
// same error so the response never reveals which one failed.
func (s *userService) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error) {
	if req.Email == "" && req.Password == "" {
		return nil, ErrMissingEmailAndPassword
	}
	if req.Email == "" {
		return nil, ErrMissingEmail
	}
	if req.Password == "" {
		return nil, ErrMissingPassword
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", "user_id", user.UserID)
	return user, nil
}

// ===== CRUD OPERATIONS =====

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.User().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

var userUpdateFields = map[string]bool{
	"username": true,
	"email":    true,
	"password": true,
	"role":     true,
}

func (s *userService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	s.logger.Info("Updating user", "user_id", id)

	if invalid := invalidKeys(fields, userUpdateFields); len(invalid) > 0 {
		return nil, &InvalidFieldsError{Fields: invalid}
	}

	for _, v := range fields {
		if !truthy(v) {
			continue
		}
		if _, isString := v.(string); !isString {
			return nil, ErrUserFieldsNotString
		}
	}

	// A new password is stored hashed, never raw.
	if v, ok := fields["password"]; ok {
		if plain, isString := v.(string); isString && strings.TrimSpace(plain) != "" {
			hash, err := utils.HashPassword(plain, s.bcryptCost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			fields["password"] = hash
		}
	}

	user, err := s.repo.User().Update(ctx, nil, id, fields)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting user", "user_id", id)

	if err := s.repo.User().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted", "user_id", id)
	return nil
}
