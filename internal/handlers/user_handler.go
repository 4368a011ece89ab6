package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EHB-MCT/forum-service/internal/services"
	"github.com/EHB-MCT/forum-service/internal/utils"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== ACCOUNT ENDPOINTS =====

// Register creates a new account. The role is derived from the email domain.
func (h *UserHandler) Register(c *gin.Context) {
	var req validator.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
		return
	}

	h.LogRequest(c, "Registering user", "email", req.Email)

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
		case errors.Is(err, services.ErrEmailExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already exists"})
		case errors.Is(err, services.ErrInvalidEmailDomain):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid email domain"})
		default:
			h.LogError(c, err, "Failed to register user")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login validates credentials and returns the account without its password.
func (h *UserHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both email and password are required"})
		return
	}

	h.LogRequest(c, "Logging in user", "email", req.Email)

	user, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingEmailAndPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both email and password are required"})
		case errors.Is(err, services.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is required"})
		case errors.Is(err, services.ErrMissingPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Password is required"})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		default:
			h.LogError(c, err, "Failed to validate login")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An error occurred while trying to validate the login."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

// ===== CRUD ENDPOINTS =====

// ListUsers returns every account
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to list users")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve users"})
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No current users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns one account by id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Invalid user_id",
			Message: "The user_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Getting user", "user_id", id)

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "User not found",
				Message: fmt.Sprintf("No user exists with the user_id: %d", id),
			})
			return
		}
		h.LogError(c, err, "Failed to get user", "user_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred while retrieving user information.",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to an account
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid user_id",
			Message: "The user_id must be a positive integer.",
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating user", "user_id", id)

	user, err := h.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		if ife, ok := services.AsInvalidFieldsError(err); ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid fields",
				Message: fmt.Sprintf("The following fields are not valid: %s", joinFields(ife.Fields)),
			})
			return
		}
		switch {
		case errors.Is(err, services.ErrUserFieldsNotString):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid data type",
				Message: "User fields must be strings.",
			})
		case errors.Is(err, services.ErrEmailExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already exists"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			h.LogError(c, err, "Failed to update user", "user_id", id)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and, through the schema, its threads and replies
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid user_id",
			Message: "The user_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Deleting user", "user_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "User not found",
				Message: fmt.Sprintf("No user exists with the user_id: %d", id),
			})
			return
		}
		h.LogError(c, err, "Failed to delete user", "user_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to delete user",
			Message: "An unexpected error occurred while attempting to delete the user.",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "User successfully deleted"})
}
