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

type ThreadHandler struct {
	BaseHandler
	service services.ThreadService
}

func NewThreadHandler(service services.ThreadService, logger utils.Logger) *ThreadHandler {
	return &ThreadHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateThread posts a new thread
func (h *ThreadHandler) CreateThread(c *gin.Context) {
	var req validator.ThreadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "You need to be logged in to post a thread"})
		return
	}

	h.LogRequest(c, "Creating thread", "user_id", req.UserID)

	thread, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: verrs.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User does not exist"})
		default:
			h.LogError(c, err, "Failed to create thread")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create thread"})
		}
		return
	}

	c.JSON(http.StatusCreated, thread)
}

// ListThreads returns every thread
func (h *ThreadHandler) ListThreads(c *gin.Context) {
	h.LogRequest(c, "Listing threads")

	threads, err := h.service.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to list threads")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve threads"})
		return
	}

	if len(threads) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No threads available at the moment."})
		return
	}

	c.JSON(http.StatusOK, threads)
}

// GetThread returns one thread by id
func (h *ThreadHandler) GetThread(c *gin.Context) {
	id, ok := h.parseIDParam(c, "thread_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Invalid thread_id",
			Message: "The thread_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Getting thread", "thread_id", id)

	thread, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Thread not found",
				Message: fmt.Sprintf("No thread exists with the thread_id: %d", id),
			})
			return
		}
		h.LogError(c, err, "Failed to get thread", "thread_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred while retrieving thread information.",
		})
		return
	}

	c.JSON(http.StatusOK, thread)
}

// GetThreadsByUser returns all threads posted by one account
func (h *ThreadHandler) GetThreadsByUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid user_id",
			Message: "The user_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Listing threads by user", "user_id", userID)

	threads, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		h.LogError(c, err, "Failed to list threads by user", "user_id", userID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve threads for user"})
		return
	}

	if len(threads) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No threads found for this user"})
		return
	}

	c.JSON(http.StatusOK, threads)
}

// UpdateThread applies a partial update to a thread
func (h *ThreadHandler) UpdateThread(c *gin.Context) {
	id, ok := h.parseIDParam(c, "thread_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid thread_id",
			Message: "The thread_id must be a positive integer.",
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating thread", "thread_id", id)

	thread, err := h.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		if ife, ok := services.AsInvalidFieldsError(err); ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid fields",
				Message: fmt.Sprintf("The following fields are not valid: %s", joinFields(ife.Fields)),
			})
			return
		}
		switch {
		case errors.Is(err, services.ErrTitleContentNotString):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid data type",
				Message: "Title and content must be strings.",
			})
		case errors.Is(err, services.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Thread not found"})
		default:
			h.LogError(c, err, "Failed to update thread", "thread_id", id)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update thread"})
		}
		return
	}

	c.JSON(http.StatusOK, thread)
}

// DeleteThread removes a thread and, through the schema, its replies
func (h *ThreadHandler) DeleteThread(c *gin.Context) {
	id, ok := h.parseIDParam(c, "thread_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid thread_id",
			Message: "The thread_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Deleting thread", "thread_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Thread not found"})
			return
		}
		h.LogError(c, err, "Failed to delete thread", "thread_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete thread"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Thread successfully deleted"})
}
