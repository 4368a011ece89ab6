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

type ReplyHandler struct {
	BaseHandler
	service services.ReplyService
}

func NewReplyHandler(service services.ReplyService, logger utils.Logger) *ReplyHandler {
	return &ReplyHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateReply posts a reply under a thread
func (h *ReplyHandler) CreateReply(c *gin.Context) {
	threadID, ok := h.parseIDParam(c, "thread_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid thread_id",
			Message: "The thread_id must be a positive integer.",
		})
		return
	}

	var req validator.ReplyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields: user_id and content are required."})
		return
	}

	h.LogRequest(c, "Creating reply", "thread_id", threadID, "user_id", req.UserID)

	reply, err := h.service.Create(c.Request.Context(), threadID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: verrs.Error()})
		case errors.Is(err, services.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("Thread with ID %d not found.", threadID)})
		default:
			h.LogError(c, err, "Failed to create reply", "thread_id", threadID)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create reply due to server error."})
		}
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// ListReplies returns every reply
func (h *ReplyHandler) ListReplies(c *gin.Context) {
	h.LogRequest(c, "Listing replies")

	replies, err := h.service.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to list replies")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve replies"})
		return
	}

	if len(replies) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No replies found in the database"})
		return
	}

	c.JSON(http.StatusOK, replies)
}

// GetReply returns one reply by id
func (h *ReplyHandler) GetReply(c *gin.Context) {
	id, ok := h.parseIDParam(c, "reply_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Reply ID."})
		return
	}

	h.LogRequest(c, "Getting reply", "reply_id", id)

	reply, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReplyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("Reply with ID %d not found.", id)})
			return
		}
		h.LogError(c, err, "Failed to get reply", "reply_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve reply"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// GetRepliesByThread returns all replies under a thread
func (h *ReplyHandler) GetRepliesByThread(c *gin.Context) {
	threadID, ok := h.parseIDParam(c, "thread_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid thread_id",
			Message: "The thread_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Listing replies by thread", "thread_id", threadID)

	replies, err := h.service.ListByThread(c.Request.Context(), threadID)
	if err != nil {
		if errors.Is(err, services.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("Thread with ID %d not found.", threadID)})
			return
		}
		h.LogError(c, err, "Failed to list replies by thread", "thread_id", threadID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve replies for this thread"})
		return
	}

	if len(replies) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("No replies found for thread with ID %d.", threadID)})
		return
	}

	c.JSON(http.StatusOK, replies)
}

// GetRepliesByUser returns all replies posted by one account
func (h *ReplyHandler) GetRepliesByUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid user_id",
			Message: "The user_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Listing replies by user", "user_id", userID)

	replies, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("User with ID %d not found.", userID)})
			return
		}
		h.LogError(c, err, "Failed to list replies by user", "user_id", userID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve replies for this user"})
		return
	}

	if len(replies) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("No replies found for user with ID %d.", userID)})
		return
	}

	c.JSON(http.StatusOK, replies)
}

// GetRepliesByThreadAndUser returns one account's replies under one thread
func (h *ReplyHandler) GetRepliesByThreadAndUser(c *gin.Context) {
	threadID, ok := h.parseIDParam(c, "thread_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid thread_id",
			Message: "The thread_id must be a positive integer.",
		})
		return
	}

	userID, ok := h.parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid user_id",
			Message: "The user_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Listing replies by thread and user", "thread_id", threadID, "user_id", userID)

	replies, err := h.service.ListByThreadAndUser(c.Request.Context(), threadID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("Thread with ID %d not found.", threadID)})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("User with ID %d not found.", userID)})
		default:
			h.LogError(c, err, "Failed to list replies by thread and user", "thread_id", threadID, "user_id", userID)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve replies for this thread and user"})
		}
		return
	}

	if len(replies) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("No replies found for thread with ID %d and user with ID %d.", threadID, userID),
		})
		return
	}

	c.JSON(http.StatusOK, replies)
}

// UpdateReply applies a partial update to a reply
func (h *ReplyHandler) UpdateReply(c *gin.Context) {
	id, ok := h.parseIDParam(c, "reply_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid reply_id",
			Message: "The reply_id must be a positive integer.",
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating reply", "reply_id", id)

	reply, err := h.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		if ife, ok := services.AsInvalidFieldsError(err); ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("Invalid fields: %s", joinFields(ife.Fields)),
			})
			return
		}
		switch {
		case errors.Is(err, services.ErrNoUpdateFields):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "No fields provided for update. At least one valid field must be included.",
			})
		case errors.Is(err, services.ErrReplyContentNotString):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Content must be a non-empty string."})
		case errors.Is(err, services.ErrCorrectNotBool):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "The 'correct' field must be a boolean value."})
		case errors.Is(err, services.ErrReplyNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("Reply with ID %d not found.", id)})
		default:
			h.LogError(c, err, "Failed to update reply", "reply_id", id)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update reply due to a server error."})
		}
		return
	}

	c.JSON(http.StatusOK, reply)
}

// DeleteReply removes a reply
func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	id, ok := h.parseIDParam(c, "reply_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid reply_id",
			Message: "The reply_id must be a positive integer.",
		})
		return
	}

	h.LogRequest(c, "Deleting reply", "reply_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrReplyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reply not found"})
			return
		}
		h.LogError(c, err, "Failed to delete reply", "reply_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete reply"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Reply successfully deleted"})
}
