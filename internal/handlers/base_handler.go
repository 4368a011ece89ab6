package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EHB-MCT/forum-service/internal/utils"
)

// ErrorResponse is the error body shape shared by all endpoints. Both keys
// are optional because some routes answer with only an error and others with
// only a message.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse is used by endpoints that confirm an action without
// returning a record.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Identifiers are stored as 32-bit serial columns; anything above this can
// never match a row.
const maxRecordID = 2147483647

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with the request-scoped logger
func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c).Info(msg, args...)
}

// LogError logs a handler failure with the request-scoped logger
func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c).Error(msg, append([]any{"error", err}, args...)...)
}

// parseIDParam parses a route id without writing a response. Callers decide
// the status and body for a rejected id, because the single-record GET routes
// answer 401 while the mutating routes answer 400.
func (h BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 || id > maxRecordID {
		return 0, false
	}
	return uint(id), true
}

func joinFields(fields []string) string {
	return strings.Join(fields, ", ")
}
