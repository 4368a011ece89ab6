package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the service layer. Handlers translate them to
// HTTP statuses and response bodies; the exact wording of each body lives
// with the handler that owns the route.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrThreadNotFound = errors.New("thread not found")
	ErrReplyNotFound  = errors.New("reply not found")

	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidEmailDomain = errors.New("invalid email domain")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMissingFields           = errors.New("missing required fields")
	ErrMissingEmailAndPassword = errors.New("both email and password are required")
	ErrMissingEmail            = errors.New("email is required")
	ErrMissingPassword         = errors.New("password is required")

	ErrNoUpdateFields        = errors.New("no fields provided for update")
	ErrUserFieldsNotString   = errors.New("user fields must be strings")
	ErrTitleContentNotString = errors.New("title and content must be strings")
	ErrReplyContentNotString = errors.New("content must be a non-empty string")
	ErrCorrectNotBool        = errors.New("the 'correct' field must be a boolean value")
)

// InvalidFieldsError reports update keys outside the endpoint's whitelist.
// Fields are sorted so the response body is deterministic.
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// AsInvalidFieldsError unwraps err into an InvalidFieldsError if it is one.
func AsInvalidFieldsError(err error) (*InvalidFieldsError, bool) {
	var ife *InvalidFieldsError
	if errors.As(err, &ife) {
		return ife, true
	}
	return nil, false
}
