package validator

import (
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single rejected field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

// Error returns the first field's message so callers can surface it as the
// response body verbatim. The per-field detail stays available for logging.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return ve[0].Message
}

// ToValidationErrors converts go-playground errors into our error type,
// resolving each tag to its user-facing message.
func ToValidationErrors(err error) ValidationErrors {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error(), Rule: "unknown"}}
	}

	var errors ValidationErrors
	for _, fe := range verrs {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Message: messageForRule(fe.Tag()),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

// messageForRule returns the user-facing message for a validation rule.
func messageForRule(rule string) string {
	switch rule {
	case "thread_author":
		return "You need to be logged in to post a thread"
	case "thread_title", "thread_content":
		return "You need a title and content to create a new thread"
	case "reply_content":
		return "Invalid content."
	case "reply_author":
		return "Missing required fields: user_id and content are required."
	case "forum_username":
		return "Invalid username"
	case "school_email":
		return "Invalid email"
	case "forum_password":
		return "Invalid password"
	default:
		return "validation failed for rule '" + rule + "'"
	}
}
