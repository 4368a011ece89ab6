package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground validation with the forum's field rules
// registered. The rules delegate to the pure predicates in fields.go so the
// same semantics back both the struct tags and direct calls.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the forum rules registered
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerFieldRules()

	return v
}

// Validate validates a request struct. It returns ValidationErrors (never a
// bare go-playground error) so callers can map it to a response directly.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerFieldRules() {
	// Author ids arrive as JSON numbers; zero means the client never sent one.
	v.validate.RegisterValidation("thread_author", func(fl validator.FieldLevel) bool {
		return fl.Field().Uint() != 0
	})

	v.validate.RegisterValidation("reply_author", func(fl validator.FieldLevel) bool {
		return fl.Field().Uint() != 0
	})

	// Content fields are declared as `any` in the DTOs so a non-string payload
	// fails the rule instead of failing the JSON bind.
	v.validate.RegisterValidation("thread_title", func(fl validator.FieldLevel) bool {
		return ValidThreadTitle(fl.Field().Interface())
	})

	v.validate.RegisterValidation("thread_content", func(fl validator.FieldLevel) bool {
		return ValidThreadContent(fl.Field().Interface())
	})

	v.validate.RegisterValidation("reply_content", func(fl validator.FieldLevel) bool {
		return ValidReplyContent(fl.Field().Interface())
	})

	v.validate.RegisterValidation("forum_username", func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().Interface())
	})

	v.validate.RegisterValidation("school_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().Interface())
	})

	v.validate.RegisterValidation("forum_password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().Interface())
	})
}
