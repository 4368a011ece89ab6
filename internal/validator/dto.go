package validator

// RegisterRequest represents the request structure for account registration.
// Registration runs its own presence and domain checks in the service layer,
// so the fields carry no validate tags.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request structure for credential checks
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ThreadCreateRequest represents the request structure for posting a thread.
// Field order matters: the author check runs before the title/content checks,
// matching the response precedence of the endpoint. Title and Content are
// `any` so a non-string value is reported as invalid content rather than as a
// decode failure.
type ThreadCreateRequest struct {
	UserID            uint `json:"user_id" validate:"thread_author"`
	Title             any  `json:"title" validate:"thread_title"`
	Content           any  `json:"content" validate:"thread_content"`
	PostedAnonymously bool `json:"posted_anonymously"`
}

// ReplyCreateRequest represents the request structure for posting a reply.
// Content is validated before the author presence check.
type ReplyCreateRequest struct {
	Content any  `json:"content" validate:"reply_content"`
	UserID  uint `json:"user_id" validate:"reply_author"`
}
