package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field predicates for the public request surface. Each one takes the raw
// decoded JSON value, so callers never have to type-assert first: anything
// that is not a string fails outright. They are pure and carry no storage or
// framework dependency. All length bounds count characters, not bytes.

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+(?: [a-zA-Z0-9-]+)*$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._-]+@(student\.ehb\.be|ehb\.be)$`)
	titlePattern    = regexp.MustCompile(`^[a-zA-Z0-9\-_.!@]+(?: [a-zA-Z0-9\-_.!@]+)*$`)
)

// ValidUsername reports whether v is a username of trimmed length 2-20 made of
// letters, digits and hyphens, with single interior spaces only.
func ValidUsername(v any) bool {
	name, ok := v.(string)
	if !ok {
		return false
	}

	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 20 {
		return false
	}

	return usernamePattern.MatchString(trimmed)
}

// ValidEmail accepts only addresses on the two school domains,
// local-part@(student.ehb.be|ehb.be), with a local part of letters, digits,
// dots, underscores and hyphens.
func ValidEmail(v any) bool {
	email, ok := v.(string)
	if !ok {
		return false
	}

	if strings.TrimSpace(email) == "" {
		return false
	}

	return emailPattern.MatchString(email)
}

// ValidPassword enforces length 8-20 with at least one lowercase letter, one
// uppercase letter, one digit and one symbol from @$!%*?&. No characters
// outside those classes are allowed. Implemented as a single pass because RE2
// has no lookahead.
func ValidPassword(v any) bool {
	password, ok := v.(string)
	if !ok {
		return false
	}

	if n := utf8.RuneCountInString(password); n < 8 || n > 20 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			symbol = true
		default:
			return false
		}
	}

	return lower && upper && digit && symbol
}

// ValidThreadTitle reports whether v is a title of trimmed length 3-100 made
// of letters, digits and -_.!@, with single interior spaces (no consecutive
// spaces).
func ValidThreadTitle(v any) bool {
	title, ok := v.(string)
	if !ok {
		return false
	}

	trimmed := strings.TrimSpace(title)
	if n := utf8.RuneCountInString(trimmed); n < 3 || n > 100 {
		return false
	}

	return titlePattern.MatchString(trimmed)
}

// ValidThreadContent only bounds the trimmed length to 10-1000; any content
// within the bound is acceptable.
func ValidThreadContent(v any) bool {
	content, ok := v.(string)
	if !ok {
		return false
	}

	trimmed := strings.TrimSpace(content)
	n := utf8.RuneCountInString(trimmed)
	return n >= 10 && n <= 1000
}

// ValidReplyContent bounds the trimmed length to 2-500.
func ValidReplyContent(v any) bool {
	content, ok := v.(string)
	if !ok {
		return false
	}

	trimmed := strings.TrimSpace(content)
	n := utf8.RuneCountInString(trimmed)
	return n >= 2 && n <= 500
}
