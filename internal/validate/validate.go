// Package validate holds the one shared rule set for form input. Both the
// contact and blog handlers call into it so the checks live in exactly one
// place.
package validate

import (
	"regexp"
	"strings"
)

const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeInvalidEmail    = "INVALID_EMAIL"
	CodeMessageTooShort = "MESSAGE_TOO_SHORT"
)

const minMessageLength = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes the first failing check for a form submission.
type FieldError struct {
	Code    string
	Message string
}

// Contact checks a contact form triple. Order matters: required fields
// first, then email shape, then message length. The first failing check
// wins.
func Contact(name, email, message string) *FieldError {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(message) == "" {
		return &FieldError{Code: CodeValidationError, Message: "All fields are required"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &FieldError{Code: CodeInvalidEmail, Message: "Please provide a valid email address"}
	}
	if len(strings.TrimSpace(message)) < minMessageLength {
		return &FieldError{Code: CodeMessageTooShort, Message: "Message must be at least 10 characters long"}
	}
	return nil
}

// BlogPost checks the blog form fields.
func BlogPost(title, content, excerpt string) *FieldError {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" || strings.TrimSpace(excerpt) == "" {
		return &FieldError{Code: CodeValidationError, Message: "Title, content, and excerpt are required"}
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address for storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
