package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUsername checks if username contains only allowed characters.
// Allows alphanumeric, underscores, hyphens. 3-30 characters.
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// ValidateEmail does a light-weight shape check; real validation happens
// when the address is actually used.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// SanitizeHTML escapes HTML entities to prevent XSS.
// Use this for any user-generated content that will be displayed.
func SanitizeHTML(input string) string {
	return html.EscapeString(input)
}

// TruncateString truncates s to at most maxLen runes, never splitting a
// multi-byte character.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// IsUUID checks if the string is a valid UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
