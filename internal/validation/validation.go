// Package validation holds the input rules shared by the credential and
// content services. All checks run before any store access.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	MinUsernameLen    = 3
	MaxUsernameLen    = 20
	MinPasswordLen    = 8
	MaxDisplayNameLen = 50
	MaxListNameLen    = 100

	MinRating = 0.5
	MaxRating = 5.0
)

// UsernamePattern requires a leading letter followed by letters, digits or
// underscores.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Username validates the handle format: 3-20 characters, leading letter,
// letters/digits/underscores only.
func Username(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLen)
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username cannot be more than %d characters", MaxUsernameLen)
	}
	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// Email validates the rough shape of an email address.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// Password enforces the minimum secret length.
func Password(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// DisplayName validates the optional profile name.
func DisplayName(displayName string) error {
	if len(strings.TrimSpace(displayName)) > MaxDisplayNameLen {
		return fmt.Errorf("display name must be less than %d characters", MaxDisplayNameLen+1)
	}
	return nil
}

// Rating enforces the quantization grid: 0.5 to 5.0 in half-point steps.
func Rating(rating float64) error {
	if rating < MinRating || rating > MaxRating || math.Mod(rating*2, 1) != 0 {
		return fmt.Errorf("rating must be between 0.5 and 5.0 in 0.5 increments")
	}
	return nil
}

// ListName validates a list name: non-empty after trimming, bounded length.
func ListName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("list name is required")
	}
	if len(trimmed) > MaxListNameLen {
		return fmt.Errorf("list name cannot be more than %d characters", MaxListNameLen)
	}
	return nil
}

var controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")

// Sanitize trims whitespace and strips control characters except newline
// and tab.
func Sanitize(input string) string {
	sanitized := strings.TrimSpace(input)
	sanitized = strings.ReplaceAll(sanitized, "\x00", "")
	return controlChars.ReplaceAllString(sanitized, "")
}
