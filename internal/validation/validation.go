// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	usernameRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username format and reserved names.
// "me" is reserved in any case because it addresses the profile endpoint.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return fmt.Errorf("username must not exceed 150 characters")
	}
	if strings.EqualFold(username, "me") {
		return fmt.Errorf("username %q is reserved", username)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

// ValidateEmail performs a basic shape check on an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateSlug checks genre/category slug format.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(slug) > 50 {
		return fmt.Errorf("slug must not exceed 50 characters")
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

// ValidateYear checks that a release year is between 0 and the current year.
func ValidateYear(year int) error {
	current := time.Now().Year()
	if year < 0 || year > current {
		return fmt.Errorf("year must be between 0 and %d", current)
	}
	return nil
}

// ValidateScore checks that a review score is within the 1-10 scale.
func ValidateScore(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("score must be between 1 and 10")
	}
	return nil
}
