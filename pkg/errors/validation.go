package errors

import (
	"math"
	"net/url"
	"strings"
	"unicode"
)

// maxQueryLength bounds free-text search queries sent to photo sources.
const maxQueryLength = 200

// ValidateURL validates a URL string for safety.
// It ensures the URL parses and has an http or https scheme and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}

	return nil
}

// ValidateQuery validates a free-text search query.
//
// Validation rules:
//   - Query cannot be blank
//   - Maximum length of 200 characters
//   - No control characters
func ValidateQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return New(ErrCodeInvalidInput, "search query cannot be empty")
	}
	if len(q) > maxQueryLength {
		return New(ErrCodeInvalidInput, "search query too long (max %d characters)", maxQueryLength)
	}
	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "search query contains invalid control characters")
		}
	}
	return nil
}

// ValidatePhotoID validates a photo identifier.
func ValidatePhotoID(id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidInput, "photo id must be positive, got %d", id)
	}
	return nil
}

// ValidatePositive validates that a named dimension is a finite number above zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative validates that a named value is finite and not below zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %v", name, v)
	}
	return nil
}
