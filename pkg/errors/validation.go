package errors

import (
	"strings"
	"unicode"
)

const (
	maxNodeIDLength = 256
	maxQueryLength  = 256
)

// ValidateNodeID validates a node identifier coming from a graph file or a
// client request.
//
// Validation rules:
//   - Cannot be empty
//   - Maximum length of 256 characters
//   - No control characters or null bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateQuery validates a search query. Empty queries are allowed.
func ValidateQuery(q string) error {
	if len(q) > maxQueryLength {
		return New(ErrCodeInvalidInput, "query too long (max %d characters)", maxQueryLength)
	}
	if strings.ContainsRune(q, '\x00') {
		return New(ErrCodeInvalidInput, "query contains null bytes")
	}
	return nil
}
