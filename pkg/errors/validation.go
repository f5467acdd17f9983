package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node identifiers so they stay usable as DOT ids and
// HTML attribute values.
const maxNodeIDLength = 512

// ValidateNodeID validates a node identifier from an input document.
//
// The validation rules:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 512 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeDataIntegrity, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeDataIntegrity, "node id too long (max %d characters): %.32q...", maxNodeIDLength, id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeDataIntegrity, "node id contains invalid control characters: %q", id)
		}
	}

	return nil
}

// ParseStep parses a user-supplied step threshold, e.g. from a query string.
// Surrounding whitespace is ignored. Any integer is accepted; range clamping
// is the caller's responsibility.
func ParseStep(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, New(ErrCodeInvalidInput, "step cannot be empty")
	}
	step, err := strconv.Atoi(s)
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "step must be an integer: %q", raw)
	}
	return step, nil
}
