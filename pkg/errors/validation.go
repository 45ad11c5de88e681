package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDocumentName validates a stored document name for safety.
// Names are user supplied through the HTTP API and end up in log lines and
// database keys, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//   - Letters, digits, spaces, dots, dashes and underscores only
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "document name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "document name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document name contains invalid control characters")
		}
	}

	if !documentNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid document name: %q", name)
	}

	return nil
}

var documentNameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._-]*$`)
