package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds sentence, token and edge identifiers.
const maxIDLength = 256

// ValidateID checks a sentence, token or edge identifier. Identifiers end
// up in cache keys, file names and HTTP responses, so they must be short
// and free of control characters and path separators.
//
// kind names the identifier in the error message ("sentence", "token", ...).
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s ID cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s ID too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s ID contains invalid control characters", kind)
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "%s ID cannot contain path separators", kind)
	}
	return nil
}

// ValidatePath validates an input or output file path given on the command
// line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
