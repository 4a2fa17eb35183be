package errors

import (
	"strings"
	"unicode"
)

// ValidateCultureName validates the syntax of a culture name used in output
// file names. It rejects names that could escape the output directory or
// produce unusable file names.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
//
// Whether the name is a known culture is checked by package culture.
func ValidateCultureName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCulture, "culture cannot be empty")
	}

	const maxCultureLength = 64
	if len(name) > maxCultureLength {
		return New(ErrCodeInvalidCulture, "culture too long (max %d characters)", maxCultureLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCulture, "culture contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidCulture, "culture cannot contain path separators: %q", name)
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return New(ErrCodeInvalidCulture, "culture cannot start or end with a dot: %q", name)
	}

	return nil
}

// ValidatePath validates an input file path for safety.
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
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
