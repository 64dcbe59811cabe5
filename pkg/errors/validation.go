package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a user-supplied identifier for safety. It is the
// shared base check for dimension names, point IDs and dataset names that
// arrive over the API.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// dimensionNameRegex matches dimension names usable as axis identifiers in
// views, value objects and URL parameters.
var dimensionNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._%-]*$`)

// ValidateDimensionName validates a dimension name.
func ValidateDimensionName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if !dimensionNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDimension, "invalid dimension name: %q", name)
	}

	return nil
}

// pointIDRegex matches point identifiers. Point IDs appear in URLs, so
// spaces are rejected where dimension names allow them.
var pointIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._%-]*$`)

// ValidatePointID validates a point identifier.
func ValidatePointID(id string) error {
	if err := ValidateName(id); err != nil {
		return err
	}

	if !pointIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid point id: %q", id)
	}

	return nil
}

// ValidateDatasetName validates the display name attached to an uploaded
// dataset. Blank names are allowed; the store falls back to the ID.
func ValidateDatasetName(name string) error {
	if name == "" {
		return nil
	}
	return ValidateName(name)
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFrameCount validates a requested frame count for sampling an
// animation. The cap keeps a single request from producing unbounded work.
func ValidateFrameCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "frame count must be at least 1")
	}
	const maxFrames = 10000
	if n > maxFrames {
		return New(ErrCodeInvalidInput, "frame count too large (max %d)", maxFrames)
	}
	return nil
}

// ValidateTime validates an animation progress value. NaN and values
// outside [0,1] are rejected at the API boundary even though the engine
// clamps, so clients learn about bad input instead of silently getting
// endpoint frames.
func ValidateTime(t float64) error {
	if t != t {
		return New(ErrCodeInvalidInput, "time cannot be NaN")
	}
	if t < 0 || t > 1 {
		return New(ErrCodeInvalidInput, "time must be within [0, 1], got %v", t)
	}
	return nil
}
