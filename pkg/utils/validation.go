package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPackageNameLength is the maximum length for a package name.
	MaxPackageNameLength = 50
	// MinPackageNameLength is the minimum length for a package name.
	MinPackageNameLength = 1
)

// validPackageNamePattern matches lowercase alphanumeric names with dots,
// hyphens and underscores after the first character.
var validPackageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidatePackageName validates a package name before a directory is created
// for it. Returns an error if the name is invalid.
func ValidatePackageName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxPackageNameLength {
		return fmt.Errorf("package name cannot exceed %d characters", MaxPackageNameLength)
	}

	// Check for path traversal attempts before regex check
	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("package name contains invalid characters")
	}

	if !validPackageNamePattern.MatchString(name) {
		return fmt.Errorf("package name must be lowercase and can only contain letters, numbers, dots, hyphens, and underscores")
	}

	return nil
}

// SanitizePackageName cleans up a package name for safe use.
func SanitizePackageName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")

	if utf8.RuneCountInString(name) > MaxPackageNameLength {
		runes := []rune(name)
		name = string(runes[:MaxPackageNameLength])
	}

	return name
}
