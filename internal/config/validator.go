package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dablenparty/dablenutil/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.max_size_mb")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Logging.Dir) == "" {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "must not be empty",
		})
	}

	// The file name lives inside Dir; paths belong in logging.dir
	if c.Logging.File == "" || filepath.Base(c.Logging.File) != c.Logging.File {
		errors = append(errors, ValidationError{
			Field:   "logging.file",
			Value:   c.Logging.File,
			Message: "must be a plain file name",
		})
	}

	levels := []struct{ field, value string }{
		{"logging.console_level", c.Logging.ConsoleLevel},
		{"logging.file_level", c.Logging.FileLevel},
	}
	for _, lvl := range levels {
		if _, err := logging.ParseLevel(lvl.value); err != nil {
			errors = append(errors, ValidationError{
				Field:   lvl.field,
				Value:   lvl.value,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
			})
		}
	}

	// A trailing underscore would double up with the archive separator
	if strings.HasSuffix(c.Logging.PackageName, "_") || strings.ContainsAny(c.Logging.PackageName, `/\`) {
		errors = append(errors, ValidationError{
			Field:   "logging.package_name",
			Value:   c.Logging.PackageName,
			Message: "must not end with '_' or contain path separators",
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	if !slices.Contains(ValidColorModes(), strings.ToLower(c.Logging.Color)) {
		errors = append(errors, ValidationError{
			Field:   "logging.color",
			Value:   c.Logging.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	return errors
}
