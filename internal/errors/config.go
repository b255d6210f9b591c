// Package errors provides comprehensive error types for fightsongs.
// This file contains configuration-related errors.
package errors

import (
	"fmt"
	"strings"
)

// ConfigNotFound creates an error for a missing configuration file.
func ConfigNotFound(configPath string) *DashboardError {
	return &DashboardError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("configuration file not found: %s", configPath),
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Create a default configuration:

    fightsongs init

or run without one; built-in defaults and FIGHTSONGS_* environment
variables are used when no file exists.`,
	}
}

// ConfigParseError creates an error for YAML parsing failures.
func ConfigParseError(configPath string, parseErr error) *DashboardError {
	return &DashboardError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("failed to parse configuration: %s", configPath),
		Cause:   parseErr,
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Check your config.yaml for syntax errors:
  1. Ensure proper YAML indentation (use spaces, not tabs)
  2. Check for missing colons or quotes
  3. Durations use Go syntax such as 500ms or 168h`,
	}
}

// ConfigValidationError creates an error for invalid configuration values.
func ConfigValidationError(field, message string, validOptions []string) *DashboardError {
	suggestion := fmt.Sprintf("Fix the %q field in .fightsongs/config.yaml", field)
	if len(validOptions) > 0 {
		suggestion += fmt.Sprintf("\n  Valid options: %s", strings.Join(validOptions, ", "))
	}

	return &DashboardError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", message),
		Details: map[string]string{
			"field": field,
		},
		Suggestion: suggestion,
	}
}

// InvalidParameter creates an error for a malformed flag or query parameter.
func InvalidParameter(name, value, message string) *DashboardError {
	return &DashboardError{
		Kind:    ErrInvalidParameter,
		Message: fmt.Sprintf("invalid %s %q: %s", name, value, message),
		Details: map[string]string{
			"parameter": name,
			"value":     value,
		},
	}
}
