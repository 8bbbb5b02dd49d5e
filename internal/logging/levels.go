// Package logging provides centralized log level validation for tesserad.
//
// This file defines the canonical set of valid log levels used across the
// bootstrap pipeline, the persisted configuration store, and the node runtime.
// Centralizing validation keeps flag parsing and config validation agreeing
// on the same level names.
//
// SUPPORTED LOG LEVELS:
//   - CRITICAL: Only unrecoverable failures
//   - ERROR:    Error conditions that indicate problems requiring attention
//   - WARNING:  Conditions that should be noted but don't stop operation
//   - INFO:     General operational information about node activities
//   - DEBUG:    Detailed debugging information for development
//
// Level strings are case-sensitive and must be uppercase to stay consistent
// with the logging system's internal level handling.
package logging

import "fmt"

// ValidLogLevels defines the canonical set of supported log levels. This map
// is the single source of truth for level validation in flag parsing and the
// persisted configuration store.
var ValidLogLevels = map[string]bool{
	"CRITICAL": true,
	"ERROR":    true,
	"WARNING":  true,
	"INFO":     true,
	"DEBUG":    true,
}

// IsValidLogLevel checks if the provided log level string is supported.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if
// invalid. Used by flag validation and config store validation to catch bad
// levels early with a consistent message.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
