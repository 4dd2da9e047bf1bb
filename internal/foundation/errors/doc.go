// Package errors provides the classified error primitives used across tasktimer.
//
// Key features:
//   - ErrorCategory: broad classification (validation, render, config, runtime, internal)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, cause and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and presentation for the command line
//
// Example usage:
//
//	err := errors.ValidationError("invalid sort mode").
//		WithContext("sort", raw).
//		Build()
//
// Errors returned by code measured with a timer are never classified or
// wrapped; only failures of tasktimer itself use these types.
package errors
