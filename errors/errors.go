// Package errors provides error handling for Causeway.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//   - Hints surfaced to CLI users
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the scripts directory path")
//
//	// Check errors
//	if errors.Is(err, errors.ErrExecution) {
//	    // handle script failure
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapOnce   = crdb.UnwrapOnce
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Advanced features
var (
	AssertionFailedf        = crdb.AssertionFailedf
	GetReportableStackTrace = crdb.GetReportableStackTrace
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors for the migration orchestrator.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrConfiguration indicates a missing or invalid orchestrator
	// configuration, detected before any script executes
	ErrConfiguration = New("invalid configuration")

	// ErrDiscovery indicates script enumeration or pairing failed
	ErrDiscovery = New("script discovery failed")

	// ErrExecution indicates a script failed against the target store
	ErrExecution = New("script execution failed")

	// ErrJournal indicates the migration journal store failed; the
	// underlying store error is always attached unchanged
	ErrJournal = New("journal operation failed")
)

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsDiscoveryError checks if an error is or wraps ErrDiscovery
func IsDiscoveryError(err error) bool {
	return err != nil && Is(err, ErrDiscovery)
}

// IsExecutionError checks if an error is or wraps ErrExecution
func IsExecutionError(err error) bool {
	return err != nil && Is(err, ErrExecution)
}

// IsJournalError checks if an error is or wraps ErrJournal
func IsJournalError(err error) bool {
	return err != nil && Is(err, ErrJournal)
}

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// NewExecutionError wraps an executor failure with the migration name and
// the underlying message, preserving ErrExecution for errors.Is checks.
func NewExecutionError(name string, err error) error {
	return Wrapf(Wrap(ErrExecution, err.Error()), "migration %q", name)
}

// WrapJournal wraps a journal store failure with context while preserving
// ErrJournal for errors.Is checks. The store's error is never swallowed.
func WrapJournal(err error, context string) error {
	return Wrap(Wrap(ErrJournal, err.Error()), context)
}
