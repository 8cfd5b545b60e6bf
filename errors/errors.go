// Package errors provides standardized error handling patterns for prodcon
// components. It includes error classification, standard error variables,
// and helper functions for consistent error wrapping across the system.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorUsage represents errors caused by bad command-line input
	ErrorUsage ErrorClass = iota
	// ErrorInit represents resource initialization failures
	ErrorInit
	// ErrorLifecycle represents start/stop ordering violations
	ErrorLifecycle
	// ErrorFatal represents unrecoverable errors that should stop the run
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorUsage:
		return "usage"
	case ErrorInit:
		return "init"
	case ErrorLifecycle:
		return "lifecycle"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Lifecycle errors
	ErrAlreadyStarted = errors.New("component already started")
	ErrNotStarted     = errors.New("component not started")
	ErrAlreadyStopped = errors.New("component already stopped")
	ErrNotInitialized = errors.New("component not initialized")

	// Usage errors
	ErrMissingArguments   = errors.New("missing required arguments")
	ErrInvalidWorkerCount = errors.New("worker count must be a positive integer")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrConfigNotFound = errors.New("configuration file not found")

	// Buffer errors
	ErrInvalidCapacity = errors.New("buffer capacity must be positive")

	// Completion errors
	ErrConservationViolated = errors.New("produced and consumed totals diverge from target")
	ErrBufferNotDrained     = errors.New("buffer not empty after completion")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsUsage checks if an error is a command-line usage error
func IsUsage(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorUsage
	}

	return errors.Is(err, ErrMissingArguments) ||
		errors.Is(err, ErrInvalidWorkerCount)
}

// IsInit checks if an error is a resource initialization failure
func IsInit(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInit
	}

	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrInvalidCapacity)
}

// IsLifecycle checks if an error is a start/stop ordering violation
func IsLifecycle(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorLifecycle
	}

	return errors.Is(err, ErrAlreadyStarted) ||
		errors.Is(err, ErrNotStarted) ||
		errors.Is(err, ErrAlreadyStopped) ||
		errors.Is(err, ErrNotInitialized)
}

// IsFatal checks if an error is fatal
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrConservationViolated) ||
		errors.Is(err, ErrBufferNotDrained)
}

// Classify returns the error class for an error. Unrecognized errors
// default to fatal: every failure in this system is non-recoverable at
// the point of detection.
func Classify(err error) ErrorClass {
	switch {
	case IsUsage(err):
		return ErrorUsage
	case IsInit(err):
		return ErrorInit
	case IsLifecycle(err):
		return ErrorLifecycle
	default:
		return ErrorFatal
	}
}

// newClassified creates a new classified error
// This is an internal helper - use WrapUsage(), WrapInit(), WrapLifecycle(),
// or WrapFatal() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapUsage wraps an error as a usage error with context
func WrapUsage(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorUsage, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInit wraps an error as an initialization failure with context
func WrapInit(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInit, wrappedErr, component, method, wrappedErr.Error())
}

// WrapLifecycle wraps an error as a lifecycle violation with context
func WrapLifecycle(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorLifecycle, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}
