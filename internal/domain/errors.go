package domain

import "errors"

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Inventory errors
	ErrNotFound        = errors.New("object not found")
	ErrUnavailable     = errors.New("inventory unavailable")
	ErrMalformedResult = errors.New("malformed inventory object")

	// Capability errors
	ErrUnsupported = errors.New("operation not supported")

	// Config errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
