package service

import "errors"

// ErrNotFound indicates the requested resource was not found. The
// request engine checks existence before permission, so a nonexistent
// id yields this even for a caller who could not have viewed it.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates the caller is authenticated but the policy
// denies the operation (HTTP 403).
var ErrForbidden = errors.New("forbidden")

// ValidationError represents a bad-request condition (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError represents a unique-constraint violation translated to
// a client-facing "already exists" condition (HTTP 409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ConfigurationError signals missing required reference data (for
// example the "new" status). It is a deployment defect, not a client
// error, and maps to HTTP 500.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }
