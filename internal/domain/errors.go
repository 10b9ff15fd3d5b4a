package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler error mapping extensible.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}

	// CycleError indicates a folder move that would make the folder its
	// own ancestor
	CycleError struct {
		Message string
	}

	// NotEmptyError indicates a delete blocked by existing children
	NotEmptyError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *CycleError) Error() string        { return e.Message }
func (e *NotEmptyError) Error() string     { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *CycleError) StatusCode() int        { return http.StatusBadRequest }
func (e *NotEmptyError) StatusCode() int     { return http.StatusBadRequest }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrCycle            = errors.New("folder cycle")
	ErrNotEmpty         = errors.New("folder not empty")
	ErrTenantConnection = errors.New("tenant connection failed")
)

// Is implementations so typed errors match their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }
func (e *CycleError) Is(target error) bool        { return target == ErrCycle }
func (e *NotEmptyError) Is(target error) bool     { return target == ErrNotEmpty }

// ConflictError represents a uniqueness violation with details about the
// existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (user, folder, document, ...)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// TenantConnectionError indicates an infrastructure failure opening a
// tenant's database. The registry never caches the failed attempt, so the
// caller may simply retry.
type TenantConnectionError struct {
	Tenant string
	Err    error
}

func (e *TenantConnectionError) Error() string {
	return fmt.Sprintf("connect tenant database %q: %v", e.Tenant, e.Err)
}

func (e *TenantConnectionError) StatusCode() int {
	return http.StatusInternalServerError
}

func (e *TenantConnectionError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to match against ErrTenantConnection
func (e *TenantConnectionError) Is(target error) bool {
	return target == ErrTenantConnection
}
