// Package apperrors defines the error kinds the repository and service
// layers report, so handlers can map failures to precise responses.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind string

const (
	// KindValidation means the input violates a domain predicate; nothing was persisted
	KindValidation Kind = "validation"
	// KindConflict means a uniqueness constraint was violated
	KindConflict Kind = "conflict"
	// KindReference means a required foreign reference does not exist
	KindReference Kind = "reference"
	// KindNotFound means a lookup by id or natural key found nothing
	KindNotFound Kind = "not_found"
	// KindDependencyExists means a delete was blocked because dependent records exist
	KindDependencyExists Kind = "dependency_exists"
)

// AppError carries the error kind plus the entity and field or constraint
// involved, enough for a caller to render an exact message
type AppError struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s %s: %s", e.Kind, e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
}

// Validation creates a validation error for an entity field
func Validation(entity, field, message string) *AppError {
	return &AppError{Kind: KindValidation, Entity: entity, Field: field, Message: message}
}

// Conflict creates a conflict error for a violated uniqueness constraint
func Conflict(entity, constraint string) *AppError {
	return &AppError{Kind: KindConflict, Entity: entity, Field: constraint, Message: "already exists"}
}

// Reference creates a reference error for a missing foreign entity
func Reference(entity, field string) *AppError {
	return &AppError{Kind: KindReference, Entity: entity, Field: field, Message: "referenced record does not exist"}
}

// NotFound creates a not found error for an entity
func NotFound(entity string) *AppError {
	return &AppError{Kind: KindNotFound, Entity: entity, Message: "not found"}
}

// DependencyExists creates an error for a delete blocked by dependents
func DependencyExists(entity, dependent string) *AppError {
	return &AppError{Kind: KindDependencyExists, Entity: entity, Field: dependent, Message: "dependent records exist"}
}

// KindOf returns the kind of err if it is an AppError, or "" otherwise
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsReference reports whether err is a reference error
func IsReference(err error) bool { return KindOf(err) == KindReference }

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsDependencyExists reports whether err is a dependency exists error
func IsDependencyExists(err error) bool { return KindOf(err) == KindDependencyExists }
