package model

import (
	"errors"
	"fmt"
)

// DomainError represents a failure with a stable, caller-inspectable kind.
//
// Domain errors cover:
//   - Missing rows: point lookup found no matching id or key
//   - Account conflicts: duplicate username, second admin
//   - Session gating: unauthenticated cart mutation
//   - Checkout: empty cart
//   - Store availability: open/init failure
//
// DomainError includes structured fields so callers can render a precise
// message without parsing the error string.
type DomainError struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Message is a human-readable description.
	Message string

	// Entity names the affected entity type ("product", "user", ...).
	Entity string

	// Subject identifies the affected row or account (id or username).
	Subject string
}

// ErrorKind categorizes domain errors.
type ErrorKind string

const (
	// KindNotFound indicates a point lookup matched no row.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindDuplicateUsername indicates a registration with a taken username.
	KindDuplicateUsername ErrorKind = "DUPLICATE_USERNAME"

	// KindInvalidCredentials indicates a failed credential lookup.
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"

	// KindNotAuthenticated indicates a cart mutation without a login.
	KindNotAuthenticated ErrorKind = "NOT_AUTHENTICATED"

	// KindEmptyCart indicates checkout on a cart with zero lines.
	KindEmptyCart ErrorKind = "EMPTY_CART"

	// KindRoleConflict indicates a promotion while another admin exists.
	KindRoleConflict ErrorKind = "ROLE_CONFLICT"

	// KindCategoryInUse indicates a category delete while products
	// still reference it.
	KindCategoryInUse ErrorKind = "CATEGORY_IN_USE"

	// KindStoreUnavailable indicates the database could not be opened
	// or initialized.
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
)

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Entity != "" && e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s=%s)", e.Kind, e.Message, e.Entity, e.Subject)
	}
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf extracts the ErrorKind from an error chain.
// Returns "" if the error is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound returns true if the error is a missing-row error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsRoleConflict returns true if the error is a second-admin conflict.
func IsRoleConflict(err error) bool {
	return KindOf(err) == KindRoleConflict
}

// NewNotFound creates a DomainError for a missing row.
func NewNotFound(entity string, subject string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no such %s", entity),
		Entity:  entity,
		Subject: subject,
	}
}

// NewDuplicateUsername creates a DomainError for a taken username.
func NewDuplicateUsername(username string) *DomainError {
	return &DomainError{
		Kind:    KindDuplicateUsername,
		Message: "username already exists",
		Entity:  "user",
		Subject: username,
	}
}

// NewInvalidCredentials creates a DomainError for a failed login.
// Deliberately does not say whether the username or the password missed.
func NewInvalidCredentials() *DomainError {
	return &DomainError{
		Kind:    KindInvalidCredentials,
		Message: "invalid username or password",
	}
}

// NewNotAuthenticated creates a DomainError for an anonymous cart mutation.
func NewNotAuthenticated() *DomainError {
	return &DomainError{
		Kind:    KindNotAuthenticated,
		Message: "login required",
	}
}

// NewEmptyCart creates a DomainError for checkout on an empty cart.
func NewEmptyCart() *DomainError {
	return &DomainError{
		Kind:    KindEmptyCart,
		Message: "cart has no lines",
	}
}

// NewRoleConflict creates a DomainError for a second-admin promotion.
// existingAdmin is the username currently holding the admin role, so the
// caller can report who must be demoted first.
func NewRoleConflict(existingAdmin string) *DomainError {
	return &DomainError{
		Kind:    KindRoleConflict,
		Message: "another user already holds the admin role",
		Entity:  "user",
		Subject: existingAdmin,
	}
}

// NewCategoryInUse creates a DomainError for deleting a referenced category.
func NewCategoryInUse(name string, products int) *DomainError {
	return &DomainError{
		Kind:    KindCategoryInUse,
		Message: fmt.Sprintf("%d product(s) still reference this category", products),
		Entity:  "category",
		Subject: name,
	}
}

// NewStoreUnavailable wraps an open/init failure.
func NewStoreUnavailable(err error) *DomainError {
	return &DomainError{
		Kind:    KindStoreUnavailable,
		Message: err.Error(),
	}
}
