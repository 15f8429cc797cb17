package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can react without matching on messages
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindAuthentication  Kind = "authentication"
	KindAuthorization   Kind = "authorization"
	KindIntegrity       Kind = "integrity"
	KindMalformed       Kind = "malformed"
	KindCapacity        Kind = "capacity"
	KindConflict        Kind = "conflict"
	KindExternalIO      Kind = "external_io"
	KindRollbackFailure Kind = "rollback_failure"
	KindInternal        Kind = "internal"
)

// Error is the tagged error carried across the core operations
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError creates a new tagged error
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validationf creates a validation error with a formatted message
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same kind and message.
// Wrapped causes are matched through Unwrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Wrap returns a copy of the sentinel carrying err as its cause
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user facing message of the first *Error in err's chain
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

var (
	// ErrAssetNotFound is returned when an asset is not found
	ErrAssetNotFound = &Error{Kind: KindNotFound, Message: "asset not found"}

	// ErrAccountNotFound is returned when an account is not found
	ErrAccountNotFound = &Error{Kind: KindNotFound, Message: "account not found"}

	// ErrTransactionNotFound is returned when a transaction is not found
	ErrTransactionNotFound = &Error{Kind: KindNotFound, Message: "transaction not found"}

	// ErrAssetNotTradeable is returned when purchasing an inactive asset
	ErrAssetNotTradeable = &Error{Kind: KindConflict, Message: "asset is not available for purchase"}

	// ErrAlreadyOwner is returned when the buyer already owns the asset
	ErrAlreadyOwner = &Error{Kind: KindConflict, Message: "asset is already owned by the caller"}

	// ErrOwnerChanged is returned when the asset changed hands since the caller observed it
	ErrOwnerChanged = &Error{Kind: KindConflict, Message: "asset owner changed"}

	// ErrInsufficientBalance is returned when a balance would drop below zero
	ErrInsufficientBalance = &Error{Kind: KindConflict, Message: "insufficient balance"}

	// ErrNotAssetOwner is returned when the caller does not own the asset
	ErrNotAssetOwner = &Error{Kind: KindAuthorization, Message: "caller does not own the asset"}

	// ErrUnauthenticated is returned when a session token cannot be accepted
	ErrUnauthenticated = &Error{Kind: KindAuthentication, Message: "unauthorized access"}

	// ErrSessionExpired is returned for expired session tokens
	ErrSessionExpired = &Error{Kind: KindAuthentication, Message: "session expired, please login again"}

	// ErrClaimIntegrity is returned when a claim signature does not verify
	ErrClaimIntegrity = &Error{Kind: KindIntegrity, Message: "claim signature is invalid"}

	// ErrClaimMalformed is returned when a claim token cannot be parsed
	ErrClaimMalformed = &Error{Kind: KindMalformed, Message: "claim token is malformed"}

	// ErrImageCapacity is returned when an image is too small for a payload
	ErrImageCapacity = &Error{Kind: KindCapacity, Message: "image is too small for the embedded claim"}

	// ErrRollbackFailed is returned when compensating cleanup itself fails
	ErrRollbackFailed = &Error{Kind: KindRollbackFailure, Message: "failed to roll back partial operation"}
)
