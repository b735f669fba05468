package domain

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound                 Code = "NOT_FOUND"
	CodeValidationFailed         Code = "VALIDATION_FAILED"
	CodeInsufficientFunds        Code = "INSUFFICIENT_FUNDS"
	CodeRosterLimitExceeded      Code = "ROSTER_LIMIT_EXCEEDED"
	CodeClauseDecreaseForbidden  Code = "CLAUSE_DECREASE_FORBIDDEN"
	CodeListingExceedsClause     Code = "LISTING_EXCEEDS_CLAUSE"
	CodeForbidden                Code = "FORBIDDEN"
	CodeMarketClosed             Code = "MARKET_CLOSED"
	CodeClauseBuyoutWindowClosed Code = "CLAUSE_BUYOUT_WINDOW_CLOSED"
	CodeInvalidCredentials       Code = "INVALID_CREDENTIALS"
	CodeUnauthenticated          Code = "UNAUTHENTICATED"
	CodePersistenceFailure       Code = "PERSISTENCE_FAILURE"
)

// Error is a domain failure carrying a code and a user-facing message.
// Err holds the underlying cause, if any; it is never shown to clients.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so errors.Is(err, ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a domain error
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapPersistence converts a store failure into a PERSISTENCE_FAILURE with a
// user-facing message, keeping the cause for logs.
func WrapPersistence(message string, err error) *Error {
	return &Error{Code: CodePersistenceFailure, Message: message, Err: err}
}

// Sentinels for errors.Is comparisons
var (
	ErrNotFound                 = NewError(CodeNotFound, "not found")
	ErrValidationFailed         = NewError(CodeValidationFailed, "validation failed")
	ErrInsufficientFunds        = NewError(CodeInsufficientFunds, "insufficient funds")
	ErrRosterLimitExceeded      = NewError(CodeRosterLimitExceeded, "roster limit exceeded")
	ErrClauseDecreaseForbidden  = NewError(CodeClauseDecreaseForbidden, "clause decrease forbidden")
	ErrListingExceedsClause     = NewError(CodeListingExceedsClause, "listing exceeds clause")
	ErrForbidden                = NewError(CodeForbidden, "forbidden")
	ErrMarketClosed             = NewError(CodeMarketClosed, "market closed")
	ErrClauseBuyoutWindowClosed = NewError(CodeClauseBuyoutWindowClosed, "clause buyout window closed")
	ErrInvalidCredentials       = NewError(CodeInvalidCredentials, "invalid credentials")
	ErrUnauthenticated          = NewError(CodeUnauthenticated, "unauthenticated")
	ErrPersistenceFailure       = NewError(CodePersistenceFailure, "persistence failure")
)

// CodeOf extracts the domain code from err, or CodePersistenceFailure for foreign errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodePersistenceFailure
}
