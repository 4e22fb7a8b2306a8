// Package apperr is the closed set of errors the HTTP layer knows how to
// render.  Every failure leaving the service layer is one of these kinds.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindBusinessRule
	KindPayloadTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBusinessRule:
		return "business_rule"
	case KindPayloadTooLarge:
		return "payload_too_large"
	default:
		return "unexpected"
	}
}

// Status is the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindBusinessRule:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// UnexpectedMessage is the only text a caller ever sees for KindUnexpected.
const UnexpectedMessage = "Something went wrong, please try again later"

// Error carries a user-facing message and, optionally, the cause.  The cause
// is for logs only and is never serialised.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func BusinessRule(msg string) *Error { return &Error{Kind: KindBusinessRule, Message: msg} }

func PayloadTooLarge(msg string) *Error { return &Error{Kind: KindPayloadTooLarge, Message: msg} }

// Unexpected wraps err behind the generic message.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: UnexpectedMessage, Err: err}
}

// As returns err as *Error.  Anything that is not one becomes Unexpected.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Unexpected(err)
}

// KindOf returns the kind of err, KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}
