package zerror

import (
	"fmt"
)

// ZError is the error type carried across service boundaries. It pairs a
// stable machine code with a human-readable message and an optional wrapped
// parent error.
type ZError struct {
	parent error
	status Status
	code   string
	msg    string
}

// New initializes a ZError instance.
//
// code example: INVOICE_NOT_FOUND
func New(parent error, status Status, code, msg string) ZError {
	return ZError{
		parent: parent,
		status: status,
		code:   code,
		msg:    msg,
	}
}

// Error returns the error message for the ZError.
func (e ZError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

// WrapParent attaches an underlying error to an existing predefined ZError.
func (e ZError) WrapParent(parent error) ZError {
	if parent == nil {
		return e
	}
	e.parent = parent
	return e
}

// WithMsg returns a copy of the ZError carrying msg instead of the predefined
// message. Used when the caller-facing text is built at the failure site.
func (e ZError) WithMsg(msg string) ZError {
	e.msg = msg
	return e
}

// Is matches two ZErrors by code, so errors.Is still holds after WithMsg or
// WrapParent produced a modified copy of a predefined error.
func (e ZError) Is(target error) bool {
	t, ok := target.(ZError)
	if !ok {
		return false
	}
	return e.code == t.code
}

// Unwrap returns the underlying error for the ZError.
func (e *ZError) Unwrap() error {
	return e.parent
}

// Status returns the status of the ZError.
func (e ZError) Status() Status {
	return e.status
}

// Code returns the code of the ZError.
func (e ZError) Code() string {
	return e.code
}

// Msg returns the message of the ZError.
func (e ZError) Msg() string {
	return e.msg
}

func NewBadRequest(code, msg string) ZError {
	return New(nil, StatusBadRequest, code, msg)
}

func NewValidationFailed(code, msg string) ZError {
	return New(nil, StatusValidationFailed, code, msg)
}

func NewNotFound(code, msg string) ZError {
	return New(nil, StatusNotFound, code, msg)
}

func NewConflict(code, msg string) ZError {
	return New(nil, StatusConflict, code, msg)
}

func NewUnprocessableEntity(code, msg string) ZError {
	return New(nil, StatusUnprocessableEntity, code, msg)
}

func NewInternalServerError(code, msg string) ZError {
	return New(nil, StatusInternalServerError, code, msg)
}

func NewServiceUnavailable(code, msg string) ZError {
	return New(nil, StatusServiceUnavailable, code, msg)
}
